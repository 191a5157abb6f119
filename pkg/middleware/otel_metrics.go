package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hyp3rd/streamstats"
	"github.com/hyp3rd/streamstats/internal/telemetry/attrs"
)

// OTelMetricsMiddleware emits OpenTelemetry metrics for service methods.
type OTelMetricsMiddleware struct {
	next  streamstats.Service
	meter metric.Meter

	// instruments
	calls     metric.Int64Counter
	durations metric.Float64Histogram
	observed  metric.Int64Counter
}

// NewOTelMetricsMiddleware constructs a metrics middleware using the provided meter.
func NewOTelMetricsMiddleware(next streamstats.Service, meter metric.Meter) (streamstats.Service, error) {
	calls, err := meter.Int64Counter("streamstats.calls")
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	durations, err := meter.Float64Histogram("streamstats.duration.ms")
	if err != nil {
		return nil, fmt.Errorf("create histogram: %w", err)
	}

	observed, err := meter.Int64Counter("streamstats.samples.observed")
	if err != nil {
		return nil, fmt.Errorf("create counter: %w", err)
	}

	return &OTelMetricsMiddleware{next: next, meter: meter, calls: calls, durations: durations, observed: observed}, nil
}

// Observe implements Service.Observe with metrics.
func (mw *OTelMetricsMiddleware) Observe(ctx context.Context, samples ...float64) error {
	start := time.Now()
	err := mw.next.Observe(ctx, samples...)
	mw.rec(ctx, "Observe", start, attribute.Int(attrs.AttrSamplesCount, len(samples)), attribute.Bool("rejected", err != nil))

	if err == nil {
		mw.observed.Add(ctx, int64(len(samples)))
	}

	return err
}

// Summary implements Service.Summary with metrics.
func (mw *OTelMetricsMiddleware) Summary(ctx context.Context) streamstats.Summary {
	start := time.Now()
	summary := mw.next.Summary(ctx)
	mw.rec(ctx, "Summary", start, attribute.Int(attrs.AttrQuantilesCount, len(summary.Quantiles)))

	return summary
}

// Quantile implements Service.Quantile with metrics.
func (mw *OTelMetricsMiddleware) Quantile(p float64) (float64, error) {
	start := time.Now()
	value, err := mw.next.Quantile(p)
	mw.rec(context.Background(), "Quantile", start, attribute.Bool("tracked", err == nil))

	return value, err
}

// Len returns the number of observed samples.
func (mw *OTelMetricsMiddleware) Len() uint64 { return mw.next.Len() }

// Reset implements Service.Reset with metrics.
func (mw *OTelMetricsMiddleware) Reset(ctx context.Context) error {
	start := time.Now()
	err := mw.next.Reset(ctx)
	mw.rec(ctx, "Reset", start)

	return err
}

// rec records call count and duration with attributes.
func (mw *OTelMetricsMiddleware) rec(ctx context.Context, method string, start time.Time, attrs ...attribute.KeyValue) {
	base := []attribute.KeyValue{attribute.String("method", method)}
	if len(attrs) > 0 {
		base = append(base, attrs...)
	}

	mw.calls.Add(ctx, 1, metric.WithAttributes(base...))
	mw.durations.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes(base...))
}
