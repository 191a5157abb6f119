// Package middleware contains service middlewares for streamstats.
package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyp3rd/streamstats"
	"github.com/hyp3rd/streamstats/internal/telemetry/attrs"
)

// OTelTracingMiddleware wraps streamstats.Service methods with OpenTelemetry spans.
type OTelTracingMiddleware struct {
	next   streamstats.Service
	tracer trace.Tracer
	// static attributes applied to all spans
	commonAttrs []attribute.KeyValue
}

// OTelTracingOption allows configuring the tracing middleware.
type OTelTracingOption func(*OTelTracingMiddleware)

// WithCommonAttributes sets attributes applied to all spans.
func WithCommonAttributes(attributes ...attribute.KeyValue) OTelTracingOption {
	return func(m *OTelTracingMiddleware) { m.commonAttrs = append(m.commonAttrs, attributes...) }
}

// NewOTelTracingMiddleware creates a tracing middleware.
func NewOTelTracingMiddleware(next streamstats.Service, tracer trace.Tracer, opts ...OTelTracingOption) streamstats.Service {
	mw := &OTelTracingMiddleware{next: next, tracer: tracer}
	for _, o := range opts {
		o(mw)
	}

	return mw
}

// Observe implements Service.Observe with tracing.
func (mw OTelTracingMiddleware) Observe(ctx context.Context, samples ...float64) error {
	ctx, span := mw.startSpan(ctx, "streamstats.Observe", attribute.Int(attrs.AttrSamplesCount, len(samples)))
	defer span.End()

	err := mw.next.Observe(ctx, samples...)
	if err != nil {
		span.RecordError(err)
	}

	return err
}

// Summary implements Service.Summary with tracing.
func (mw OTelTracingMiddleware) Summary(ctx context.Context) streamstats.Summary {
	ctx, span := mw.startSpan(ctx, "streamstats.Summary")
	defer span.End()

	summary := mw.next.Summary(ctx)
	span.SetAttributes(
		attribute.Int(attrs.AttrQuantilesCount, len(summary.Quantiles)),
		attribute.Int64(attrs.AttrSampleSize, int64(summary.Len))) //nolint:gosec

	return summary
}

// Quantile implements Service.Quantile with tracing.
func (mw OTelTracingMiddleware) Quantile(p float64) (float64, error) {
	_, span := mw.startSpan(context.Background(), "streamstats.Quantile", attribute.Float64(attrs.AttrProbability, p))
	defer span.End()

	value, err := mw.next.Quantile(p)
	if err != nil {
		span.RecordError(err)
	}

	return value, err
}

// Len returns the number of observed samples.
func (mw OTelTracingMiddleware) Len() uint64 { return mw.next.Len() }

// Reset implements Service.Reset with tracing.
func (mw OTelTracingMiddleware) Reset(ctx context.Context) error {
	ctx, span := mw.startSpan(ctx, "streamstats.Reset")
	defer span.End()

	err := mw.next.Reset(ctx)
	if err != nil {
		span.RecordError(err)
	}

	return err
}

// startSpan starts a span with common and provided attributes.
func (mw OTelTracingMiddleware) startSpan(ctx context.Context, name string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := mw.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(mw.commonAttrs) > 0 {
		span.SetAttributes(mw.commonAttrs...)
	}

	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}

	return ctx, span
}
