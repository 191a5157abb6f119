// Package middleware provides various middleware implementations for the
// streamstats service. This package includes logging middleware that wraps the
// digest service to provide execution time logging and method call tracing for
// debugging and monitoring purposes.
package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/streamstats"
)

// Logger describes a logging interface allowing to implement different external, or custom logger.
// Tested with logrus, and Uber's Zap (high-performance), but should work with any other logger that matches the interface.
type Logger interface {
	Printf(format string, v ...any)
}

// LoggingMiddleware is a middleware that logs the time it takes to execute the next middleware.
// Must implement the streamstats.Service interface.
type LoggingMiddleware struct {
	next   streamstats.Service
	logger Logger
}

// NewLoggingMiddleware returns a new LoggingMiddleware.
func NewLoggingMiddleware(next streamstats.Service, logger Logger) streamstats.Service {
	return &LoggingMiddleware{next: next, logger: logger}
}

// Observe logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Observe(ctx context.Context, samples ...float64) error {
	defer func(begin time.Time) {
		mw.logger.Printf("method Observe took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Observe method called with %d samples", len(samples))

	return mw.next.Observe(ctx, samples...)
}

// Summary logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Summary(ctx context.Context) streamstats.Summary {
	defer func(begin time.Time) {
		mw.logger.Printf("method Summary took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Summary method invoked")

	return mw.next.Summary(ctx)
}

// Quantile logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Quantile(p float64) (float64, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Quantile took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Quantile method invoked with probability: %f", p)

	return mw.next.Quantile(p)
}

// Len returns the number of observed samples.
func (mw LoggingMiddleware) Len() uint64 {
	return mw.next.Len()
}

// Reset logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Reset(ctx context.Context) error {
	defer func(begin time.Time) {
		mw.logger.Printf("method Reset took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Reset method invoked")

	return mw.next.Reset(ctx)
}
