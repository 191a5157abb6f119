package streamstats

import "context"

// Service is the service interface for a Digest.
// It enables middleware to be added to the service.
type Service interface {
	// Observe folds the given samples into the digest
	Observe(ctx context.Context, samples ...float64) error
	// Summary returns a consistent snapshot of all tracked statistics
	Summary(ctx context.Context) Summary
	// Quantile returns the current estimate for the given probability
	Quantile(p float64) (float64, error)
	// Len returns the number of observed samples
	Len() uint64
	// Reset discards all observed samples
	Reset(ctx context.Context) error
}

var _ Service = (*Digest)(nil)

// Middleware describes a service middleware.
type Middleware func(Service) Service

// ApplyMiddleware applies middlewares to a service.
func ApplyMiddleware(svc Service, mw ...Middleware) Service {
	// Apply each middleware in the chain
	for _, m := range mw {
		svc = m(svc)
	}
	// Return the decorated service
	return svc
}
