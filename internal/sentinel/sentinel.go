// Package sentinel provides standardized error definitions for the streamstats library.
// This package centralizes all error types used across the estimator components,
// ensuring consistent error handling and messaging throughout the module.
//
// The errors defined here cover various scenarios including:
// - Invalid construction parameters (probabilities, bin ranges, moment orders)
// - Recoverable runtime conditions (samples falling outside a histogram range)
// - Component initialization errors (nil clients, missing serializers)
//
// All errors are created using the ewrap package to provide enhanced error
// wrapping and context capabilities.
package sentinel

import (
	"github.com/hyp3rd/ewrap"
)

var (
	// ErrInvalidProbability is returned when a quantile estimator is constructed
	// with a probability outside the closed interval [0, 1].
	ErrInvalidProbability = ewrap.New("probability must be between 0 and 1")

	// ErrNotEnoughRanges is returned when a histogram is constructed from fewer
	// than two range values (at least one bin is required).
	ErrNotEnoughRanges = ewrap.New("not enough ranges")

	// ErrNotSorted is returned when histogram ranges are not sorted in
	// non-decreasing order.
	ErrNotSorted = ewrap.New("ranges are not sorted")

	// ErrNaNRange is returned when a histogram range contains NaN.
	ErrNaNRange = ewrap.New("ranges contain nan")

	// ErrSampleOutOfRange is returned when a sample falls outside the range
	// covered by a histogram. This is a recoverable condition; the caller
	// decides whether to drop, clamp, or abort.
	ErrSampleOutOfRange = ewrap.New("sample out of range")

	// ErrRangesMismatch is returned when two histograms with different ranges
	// are combined.
	ErrRangesMismatch = ewrap.New("histograms must have the same ranges")

	// ErrInvalidOrder is returned when a general moments estimator is
	// constructed with a maximum order below 4. Lower orders are covered by the
	// specialized Mean, Variance, Skewness and Kurtosis estimators.
	ErrInvalidOrder = ewrap.New("moments order must be at least 4")

	// ErrOrderMismatch is returned when two moments estimators of different
	// maximum order are merged.
	ErrOrderMismatch = ewrap.New("moments estimators must have the same order")

	// ErrInvalidCapacity is returned when an invalid capacity is passed to an
	// estimator holding a fixed-size buffer.
	ErrInvalidCapacity = ewrap.New("capacity must be positive")

	// ErrInvalidBinCount is returned when a histogram is constructed with a
	// non-positive number of bins.
	ErrInvalidBinCount = ewrap.New("bin count must be positive")

	// ErrQuantileNotTracked is returned when a digest is queried for a quantile
	// probability it was not configured to track.
	ErrQuantileNotTracked = ewrap.New("quantile not tracked")

	// ErrQuantileMergeUnsupported is returned when merging digests that track
	// quantiles. The P-squared marker state is not mergeable; use a mergeable
	// sketch if distributed quantiles are required.
	ErrQuantileMergeUnsupported = ewrap.New("quantile estimators cannot be merged")

	// ErrNilClient is returned when a nil client is passed to a snapshot store.
	ErrNilClient = ewrap.New("nil client")

	// ErrParamCannotBeEmpty is returned when a parameter cannot be empty.
	ErrParamCannotBeEmpty = ewrap.New("param cannot be empty")

	// ErrSerializerNotFound is returned when a serializer is not found.
	ErrSerializerNotFound = ewrap.New("serializer not found")

	// ErrSnapshotNotFound is returned when a named snapshot does not exist in
	// the store.
	ErrSnapshotNotFound = ewrap.New("snapshot not found")

	// ErrMgmtHTTPShutdownTimeout is returned when the management HTTP server fails to shutdown before context deadline.
	ErrMgmtHTTPShutdownTimeout = ewrap.New("management http shutdown timeout")
)
