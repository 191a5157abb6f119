package streamstats

import (
	"math"
	"testing"
)

// assertAlmostEq fails the test when actual is not within eps of expected.
func assertAlmostEq(t *testing.T, expected, actual, eps float64) {
	t.Helper()

	if math.Abs(expected-actual) > eps {
		t.Errorf("expected %v, got %v (eps %v)", expected, actual, eps)
	}
}

// splitMerge folds samples into two estimators split at every possible index
// and merges them, calling check on each merged result.
func splitMerge[E any](
	samples []float64,
	newEstimator func() E,
	add func(E, float64),
	merge func(dst, src E),
	check func(merged E, split int),
) {
	for split := 0; split <= len(samples); split++ {
		left, right := newEstimator(), newEstimator()

		for _, sample := range samples[:split] {
			add(left, sample)
		}

		for _, sample := range samples[split:] {
			add(right, sample)
		}

		merge(left, right)
		check(left, split)
	}
}
