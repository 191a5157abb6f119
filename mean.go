// Package streamstats provides single-pass estimators for statistical moments
// and order statistics of a numeric sequence. Every estimator runs in constant
// memory, uses numerically stable update formulas, and (where mathematically
// possible) supports merging independently accumulated partial estimators into
// one equivalent to having observed the union of their samples.
package streamstats

import "math"

// Mean estimates the arithmetic mean of a sequence of numbers ("population").
type Mean struct {
	// Mean value.
	avg float64
	// Sample size.
	n uint64
}

// NewMean creates a new mean estimator.
func NewMean() *Mean {
	return &Mean{}
}

// increment bumps the sample size.
//
// This does not update anything else.
func (m *Mean) increment() {
	m.n++
}

// addInner adds an observation given an already calculated difference from the
// mean divided by the number of samples, assuming the inner count of the sample
// size was already updated.
//
// This is useful for avoiding unnecessary divisions in the inner loop.
func (m *Mean) addInner(deltaN float64) {
	// This algorithm introduced by Welford in 1962 trades numerical
	// stability for a division inside the loop.
	//
	// See https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance.
	m.avg += deltaN
}

// Add adds an observation sampled from the population.
func (m *Mean) Add(sample float64) {
	m.increment()
	deltaN := (sample - m.avg) / float64(m.n)
	m.addInner(deltaN)
}

// AddMany adds a sequence of observations sampled from the population.
func (m *Mean) AddMany(samples ...float64) {
	for _, sample := range samples {
		m.Add(sample)
	}
}

// IsEmpty determines whether the sample is empty.
func (m *Mean) IsEmpty() bool {
	return m.n == 0
}

// Len returns the sample size.
func (m *Mean) Len() uint64 {
	return m.n
}

// Mean estimates the mean of the population.
//
// Returns NaN for an empty sample.
func (m *Mean) Mean() float64 {
	if m.n == 0 {
		return math.NaN()
	}

	return m.avg
}

// Estimate returns the estimated mean of the population.
func (m *Mean) Estimate() float64 {
	return m.Mean()
}

// Merge merges another sample into this one.
//
// Merging is commutative and associative up to floating point rounding, so
// partial estimators built over disjoint chunks of a sequence can be folded
// together in any order.
func (m *Mean) Merge(other *Mean) {
	if other.IsEmpty() {
		return
	}

	if m.IsEmpty() {
		*m = *other

		return
	}

	// This algorithm was proposed by Chan et al. in 1979.
	//
	// See https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance.
	lenSelf := float64(m.n)
	lenOther := float64(other.n)
	lenTotal := lenSelf + lenOther
	m.n += other.n
	m.avg = (lenSelf*m.avg + lenOther*other.avg) / lenTotal
	// Chan et al. use
	//
	//     m.avg += delta * lenOther / lenTotal
	//
	// instead, but this results in cancellation if the number of samples are similar.
}
