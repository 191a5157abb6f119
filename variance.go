package streamstats

import "math"

// Variance estimates the arithmetic mean and the variance of a sequence of
// numbers ("population").
//
// This can be used to estimate the standard error of the mean.
type Variance struct {
	// Estimator of average.
	avg Mean
	// Intermediate sum of squares for calculating the variance.
	sum2 float64
}

// MeanWithError is an alias for Variance.
type MeanWithError = Variance

// NewVariance creates a new variance estimator.
func NewVariance() *Variance {
	return &Variance{}
}

// NewMeanWithError creates a new mean estimator that also tracks the standard
// error of the mean.
func NewMeanWithError() *MeanWithError {
	return NewVariance()
}

// increment bumps the sample size.
//
// This does not update anything else.
func (v *Variance) increment() {
	v.avg.increment()
}

// addInner adds an observation given an already calculated difference from the
// mean divided by the number of samples, assuming the inner count of the sample
// size was already updated.
func (v *Variance) addInner(deltaN float64) {
	// This algorithm introduced by Welford in 1962 trades numerical
	// stability for a division inside the loop.
	//
	// See https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance.
	n := float64(v.avg.n)
	v.avg.addInner(deltaN)
	v.sum2 += deltaN * deltaN * n * (n - 1)
}

// Add adds an observation sampled from the population.
func (v *Variance) Add(sample float64) {
	v.increment()
	deltaN := (sample - v.avg.avg) / float64(v.avg.n)
	v.addInner(deltaN)
}

// AddMany adds a sequence of observations sampled from the population.
func (v *Variance) AddMany(samples ...float64) {
	for _, sample := range samples {
		v.Add(sample)
	}
}

// IsEmpty determines whether the sample is empty.
func (v *Variance) IsEmpty() bool {
	return v.avg.IsEmpty()
}

// Len returns the sample size.
func (v *Variance) Len() uint64 {
	return v.avg.Len()
}

// Mean estimates the mean of the population.
//
// Returns NaN for an empty sample.
func (v *Variance) Mean() float64 {
	return v.avg.Mean()
}

// SampleVariance calculates the sample variance.
//
// This is an unbiased estimator of the variance of the population.
//
// Returns NaN for samples of size 1 or less.
func (v *Variance) SampleVariance() float64 {
	if v.avg.n < 2 {
		return math.NaN()
	}

	return v.sum2 / float64(v.avg.n-1)
}

// PopulationVariance calculates the population variance of the sample.
//
// This is a biased estimator of the variance of the population.
//
// Returns NaN for an empty sample.
func (v *Variance) PopulationVariance() float64 {
	if v.avg.n == 0 {
		return math.NaN()
	}

	return v.sum2 / float64(v.avg.n)
}

// Error estimates the standard error of the mean of the population.
//
// Returns NaN whenever the sample variance is undefined.
func (v *Variance) Error() float64 {
	if v.avg.n == 0 {
		return math.NaN()
	}

	return math.Sqrt(v.SampleVariance() / float64(v.avg.n))
}

// Estimate returns the estimated population variance.
func (v *Variance) Estimate() float64 {
	return v.PopulationVariance()
}

// Merge merges another sample into this one.
func (v *Variance) Merge(other *Variance) {
	if other.IsEmpty() {
		return
	}

	if v.IsEmpty() {
		*v = *other

		return
	}

	// This algorithm was proposed by Chan et al. in 1979.
	//
	// See https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance.
	lenSelf := float64(v.Len())
	lenOther := float64(other.Len())
	lenTotal := lenSelf + lenOther
	delta := other.Mean() - v.Mean()
	v.avg.Merge(&other.avg)
	v.sum2 += other.sum2 + delta*delta*lenSelf*lenOther/lenTotal
}
