package streamstats

import "math"

// Skewness estimates the arithmetic mean, the variance and the skewness of a
// sequence of numbers ("population").
type Skewness struct {
	// Estimator of mean and variance.
	avg MeanWithError
	// Intermediate sum of cubes for calculating the skewness.
	sum3 float64
}

// NewSkewness creates a new skewness estimator.
func NewSkewness() *Skewness {
	return &Skewness{}
}

// increment bumps the sample size.
//
// This does not update anything else.
func (s *Skewness) increment() {
	s.avg.increment()
}

// addInner adds an observation given the difference from the pre-update mean
// and the same difference divided by the updated number of samples. The cubes
// term is combined with the pre-update lower-order accumulator before the
// latter is advanced; reordering silently corrupts the result.
func (s *Skewness) addInner(delta, deltaN float64) {
	// This algorithm was suggested by Terriberry.
	//
	// See https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance.
	n := float64(s.Len())
	term := delta * deltaN * (n - 1)
	s.sum3 += term*deltaN*(n-2) - 3*deltaN*s.avg.sum2
	s.avg.addInner(deltaN)
}

// Add adds an observation sampled from the population.
func (s *Skewness) Add(sample float64) {
	delta := sample - s.avg.avg.avg
	s.increment()
	n := float64(s.Len())
	s.addInner(delta, delta/n)
}

// AddMany adds a sequence of observations sampled from the population.
func (s *Skewness) AddMany(samples ...float64) {
	for _, sample := range samples {
		s.Add(sample)
	}
}

// IsEmpty determines whether the sample is empty.
func (s *Skewness) IsEmpty() bool {
	return s.avg.IsEmpty()
}

// Len returns the sample size.
func (s *Skewness) Len() uint64 {
	return s.avg.Len()
}

// Mean estimates the mean of the population.
//
// Returns NaN for an empty sample.
func (s *Skewness) Mean() float64 {
	return s.avg.Mean()
}

// SampleVariance calculates the sample variance.
//
// This is an unbiased estimator of the variance of the population.
//
// Returns NaN for samples of size 1 or less.
func (s *Skewness) SampleVariance() float64 {
	return s.avg.SampleVariance()
}

// PopulationVariance calculates the population variance of the sample.
//
// This is a biased estimator of the variance of the population.
//
// Returns NaN for an empty sample.
func (s *Skewness) PopulationVariance() float64 {
	return s.avg.PopulationVariance()
}

// ErrorMean estimates the standard error of the mean of the population.
func (s *Skewness) ErrorMean() float64 {
	return s.avg.Error()
}

// Skewness estimates the skewness of the population.
//
// Returns NaN for an empty sample.
func (s *Skewness) Skewness() float64 {
	if s.IsEmpty() {
		return math.NaN()
	}

	if s.sum3 == 0 {
		return 0
	}

	n := float64(s.Len())
	sum2 := s.avg.sum2

	return math.Sqrt(n) * s.sum3 / math.Sqrt(sum2*sum2*sum2)
}

// Estimate returns the estimated skewness of the population.
func (s *Skewness) Estimate() float64 {
	return s.Skewness()
}

// Merge merges another sample into this one.
func (s *Skewness) Merge(other *Skewness) {
	if other.IsEmpty() {
		return
	}

	if s.IsEmpty() {
		*s = *other

		return
	}

	lenSelf := float64(s.Len())
	lenOther := float64(other.Len())
	lenTotal := lenSelf + lenOther
	delta := other.Mean() - s.Mean()
	deltaN := delta / lenTotal
	s.sum3 += other.sum3 +
		delta*deltaN*deltaN*lenSelf*lenOther*(lenSelf-lenOther) +
		3*deltaN*(lenSelf*other.avg.sum2-lenOther*s.avg.sum2)
	s.avg.Merge(&other.avg)
}
