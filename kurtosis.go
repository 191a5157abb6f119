package streamstats

import "math"

// Kurtosis estimates the arithmetic mean, the variance, the skewness and the
// kurtosis of a sequence of numbers ("population").
type Kurtosis struct {
	// Estimator of mean, variance and skewness.
	avg Skewness
	// Intermediate sum of terms to the fourth for calculating the kurtosis.
	sum4 float64
}

// NewKurtosis creates a new kurtosis estimator.
func NewKurtosis() *Kurtosis {
	return &Kurtosis{}
}

// increment bumps the sample size.
//
// This does not update anything else.
func (k *Kurtosis) increment() {
	k.avg.increment()
}

// addInner adds an observation given the difference from the pre-update mean
// and the same difference divided by the updated number of samples. The
// fourth-power term reads the pre-update square and cube accumulators before
// forwarding to the lower layers.
func (k *Kurtosis) addInner(delta, deltaN float64) {
	// This algorithm was suggested by Terriberry.
	//
	// See https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance.
	n := float64(k.Len())
	term := delta * deltaN * (n - 1)
	deltaNSq := deltaN * deltaN
	k.sum4 += term*deltaNSq*(n*n-3*n+3) +
		6*deltaNSq*k.avg.avg.sum2 -
		4*deltaN*k.avg.sum3
	k.avg.addInner(delta, deltaN)
}

// Add adds an observation sampled from the population.
func (k *Kurtosis) Add(sample float64) {
	delta := sample - k.avg.avg.avg.avg
	k.increment()
	n := float64(k.Len())
	k.addInner(delta, delta/n)
}

// AddMany adds a sequence of observations sampled from the population.
func (k *Kurtosis) AddMany(samples ...float64) {
	for _, sample := range samples {
		k.Add(sample)
	}
}

// IsEmpty determines whether the sample is empty.
func (k *Kurtosis) IsEmpty() bool {
	return k.avg.IsEmpty()
}

// Len returns the sample size.
func (k *Kurtosis) Len() uint64 {
	return k.avg.Len()
}

// Mean estimates the mean of the population.
//
// Returns NaN for an empty sample.
func (k *Kurtosis) Mean() float64 {
	return k.avg.Mean()
}

// SampleVariance calculates the sample variance.
//
// This is an unbiased estimator of the variance of the population.
//
// Returns NaN for samples of size 1 or less.
func (k *Kurtosis) SampleVariance() float64 {
	return k.avg.SampleVariance()
}

// PopulationVariance calculates the population variance of the sample.
//
// This is a biased estimator of the variance of the population.
//
// Returns NaN for an empty sample.
func (k *Kurtosis) PopulationVariance() float64 {
	return k.avg.PopulationVariance()
}

// ErrorMean estimates the standard error of the mean of the population.
func (k *Kurtosis) ErrorMean() float64 {
	return k.avg.ErrorMean()
}

// Skewness estimates the skewness of the population.
//
// Returns NaN for an empty sample.
func (k *Kurtosis) Skewness() float64 {
	return k.avg.Skewness()
}

// Kurtosis estimates the excess kurtosis of the population.
//
// Returns NaN for an empty sample.
func (k *Kurtosis) Kurtosis() float64 {
	if k.IsEmpty() {
		return math.NaN()
	}

	if k.sum4 == 0 {
		return 0
	}

	n := float64(k.Len())
	sum2 := k.avg.avg.sum2

	return n*k.sum4/(sum2*sum2) - 3
}

// Estimate returns the estimated excess kurtosis of the population.
func (k *Kurtosis) Estimate() float64 {
	return k.Kurtosis()
}

// Merge merges another sample into this one.
func (k *Kurtosis) Merge(other *Kurtosis) {
	if other.IsEmpty() {
		return
	}

	if k.IsEmpty() {
		*k = *other

		return
	}

	lenSelf := float64(k.Len())
	lenOther := float64(other.Len())
	lenTotal := lenSelf + lenOther
	delta := other.Mean() - k.Mean()
	deltaN := delta / lenTotal
	deltaNSq := deltaN * deltaN
	k.sum4 += other.sum4 +
		delta*deltaN*deltaNSq*lenSelf*lenOther*
			(lenSelf*lenSelf-lenSelf*lenOther+lenOther*lenOther) +
		6*deltaNSq*(lenSelf*lenSelf*other.avg.avg.sum2+lenOther*lenOther*k.avg.avg.sum2) +
		4*deltaN*(lenSelf*other.avg.sum3-lenOther*k.avg.sum3)
	k.avg.Merge(&other.avg)
}
