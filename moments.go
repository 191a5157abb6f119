package streamstats

import (
	"math"
	"slices"

	"github.com/hyp3rd/streamstats/internal/sentinel"
)

// minMomentsOrder is the smallest maximum order a general moments estimator
// supports; lower orders are covered by the specialized chain.
const minMomentsOrder = 4

// Moments estimates the central moments of a sequence of numbers ("population")
// up to an arbitrary maximum order fixed at construction time.
//
// It generalizes the Variance, Skewness and Kurtosis estimators: the update and
// merge formulas combine the lower-order accumulators with powers of the
// sample's distance from the mean, weighted by binomial coefficients.
//
// See https://doi.org/10.1007/s00180-015-0637-z.
type Moments struct {
	// Maximum order of the tracked central moments.
	maxOrder int
	// Sample size.
	n uint64
	// Mean value.
	avg float64
	// Sums of powers of deviations from the mean, for orders 2 to maxOrder.
	// The zeroth moment is the sample size and the first is zero; neither is stored.
	m []float64
}

// NewMoments creates a new moments estimator tracking central moments up to
// maxOrder. Fails with ErrInvalidOrder if maxOrder is less than 4.
func NewMoments(maxOrder int) (*Moments, error) {
	if maxOrder < minMomentsOrder {
		return nil, sentinel.ErrInvalidOrder
	}

	return &Moments{
		maxOrder: maxOrder,
		m:        make([]float64, maxOrder-1),
	}, nil
}

// MaxOrder returns the maximum order of the tracked central moments.
func (mo *Moments) MaxOrder() int {
	return mo.maxOrder
}

// IsEmpty determines whether the sample is empty.
func (mo *Moments) IsEmpty() bool {
	return mo.n == 0
}

// Len returns the sample size.
func (mo *Moments) Len() uint64 {
	return mo.n
}

// Mean estimates the mean of the population.
//
// Returns NaN for an empty sample.
func (mo *Moments) Mean() float64 {
	if mo.n == 0 {
		return math.NaN()
	}

	return mo.avg
}

// Add adds an observation sampled from the population.
func (mo *Moments) Add(sample float64) {
	delta := sample - mo.avg
	mo.n++
	n := float64(mo.n)
	deltaN := delta / n
	mo.avg += deltaN

	// The cross terms for each order combine the pre-update lower-order
	// accumulators, so keep a copy before mutating.
	prev := slices.Clone(mo.m)
	negDeltaN := -deltaN
	nm1 := n - 1

	for p := 2; p <= mo.maxOrder; p++ {
		var cross float64

		coeff := 1.0
		pow := 1.0

		for k := 1; k <= p-2; k++ {
			coeff *= float64(p-k+1) / float64(k)
			pow *= negDeltaN
			cross += coeff * pow * prev[p-k-2]
		}

		direct := math.Pow(delta, float64(p)) * nm1 *
			(math.Pow(nm1, float64(p-1)) - negOnePow(p-1)) /
			math.Pow(n, float64(p))

		mo.m[p-2] += cross + direct
	}
}

// AddMany adds a sequence of observations sampled from the population.
func (mo *Moments) AddMany(samples ...float64) {
	for _, sample := range samples {
		mo.Add(sample)
	}
}

// Merge merges another sample into this one.
//
// Fails with ErrOrderMismatch when the estimators track different maximum orders.
func (mo *Moments) Merge(other *Moments) error {
	if mo.maxOrder != other.maxOrder {
		return sentinel.ErrOrderMismatch
	}

	if other.n == 0 {
		return nil
	}

	if mo.n == 0 {
		mo.n = other.n
		mo.avg = other.avg
		copy(mo.m, other.m)

		return nil
	}

	lenSelf := float64(mo.n)
	lenOther := float64(other.n)
	lenTotal := lenSelf + lenOther
	delta := other.avg - mo.avg
	prevSelf := slices.Clone(mo.m)

	for p := 2; p <= mo.maxOrder; p++ {
		var cross float64

		coeff := 1.0
		powSelf := 1.0  // (lenSelf/lenTotal)^k, weights the other sample's terms
		powOther := 1.0 // (-lenOther/lenTotal)^k, weights this sample's terms
		powDelta := 1.0

		for k := 1; k <= p-2; k++ {
			coeff *= float64(p-k+1) / float64(k)
			powSelf *= lenSelf / lenTotal
			powOther *= -lenOther / lenTotal
			powDelta *= delta
			cross += coeff * powDelta * (powOther*prevSelf[p-k-2] + powSelf*other.m[p-k-2])
		}

		direct := math.Pow(lenSelf*lenOther*delta/lenTotal, float64(p)) *
			(1/math.Pow(lenOther, float64(p-1)) -
				negOnePow(p-1)/math.Pow(lenSelf, float64(p-1)))

		mo.m[p-2] += other.m[p-2] + cross + direct
	}

	mo.avg = (lenSelf*mo.avg + lenOther*other.avg) / lenTotal
	mo.n += other.n

	return nil
}

// CentralMoment calculates the central moment of the given order.
//
// The zeroth central moment is 1 and the first is 0 by definition. Higher
// orders return NaN for an empty sample; querying an order above the maximum
// panics.
func (mo *Moments) CentralMoment(order int) float64 {
	switch order {
	case 0:
		return 1
	case 1:
		return 0
	default:
		return mo.m[order-2] / float64(mo.n)
	}
}

// StandardizedMoment calculates the standardized moment of the given order,
// the central moment normalized by the variance to the power order/2.
//
// The zeroth standardized moment is the sample size, the first is 0 and the
// second is 1 by definition. Panics for higher orders if the variance of the
// sample is exactly zero.
func (mo *Moments) StandardizedMoment(order int) float64 {
	switch order {
	case 0:
		return float64(mo.n)
	case 1:
		return 0
	case 2:
		return 1
	}

	variance := mo.CentralMoment(2)
	if variance == 0 {
		panic("streamstats: standardized moment of a sample with zero variance")
	}

	return mo.CentralMoment(order) / math.Pow(variance, float64(order)/2)
}

// SampleVariance calculates the sample variance.
//
// This is an unbiased estimator of the variance of the population.
//
// Returns NaN for samples of size 1 or less.
func (mo *Moments) SampleVariance() float64 {
	if mo.n < 2 {
		return math.NaN()
	}

	return mo.m[0] / float64(mo.n-1)
}

// SampleSkewness calculates the sample skewness, applying the bias correction
// for samples of size 3 or more.
//
// Returns NaN for samples of size 1 or less.
func (mo *Moments) SampleSkewness() float64 {
	if mo.n < 2 {
		return math.NaN()
	}

	n := float64(mo.n)
	uncorrected := math.Sqrt(n) * mo.m[1] / math.Pow(mo.m[0], 1.5)

	if mo.n < 3 {
		// Maximum likelihood estimate without bias correction; the
		// correction term divides by n-2.
		return uncorrected
	}

	return math.Sqrt(n*(n-1)) / (n - 2) * uncorrected
}

// negOnePow returns (-1)^k.
func negOnePow(k int) float64 {
	if k%2 == 0 {
		return 1
	}

	return -1
}
