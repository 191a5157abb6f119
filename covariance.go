package streamstats

import "math"

// Covariance estimates the arithmetic means and the covariance of a sequence of
// number pairs ("population").
//
// Because the variances are calculated as well, this can be used to calculate
// the Pearson correlation coefficient.
type Covariance struct {
	avgX    float64
	sumX2   float64
	avgY    float64
	sumY2   float64
	sumProd float64
	n       uint64
}

// NewCovariance creates a new covariance estimator.
func NewCovariance() *Covariance {
	return &Covariance{}
}

// Add adds an observation pair sampled from the population.
func (c *Covariance) Add(x, y float64) {
	c.n++
	n := float64(c.n)

	deltaX := x - c.avgX
	deltaXN := deltaX / n
	deltaYN := (y - c.avgY) / n

	c.avgX += deltaXN
	c.sumX2 += deltaXN * deltaXN * n * (n - 1)

	c.avgY += deltaYN
	c.sumY2 += deltaYN * deltaYN * n * (n - 1)

	// The cross term pairs the pre-update delta in x with the post-update
	// delta in y; this keeps the accumulation unbiased.
	c.sumProd += deltaX * (y - c.avgY)
}

// PopulationCovariance calculates the population covariance of the sample.
//
// This is a biased estimator of the covariance of the population.
//
// Returns NaN for an empty sample.
func (c *Covariance) PopulationCovariance() float64 {
	if c.n < 1 {
		return math.NaN()
	}

	return c.sumProd / float64(c.n)
}

// SampleCovariance calculates the sample covariance.
//
// This is an unbiased estimator of the covariance of the population.
//
// Returns NaN for samples of size 1 or less.
func (c *Covariance) SampleCovariance() float64 {
	if c.n < 2 {
		return math.NaN()
	}

	return c.sumProd / float64(c.n-1)
}

// Pearson calculates the population Pearson correlation coefficient.
//
// Returns NaN for samples of size 1 or less.
func (c *Covariance) Pearson() float64 {
	if c.n < 2 {
		return math.NaN()
	}

	return c.sumProd / math.Sqrt(c.sumX2*c.sumY2)
}

// Len returns the sample size.
func (c *Covariance) Len() uint64 {
	return c.n
}

// IsEmpty determines whether the sample is empty.
func (c *Covariance) IsEmpty() bool {
	return c.n == 0
}

// MeanX estimates the mean of the x population.
//
// Returns NaN for an empty sample.
func (c *Covariance) MeanX() float64 {
	if c.n == 0 {
		return math.NaN()
	}

	return c.avgX
}

// MeanY estimates the mean of the y population.
//
// Returns NaN for an empty sample.
func (c *Covariance) MeanY() float64 {
	if c.n == 0 {
		return math.NaN()
	}

	return c.avgY
}

// SampleVarianceX calculates the sample variance of x.
//
// Returns NaN for samples of size 1 or less.
func (c *Covariance) SampleVarianceX() float64 {
	if c.n < 2 {
		return math.NaN()
	}

	return c.sumX2 / float64(c.n-1)
}

// PopulationVarianceX calculates the population variance of the sample for x.
//
// Returns NaN for an empty sample.
func (c *Covariance) PopulationVarianceX() float64 {
	if c.n == 0 {
		return math.NaN()
	}

	return c.sumX2 / float64(c.n)
}

// SampleVarianceY calculates the sample variance of y.
//
// Returns NaN for samples of size 1 or less.
func (c *Covariance) SampleVarianceY() float64 {
	if c.n < 2 {
		return math.NaN()
	}

	return c.sumY2 / float64(c.n-1)
}

// PopulationVarianceY calculates the population variance of the sample for y.
//
// Returns NaN for an empty sample.
func (c *Covariance) PopulationVarianceY() float64 {
	if c.n == 0 {
		return math.NaN()
	}

	return c.sumY2 / float64(c.n)
}

// Merge merges another sample into this one.
//
// The combination is symmetric in x and y and uses the same weighted-delta
// technique as the univariate estimators.
func (c *Covariance) Merge(other *Covariance) {
	if other.n == 0 {
		return
	}

	if c.n == 0 {
		*c = *other

		return
	}

	deltaX := other.avgX - c.avgX
	deltaY := other.avgY - c.avgY
	lenSelf := float64(c.n)
	lenOther := float64(other.n)
	lenTotal := lenSelf + lenOther

	c.avgX = (lenSelf*c.avgX + lenOther*other.avgX) / lenTotal
	c.sumX2 += other.sumX2 + deltaX*deltaX*lenSelf*lenOther/lenTotal

	c.avgY = (lenSelf*c.avgY + lenOther*other.avgY) / lenTotal
	c.sumY2 += other.sumY2 + deltaY*deltaY*lenSelf*lenOther/lenTotal

	c.sumProd += other.sumProd + deltaX*deltaY*lenSelf*lenOther/lenTotal

	c.n += other.n
}
