package streamstats

import "math"

// Min estimates the minimum of a sequence of numbers ("population").
type Min struct {
	r Reduce
}

// NewMin creates a new minimum estimator.
func NewMin() *Min {
	return NewMinFromValue(math.Inf(1))
}

// NewMinFromValue creates a new minimum estimator from a given value.
func NewMinFromValue(x float64) *Min {
	return &Min{r: *NewReduce(x, math.Min)}
}

// Add adds an observation sampled from the population.
func (m *Min) Add(x float64) {
	m.r.Add(x)
}

// AddMany adds a sequence of observations sampled from the population.
func (m *Min) AddMany(samples ...float64) {
	for _, sample := range samples {
		m.Add(sample)
	}
}

// Min estimates the minimum of the population.
//
// Returns positive infinity for an empty sample.
func (m *Min) Min() float64 {
	return m.r.Reduction()
}

// Estimate returns the estimated minimum of the population.
func (m *Min) Estimate() float64 {
	return m.Min()
}

// Merge merges another sample into this one.
func (m *Min) Merge(other *Min) {
	m.Add(other.Min())
}

// Max estimates the maximum of a sequence of numbers ("population").
type Max struct {
	r Reduce
}

// NewMax creates a new maximum estimator.
func NewMax() *Max {
	return NewMaxFromValue(math.Inf(-1))
}

// NewMaxFromValue creates a new maximum estimator from a given value.
func NewMaxFromValue(x float64) *Max {
	return &Max{r: *NewReduce(x, math.Max)}
}

// Add adds an observation sampled from the population.
func (m *Max) Add(x float64) {
	m.r.Add(x)
}

// AddMany adds a sequence of observations sampled from the population.
func (m *Max) AddMany(samples ...float64) {
	for _, sample := range samples {
		m.Add(sample)
	}
}

// Max estimates the maximum of the population.
//
// Returns negative infinity for an empty sample.
func (m *Max) Max() float64 {
	return m.r.Reduction()
}

// Estimate returns the estimated maximum of the population.
func (m *Max) Estimate() float64 {
	return m.Max()
}

// Merge merges another sample into this one.
func (m *Max) Merge(other *Max) {
	m.Add(other.Max())
}
