package streamstats

// ReduceFunc is an associative binary operation folded over a sequence.
type ReduceFunc func(a, b float64) float64

// Reduce estimates the reduction of a sequence of numbers ("population") under
// a given associative binary operation, for example the minimum or maximum.
//
// Everything is calculated iteratively in constant memory.
type Reduce struct {
	x      float64
	reduce ReduceFunc
}

// NewReduce creates a new reduction estimator given an initial value and a
// reduction. The initial value should be the identity element of the
// reduction, so that merging with an empty estimator is a no-op.
func NewReduce(x float64, f ReduceFunc) *Reduce {
	return &Reduce{x: x, reduce: f}
}

// Add adds an observation sampled from the population.
func (r *Reduce) Add(x float64) {
	r.x = r.reduce(r.x, x)
}

// Reduction estimates the reduction of the population.
func (r *Reduce) Reduction() float64 {
	return r.x
}

// Estimate returns the estimated reduction of the population.
func (r *Reduce) Estimate() float64 {
	return r.Reduction()
}

// Merge merges another sample into this one.
func (r *Reduce) Merge(other *Reduce) {
	r.Add(other.x)
}
