package streamstats

import (
	"math"
	"slices"

	"github.com/hyp3rd/streamstats/internal/sentinel"
)

// markerCount is the number of markers tracked by the P-squared algorithm: the
// two extremes, the target quantile and its two neighbors.
const markerCount = 5

// Quantile estimates the p-quantile of a sequence of numbers ("population")
// in constant memory using the P-squared algorithm by Jain and Chlamtac.
//
// Two independently accumulated Quantile estimators cannot be merged: the
// marker state is not commutative-mergeable. Use a mergeable sketch if
// distributed quantile estimation is required.
type Quantile struct {
	// Marker heights.
	q [markerCount]float64
	// Marker positions. n[4] doubles as the sample size.
	n [markerCount]int64
	// Desired marker positions.
	m [markerCount]float64
	// Increment in desired marker positions.
	dm [markerCount]float64
}

// NewQuantile creates a new p-quantile estimator.
//
// Fails with ErrInvalidProbability if p is not between 0 and 1.
func NewQuantile(p float64) (*Quantile, error) {
	if !(0 <= p && p <= 1) {
		return nil, sentinel.ErrInvalidProbability
	}

	return &Quantile{
		n:  [markerCount]int64{1, 2, 3, 4, 0},
		m:  [markerCount]float64{1, 1 + 2*p, 1 + 4*p, 3 + 2*p, 5},
		dm: [markerCount]float64{0, p / 2, p, (1 + p) / 2, 1},
	}, nil
}

// NewMedian creates a new estimator of the median.
func NewMedian() *Quantile {
	q, _ := NewQuantile(0.5) // 0.5 is always valid

	return q
}

// Probability returns the probability this estimator tracks the quantile of.
func (q *Quantile) Probability() float64 {
	return q.dm[2]
}

// Len returns the sample size.
func (q *Quantile) Len() uint64 {
	return uint64(q.n[4])
}

// IsEmpty determines whether the sample is empty.
func (q *Quantile) IsEmpty() bool {
	return q.n[4] == 0
}

// Add adds an observation sampled from the population.
func (q *Quantile) Add(x float64) {
	// The first five samples are buffered into the marker height slots and
	// sorted once the fifth arrives.
	if q.n[4] < markerCount {
		q.q[q.n[4]] = x
		q.n[4]++

		if q.n[4] == markerCount {
			slices.Sort(q.q[:])
		}

		return
	}

	// Find cell k containing the new sample, extending the range markers if
	// it falls outside.
	var k int

	if x < q.q[0] {
		q.q[0] = x
		k = 0
	} else {
		k = 4

		for i := 1; i < markerCount; i++ {
			if x < q.q[i] {
				k = i

				break
			}
		}

		if q.q[4] < x {
			q.q[4] = x
		}
	}

	// Increment positions of all markers at or above k, and advance the
	// desired positions by their fixed increments.
	for i := k; i < markerCount; i++ {
		q.n[i]++
	}

	for i := range markerCount {
		q.m[i] += q.dm[i]
	}

	// Adjust the heights of the interior markers that drifted at least one
	// position away from their desired position.
	for i := 1; i < markerCount-1; i++ {
		d := q.m[i] - float64(q.n[i])

		if (d >= 1 && q.n[i+1]-q.n[i] > 1) || (d <= -1 && q.n[i-1]-q.n[i] < -1) {
			var s int64 = 1
			if d < 0 {
				s = -1
			}

			d = float64(s)

			qNew := q.parabolic(i, d)
			if q.q[i-1] < qNew && qNew < q.q[i+1] {
				q.q[i] = qNew
			} else {
				q.q[i] = q.linear(i, d)
			}

			q.n[i] += s
		}
	}
}

// AddMany adds a sequence of observations sampled from the population.
func (q *Quantile) AddMany(samples ...float64) {
	for _, sample := range samples {
		q.Add(sample)
	}
}

// parabolic predicts the height of marker i after moving it by d (which must
// be +1 or -1) using piecewise-parabolic interpolation of the neighbors.
func (q *Quantile) parabolic(i int, d float64) float64 {
	s := int64(d)

	return q.q[i] + d/float64(q.n[i+1]-q.n[i-1])*
		(float64(q.n[i]-q.n[i-1]+s)*(q.q[i+1]-q.q[i])/float64(q.n[i+1]-q.n[i])+
			float64(q.n[i+1]-q.n[i]-s)*(q.q[i]-q.q[i-1])/float64(q.n[i]-q.n[i-1]))
}

// linear predicts the height of marker i after moving it by d (which must be
// +1 or -1) using linear interpolation towards the neighbor in that direction.
func (q *Quantile) linear(i int, d float64) float64 {
	s := int(d)

	return q.q[i] + d*(q.q[i+s]-q.q[i])/float64(q.n[i+s]-q.n[i])
}

// Quantile estimates the p-quantile of the population.
//
// Returns NaN for an empty sample. For fewer than five samples the estimate is
// the nearest rank of the sorted partial buffer, averaging the two neighbors
// when the desired rank falls exactly between them.
func (q *Quantile) Quantile() float64 {
	if q.n[4] >= markerCount {
		return q.q[2]
	}

	if q.IsEmpty() {
		return math.NaN()
	}

	length := int(q.n[4])
	heights := make([]float64, length)
	copy(heights, q.q[:length])
	slices.Sort(heights)

	desired := float64(length)*q.Probability() - 1

	index := math.Ceil(desired)
	if desired == index && index >= 0 {
		if i := int(index); i < length-1 {
			// The desired rank is exactly at i, so average with the
			// next height.
			return 0.5 * (heights[i] + heights[i+1])
		}
	}

	index = math.Max(index, 0)

	return heights[min(int(index), length-1)]
}

// Estimate returns the estimated p-quantile of the population.
func (q *Quantile) Estimate() float64 {
	return q.Quantile()
}
