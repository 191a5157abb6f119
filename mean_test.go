package streamstats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/longbridgeapp/assert"
)

func TestMean(t *testing.T) {
	mean := NewMean()
	mean.AddMany(1, 2, 3, 4, 5)

	assert.Equal(t, uint64(5), mean.Len())
	assert.Equal(t, 3.0, mean.Mean())
	assert.Equal(t, 3.0, mean.Estimate())
	assert.False(t, mean.IsEmpty())
}

func TestMeanEmpty(t *testing.T) {
	mean := NewMean()

	assert.True(t, mean.IsEmpty())
	assert.Equal(t, uint64(0), mean.Len())
	assert.True(t, math.IsNaN(mean.Mean()))
}

func TestMeanMerge(t *testing.T) {
	samples := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	sequential := NewMean()
	sequential.AddMany(samples...)

	splitMerge(samples,
		NewMean,
		func(m *Mean, x float64) { m.Add(x) },
		func(dst, src *Mean) { dst.Merge(src) },
		func(merged *Mean, split int) {
			assert.Equal(t, sequential.Len(), merged.Len())
			assertAlmostEq(t, sequential.Mean(), merged.Mean(), 1e-14)
		})
}

func TestMeanMergeEmpty(t *testing.T) {
	mean := NewMean()
	mean.AddMany(1, 2)

	empty := NewMean()
	mean.Merge(empty)

	assert.Equal(t, uint64(2), mean.Len())
	assert.Equal(t, 1.5, mean.Mean())

	// Merging into an empty estimator copies the other side verbatim.
	other := NewMean()
	other.Merge(mean)

	assert.Equal(t, uint64(2), other.Len())
	assert.Equal(t, 1.5, other.Mean())
}

func TestMeanBounds(t *testing.T) {
	// The mean of any sample lies between its extremes.
	rng := rand.New(rand.NewPCG(42, 0))

	for range 100 {
		mean := NewMean()
		lo, hi := math.Inf(1), math.Inf(-1)

		for range 1 + rng.IntN(100) {
			x := rng.Float64()*2e3 - 1e3
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
			mean.Add(x)
		}

		assert.True(t, lo <= mean.Mean())
		assert.True(t, mean.Mean() <= hi)
	}
}
