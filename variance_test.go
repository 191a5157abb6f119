package streamstats

import (
	"math"
	"testing"

	"github.com/longbridgeapp/assert"
)

func TestVariance(t *testing.T) {
	variance := NewVariance()
	variance.AddMany(1, 2, 3, 4, 5)

	assert.Equal(t, uint64(5), variance.Len())
	assert.Equal(t, 3.0, variance.Mean())
	assert.Equal(t, 2.5, variance.SampleVariance())
	assert.Equal(t, 2.0, variance.PopulationVariance())
	assertAlmostEq(t, math.Sqrt(0.5), variance.Error(), 1e-15)
}

func TestVarianceIllDefined(t *testing.T) {
	variance := NewVariance()

	assert.True(t, math.IsNaN(variance.Mean()))
	assert.True(t, math.IsNaN(variance.SampleVariance()))
	assert.True(t, math.IsNaN(variance.PopulationVariance()))

	variance.Add(1)

	// A single sample has a population variance but no sample variance.
	assert.Equal(t, 0.0, variance.PopulationVariance())
	assert.True(t, math.IsNaN(variance.SampleVariance()))
}

func TestVarianceNumericalStability(t *testing.T) {
	// The textbook two-pass formula catastrophically cancels on data with a
	// large common offset; the streaming update does not.
	variance := NewVariance()
	variance.AddMany(1e9+4, 1e9+7, 1e9+13, 1e9+16)

	assert.Equal(t, 30.0, variance.SampleVariance())
}

func TestVarianceMerge(t *testing.T) {
	samples := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	sequential := NewVariance()
	sequential.AddMany(samples...)

	splitMerge(samples,
		NewVariance,
		func(v *Variance, x float64) { v.Add(x) },
		func(dst, src *Variance) { dst.Merge(src) },
		func(merged *Variance, split int) {
			assert.Equal(t, sequential.Len(), merged.Len())
			assertAlmostEq(t, sequential.Mean(), merged.Mean(), 1e-14)
			assertAlmostEq(t, sequential.SampleVariance(), merged.SampleVariance(), 1e-13)
		})
}

func TestVarianceMergeEmpty(t *testing.T) {
	variance := NewVariance()
	variance.AddMany(1, 2, 3)

	variance.Merge(NewVariance())
	assert.Equal(t, uint64(3), variance.Len())
	assert.Equal(t, 1.0, variance.SampleVariance())

	other := NewVariance()
	other.Merge(variance)
	assert.Equal(t, uint64(3), other.Len())
	assert.Equal(t, 1.0, other.SampleVariance())
}
