package streamstats

import (
	"math"
	"testing"

	"github.com/longbridgeapp/assert"
)

func TestSkewness(t *testing.T) {
	skewness := NewSkewness()
	skewness.AddMany(1, 2, 3, 4, 5)

	assert.Equal(t, uint64(5), skewness.Len())
	assert.Equal(t, 3.0, skewness.Mean())
	assert.Equal(t, 2.5, skewness.SampleVariance())
	assert.Equal(t, 0.0, skewness.Skewness())

	// Appending a low outlier skews the distribution to the right.
	skewness.Add(1)
	assertAlmostEq(t, 0.2795084971874741, skewness.Skewness(), 1e-15)
}

func TestSkewnessEmpty(t *testing.T) {
	skewness := NewSkewness()

	assert.True(t, skewness.IsEmpty())
	assert.True(t, math.IsNaN(skewness.Skewness()))
}

func TestSkewnessConstant(t *testing.T) {
	skewness := NewSkewness()
	skewness.AddMany(7, 7, 7, 7)

	// Degenerate distribution, zero by convention.
	assert.Equal(t, 0.0, skewness.Skewness())
}

func TestSkewnessMerge(t *testing.T) {
	samples := []float64{1, 2, 3, 4, 5, 1, 9, 2, 2}

	sequential := NewSkewness()
	sequential.AddMany(samples...)

	splitMerge(samples,
		NewSkewness,
		func(s *Skewness, x float64) { s.Add(x) },
		func(dst, src *Skewness) { dst.Merge(src) },
		func(merged *Skewness, split int) {
			assert.Equal(t, sequential.Len(), merged.Len())
			assertAlmostEq(t, sequential.Mean(), merged.Mean(), 1e-14)
			assertAlmostEq(t, sequential.SampleVariance(), merged.SampleVariance(), 1e-13)
			assertAlmostEq(t, sequential.Skewness(), merged.Skewness(), 1e-13)
		})
}
