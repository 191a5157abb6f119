package streamstats

import (
	"math"
	"testing"

	"github.com/longbridgeapp/assert"
)

func TestCovariance(t *testing.T) {
	covariance := NewCovariance()

	pairs := [][2]float64{{1, 5}, {2, 4}, {3, 3}, {4, 2}, {5, 1}}
	for _, pair := range pairs {
		covariance.Add(pair[0], pair[1])
	}

	assert.Equal(t, uint64(5), covariance.Len())
	assert.Equal(t, 3.0, covariance.MeanX())
	assert.Equal(t, 3.0, covariance.MeanY())
	assert.Equal(t, -2.0, covariance.PopulationCovariance())
	assert.Equal(t, -2.5, covariance.SampleCovariance())
	assertAlmostEq(t, -1.0, covariance.Pearson(), 1e-15)
	assert.Equal(t, 2.5, covariance.SampleVarianceX())
	assert.Equal(t, 2.0, covariance.PopulationVarianceY())
}

func TestCovarianceEmpty(t *testing.T) {
	covariance := NewCovariance()

	assert.True(t, covariance.IsEmpty())
	assert.True(t, math.IsNaN(covariance.MeanX()))
	assert.True(t, math.IsNaN(covariance.PopulationCovariance()))
	assert.True(t, math.IsNaN(covariance.SampleCovariance()))
}

func TestCovarianceSymmetry(t *testing.T) {
	xy := NewCovariance()
	yx := NewCovariance()

	pairs := [][2]float64{{1.2, 9}, {4.4, 2}, {2.9, 7.7}, {8, 1}, {5, 5.5}}
	for _, pair := range pairs {
		xy.Add(pair[0], pair[1])
		yx.Add(pair[1], pair[0])
	}

	assertAlmostEq(t, xy.PopulationCovariance(), yx.PopulationCovariance(), 1e-14)
	assertAlmostEq(t, xy.Pearson(), yx.Pearson(), 1e-14)
	assertAlmostEq(t, xy.MeanX(), yx.MeanY(), 1e-14)
}

func TestCovarianceMerge(t *testing.T) {
	pairs := [][2]float64{{1, 5}, {2, 4}, {3, 3}, {4, 2}, {5, 1}, {9, 9}, {2.5, 0.5}}

	sequential := NewCovariance()
	for _, pair := range pairs {
		sequential.Add(pair[0], pair[1])
	}

	for split := 0; split <= len(pairs); split++ {
		left, right := NewCovariance(), NewCovariance()

		for _, pair := range pairs[:split] {
			left.Add(pair[0], pair[1])
		}

		for _, pair := range pairs[split:] {
			right.Add(pair[0], pair[1])
		}

		left.Merge(right)

		assert.Equal(t, sequential.Len(), left.Len())
		assertAlmostEq(t, sequential.MeanX(), left.MeanX(), 1e-14)
		assertAlmostEq(t, sequential.MeanY(), left.MeanY(), 1e-14)
		assertAlmostEq(t, sequential.PopulationCovariance(), left.PopulationCovariance(), 1e-13)
		assertAlmostEq(t, sequential.SampleVarianceX(), left.SampleVarianceX(), 1e-13)
		assertAlmostEq(t, sequential.SampleVarianceY(), left.SampleVarianceY(), 1e-13)
	}
}
