package streamstats

import (
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/streamstats/internal/libs/serializer"
)

func TestVarianceStateRoundTrip(t *testing.T) {
	for _, serializerType := range []string{"default", "msgpack", "cbor"} {
		t.Run(serializerType, func(t *testing.T) {
			ser, err := serializer.New(serializerType)
			assert.Nil(t, err)

			variance := NewVariance()
			variance.AddMany(1, 2, 3, 4, 5)

			data, err := ser.Marshal(variance.State())
			assert.Nil(t, err)

			var state VarianceState

			assert.Nil(t, ser.Unmarshal(data, &state))

			restored := NewVariance()
			restored.Restore(state)

			assert.Equal(t, variance.Len(), restored.Len())
			assert.Equal(t, variance.Mean(), restored.Mean())
			assert.Equal(t, variance.SampleVariance(), restored.SampleVariance())

			// The restored estimator keeps accumulating as if it never
			// left the process.
			variance.Add(6)
			restored.Add(6)
			assert.Equal(t, variance.SampleVariance(), restored.SampleVariance())
		})
	}
}

func TestKurtosisStateRoundTrip(t *testing.T) {
	ser, err := serializer.New("msgpack")
	assert.Nil(t, err)

	kurtosis := NewKurtosis()
	kurtosis.AddMany(1, 2, 3, 4, 5, 1)

	data, err := ser.Marshal(kurtosis.State())
	assert.Nil(t, err)

	var state KurtosisState

	assert.Nil(t, ser.Unmarshal(data, &state))

	restored := NewKurtosis()
	restored.Restore(state)

	assert.Equal(t, kurtosis.Len(), restored.Len())
	assert.Equal(t, kurtosis.Kurtosis(), restored.Kurtosis())
	assert.Equal(t, kurtosis.Skewness(), restored.Skewness())
}

func TestMomentsStateRoundTrip(t *testing.T) {
	ser, err := serializer.New("cbor")
	assert.Nil(t, err)

	moments, err := NewMoments(6)
	assert.Nil(t, err)

	moments.AddMany(2, 1, 4, 9, 5, 1, 9)

	data, err := ser.Marshal(moments.State())
	assert.Nil(t, err)

	var state MomentsState

	assert.Nil(t, ser.Unmarshal(data, &state))

	restored, err := NewMoments(4)
	assert.Nil(t, err)

	restored.Restore(state)

	assert.Equal(t, 6, restored.MaxOrder())
	assert.Equal(t, moments.Len(), restored.Len())

	for order := 2; order <= 6; order++ {
		assert.Equal(t, moments.CentralMoment(order), restored.CentralMoment(order))
	}
}

func TestQuantileStateRoundTrip(t *testing.T) {
	ser, err := serializer.New("default")
	assert.Nil(t, err)

	quantile, err := NewQuantile(0.9)
	assert.Nil(t, err)

	for i := range 100 {
		quantile.Add(float64(i))
	}

	data, err := ser.Marshal(quantile.State())
	assert.Nil(t, err)

	var state QuantileState

	assert.Nil(t, ser.Unmarshal(data, &state))

	restored := NewMedian()
	restored.Restore(state)

	assert.Equal(t, 0.9, restored.Probability())
	assert.Equal(t, quantile.Len(), restored.Len())
	assert.Equal(t, quantile.Quantile(), restored.Quantile())
}

func TestHistogramStateRoundTrip(t *testing.T) {
	ser, err := serializer.New("msgpack")
	assert.Nil(t, err)

	histogram, err := NewHistogram(4, 0, 4)
	assert.Nil(t, err)

	assert.Nil(t, histogram.Add(0.5))
	assert.Nil(t, histogram.Add(2.5))

	data, err := ser.Marshal(histogram.State())
	assert.Nil(t, err)

	var state HistogramState

	assert.Nil(t, ser.Unmarshal(data, &state))

	restored := &Histogram{}
	restored.Restore(state)

	assert.Equal(t, histogram.Ranges(), restored.Ranges())
	assert.Equal(t, histogram.Bins(), restored.Bins())
}

func TestCovarianceWeightedMinMaxStateRoundTrip(t *testing.T) {
	covariance := NewCovariance()
	covariance.Add(1, 5)
	covariance.Add(2, 4)

	restoredCov := NewCovariance()
	restoredCov.Restore(covariance.State())
	assert.Equal(t, covariance.PopulationCovariance(), restoredCov.PopulationCovariance())

	weighted := NewWeightedMeanWithError()
	weighted.Add(1, 1)
	weighted.Add(2, 3)

	restoredWeighted := NewWeightedMeanWithError()
	restoredWeighted.Restore(weighted.State())
	assert.Equal(t, weighted.WeightedMean(), restoredWeighted.WeightedMean())
	assert.Equal(t, weighted.Error(), restoredWeighted.Error())

	minimum := NewMin()
	minimum.AddMany(3, 1, 2)

	restoredMin := NewMin()
	restoredMin.Restore(minimum.State())
	assert.Equal(t, 1.0, restoredMin.Min())

	maximum := NewMax()
	maximum.AddMany(3, 1, 2)

	restoredMax := NewMax()
	restoredMax.Restore(maximum.State())
	assert.Equal(t, 3.0, restoredMax.Max())
}
