package streamstats

import "math"

// WeightedMean estimates the weighted arithmetic mean of a sequence of numbers
// ("population").
type WeightedMean struct {
	// Sum of the weights.
	weightSum float64
	// Weighted mean value.
	weightedAvg float64
}

// NewWeightedMean creates a new weighted mean estimator.
func NewWeightedMean() *WeightedMean {
	return &WeightedMean{}
}

// Add adds an observation with the given weight sampled from the population.
func (w *WeightedMean) Add(sample, weight float64) {
	// The algorithm for the weighted mean was suggested by West in 1979.
	//
	// See https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance.
	w.weightSum += weight

	// The divisor is the weight sum including the new weight; updating the
	// sum first is part of the algorithm, not an accident.
	prevAvg := w.weightedAvg
	w.weightedAvg = prevAvg + (weight/w.weightSum)*(sample-prevAvg)
}

// IsEmpty determines whether the sample is empty.
//
// Might be a false positive if the sum of weights is zero.
func (w *WeightedMean) IsEmpty() bool {
	return w.weightSum == 0
}

// SumWeights returns the sum of the weights.
//
// Returns 0 for an empty sample.
func (w *WeightedMean) SumWeights() float64 {
	return w.weightSum
}

// Mean estimates the weighted mean of the population.
//
// Returns NaN for an empty sample, or if the sum of weights is zero.
func (w *WeightedMean) Mean() float64 {
	if w.IsEmpty() {
		return math.NaN()
	}

	return w.weightedAvg
}

// Merge merges another sample into this one.
func (w *WeightedMean) Merge(other *WeightedMean) {
	if other.IsEmpty() {
		return
	}

	if w.IsEmpty() {
		*w = *other

		return
	}

	totalWeightSum := w.weightSum + other.weightSum
	w.weightedAvg = (w.weightSum*w.weightedAvg + other.weightSum*other.weightedAvg) /
		totalWeightSum
	w.weightSum = totalWeightSum
}

// WeightedMeanWithError estimates the weighted and unweighted arithmetic mean
// and the unweighted variance of a sequence of numbers ("population").
//
// This can be used to estimate the standard error of the weighted mean.
type WeightedMeanWithError struct {
	// Sum of the squares of the weights.
	weightSumSq float64
	// Estimator of the weighted mean.
	weightedAvg WeightedMean
	// Estimator of unweighted mean and its variance.
	unweightedAvg MeanWithError
}

// NewWeightedMeanWithError creates a new weighted and unweighted mean estimator.
func NewWeightedMeanWithError() *WeightedMeanWithError {
	return &WeightedMeanWithError{}
}

// Add adds an observation with the given weight sampled from the population.
func (w *WeightedMeanWithError) Add(sample, weight float64) {
	// The algorithm for the unweighted mean was suggested by Welford in 1962.
	// The algorithm for the weighted mean was suggested by West in 1979.
	//
	// See
	// https://en.wikipedia.org/wiki/Algorithms_for_calculating_variance
	// and
	// http://people.ds.cam.ac.uk/fanf2/hermes/doc/antiforgery/stats.pdf.
	w.weightSumSq += weight * weight
	w.weightedAvg.Add(sample, weight)
	w.unweightedAvg.Add(sample)
}

// IsEmpty determines whether the sample is empty.
func (w *WeightedMeanWithError) IsEmpty() bool {
	return w.unweightedAvg.IsEmpty()
}

// SumWeights returns the sum of the weights.
//
// Returns 0 for an empty sample.
func (w *WeightedMeanWithError) SumWeights() float64 {
	return w.weightedAvg.SumWeights()
}

// SumWeightsSq returns the sum of the squared weights.
//
// Returns 0 for an empty sample.
func (w *WeightedMeanWithError) SumWeightsSq() float64 {
	return w.weightSumSq
}

// WeightedMean estimates the weighted mean of the population.
//
// Returns NaN for an empty sample, or if the sum of weights is zero.
func (w *WeightedMeanWithError) WeightedMean() float64 {
	return w.weightedAvg.Mean()
}

// UnweightedMean estimates the unweighted mean of the population.
//
// Returns NaN for an empty sample.
func (w *WeightedMeanWithError) UnweightedMean() float64 {
	return w.unweightedAvg.Mean()
}

// Len returns the sample size.
func (w *WeightedMeanWithError) Len() uint64 {
	return w.unweightedAvg.Len()
}

// EffectiveLen calculates the effective sample size.
func (w *WeightedMeanWithError) EffectiveLen() float64 {
	if w.IsEmpty() {
		return 0
	}

	weightSum := w.weightedAvg.SumWeights()

	return weightSum * weightSum / w.weightSumSq
}

// PopulationVariance calculates the *unweighted* population variance of the sample.
//
// This is a biased estimator of the variance of the population.
//
// Returns NaN for an empty sample.
func (w *WeightedMeanWithError) PopulationVariance() float64 {
	return w.unweightedAvg.PopulationVariance()
}

// SampleVariance calculates the *unweighted* sample variance.
//
// This is an unbiased estimator of the variance of the population.
//
// Returns NaN for samples of size 1 or less.
func (w *WeightedMeanWithError) SampleVariance() float64 {
	return w.unweightedAvg.SampleVariance()
}

// VarianceOfWeightedMean estimates the variance of the *weighted* mean of the
// population.
//
// Returns NaN if the sample is empty, or if the sum of weights is zero.
//
// This unbiased estimator assumes that the samples were independently drawn
// from the same population with constant variance.
func (w *WeightedMeanWithError) VarianceOfWeightedMean() float64 {
	// This uses the same estimate as WinCross, which should provide better
	// results than the ones used by SPSS or Mentor.
	//
	// See http://www.analyticalgroup.com/download/WEIGHTED_VARIANCE.pdf.
	weightSum := w.weightedAvg.SumWeights()
	if weightSum == 0 {
		return math.NaN()
	}

	invEffectiveLen := w.weightSumSq / (weightSum * weightSum)

	return w.SampleVariance() * invEffectiveLen
}

// Error estimates the standard error of the *weighted* mean of the population.
//
// Returns NaN if the sample is empty, or if the sum of weights is zero.
func (w *WeightedMeanWithError) Error() float64 {
	return math.Sqrt(w.VarianceOfWeightedMean())
}

// Merge merges another sample into this one.
func (w *WeightedMeanWithError) Merge(other *WeightedMeanWithError) {
	w.weightSumSq += other.weightSumSq
	w.weightedAvg.Merge(&other.weightedAvg)
	w.unweightedAvg.Merge(&other.unweightedAvg)
}
