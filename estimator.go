package streamstats

// Estimator is the interface implemented by every estimator that consumes one
// float64 sample at a time and produces a single derived statistic.
//
// Estimators that consume pairs (Covariance, the weighted estimators) or
// produce structured results (Histogram) have the same accumulate/query shape
// but their own method signatures.
type Estimator interface {
	// Add adds an observation sampled from the population.
	Add(sample float64)
	// Estimate returns the estimated statistic of the population.
	Estimate() float64
}

// FromSamples folds a sequence of samples into the given estimator and
// returns it, enabling one-call construction:
//
//	m := streamstats.FromSamples(streamstats.NewMean(), 1, 2, 3)
func FromSamples[E Estimator](estimator E, samples ...float64) E {
	for _, sample := range samples {
		estimator.Add(sample)
	}

	return estimator
}

var (
	_ Estimator = (*Mean)(nil)
	_ Estimator = (*Variance)(nil)
	_ Estimator = (*Skewness)(nil)
	_ Estimator = (*Kurtosis)(nil)
	_ Estimator = (*Quantile)(nil)
	_ Estimator = (*Min)(nil)
	_ Estimator = (*Max)(nil)
	_ Estimator = (*Reduce)(nil)
)
