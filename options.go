package streamstats

// WithQuantiles is an option that adds a quantile estimator for each of the
// given probabilities. Each probability must be between 0 and 1; NewDigest
// fails with ErrInvalidProbability otherwise.
func WithQuantiles(probabilities ...float64) Option {
	return func(cfg *Config) {
		cfg.Probabilities = append(cfg.Probabilities, probabilities...)
	}
}

// WithMedian is an option that adds a median estimator, shorthand for
// WithQuantiles(0.5).
func WithMedian() Option {
	return WithQuantiles(0.5)
}

// WithHistogram is an option that adds a histogram of the given number of
// equal-width bins over [start, end). Samples outside the range make Observe
// fail with ErrSampleOutOfRange.
func WithHistogram(bins int, start, end float64) Option {
	return func(cfg *Config) {
		cfg.HistogramBins = bins
		cfg.HistogramStart = start
		cfg.HistogramEnd = end
	}
}

// WithHistogramRanges is an option that adds a histogram with variable-width
// bins defined by the given sorted edges. It takes precedence over
// WithHistogram.
func WithHistogramRanges(ranges ...float64) Option {
	return func(cfg *Config) {
		cfg.HistogramRanges = ranges
	}
}
