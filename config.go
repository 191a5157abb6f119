package streamstats

// Config collects the configuration of a Digest before construction. It is
// populated through Option values and validated by NewDigest, which reports
// invalid probabilities and histogram definitions through the estimator
// constructors.
type Config struct {
	// Probabilities to track quantile estimators for.
	Probabilities []float64
	// HistogramBins is the number of equal-width histogram bins; zero
	// disables the histogram unless HistogramRanges is set.
	HistogramBins int
	// HistogramStart and HistogramEnd bound the equal-width histogram.
	HistogramStart float64
	HistogramEnd   float64
	// HistogramRanges defines variable-width bin edges and takes precedence
	// over the equal-width settings.
	HistogramRanges []float64
}

// Option is a function type that can be used to configure the `Config` of a
// Digest.
type Option func(*Config)

// ApplyOptions applies the given options to the given config.
func ApplyOptions(cfg *Config, options ...Option) {
	for _, option := range options {
		option(cfg)
	}
}
