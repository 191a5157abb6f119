// Package attrs provides reusable OpenTelemetry attribute key constants
// to avoid duplication across middlewares.
package attrs

const (
	// AttrSamplesCount represents the telemetry attribute key for the number
	// of samples folded into the digest by a single call.
	AttrSamplesCount = "samples.count"
	// AttrQuantilesCount represents the telemetry attribute key for the number
	// of quantile estimators a summary carries.
	AttrQuantilesCount = "quantiles.count"
	// AttrProbability represents the telemetry attribute key for the
	// probability a quantile query targets.
	AttrProbability = "probability"
	// AttrSampleSize represents the telemetry attribute key for the total
	// number of samples observed so far.
	AttrSampleSize = "sample.size"
)
