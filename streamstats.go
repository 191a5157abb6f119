package streamstats

import (
	"context"
	"math"
	"sync"

	"github.com/hyp3rd/streamstats/internal/sentinel"
)

// Digest is a thread-safe aggregate over a single stream of observations. It
// maintains the full moment chain (mean, variance, skewness, kurtosis), the
// minimum and maximum, and optionally a set of quantile estimators and a
// histogram, all in constant memory per tracked statistic.
//
// A Digest implements Service and can be decorated with middleware.
type Digest struct {
	mu sync.RWMutex
	// Kurtosis carries the whole moment chain.
	moments   *Kurtosis
	minimum   *Min
	maximum   *Max
	quantiles []*Quantile
	histogram *Histogram
}

// NewDigest assembles a digest from the given options.
func NewDigest(options ...Option) (*Digest, error) {
	cfg := &Config{}
	ApplyOptions(cfg, options...)

	digest := &Digest{
		moments: NewKurtosis(),
		minimum: NewMin(),
		maximum: NewMax(),
	}

	for _, p := range cfg.Probabilities {
		quantile, err := NewQuantile(p)
		if err != nil {
			return nil, err
		}

		digest.quantiles = append(digest.quantiles, quantile)
	}

	if cfg.HistogramRanges != nil {
		histogram, err := NewHistogramFromRanges(cfg.HistogramRanges)
		if err != nil {
			return nil, err
		}

		digest.histogram = histogram
	} else if cfg.HistogramBins > 0 {
		histogram, err := NewHistogram(cfg.HistogramBins, cfg.HistogramStart, cfg.HistogramEnd)
		if err != nil {
			return nil, err
		}

		digest.histogram = histogram
	}

	return digest, nil
}

// Observe folds the given samples into the digest.
//
// When a histogram is configured, all samples are validated against its range
// before any state is mutated, so a failed Observe leaves the digest
// untouched. Fails with ErrSampleOutOfRange if a sample falls outside the
// histogram range, or with the context error if ctx is already done.
func (d *Digest) Observe(ctx context.Context, samples ...float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.histogram != nil {
		for _, sample := range samples {
			if _, err := d.histogram.Find(sample); err != nil {
				return err
			}
		}
	}

	for _, sample := range samples {
		d.moments.Add(sample)
		d.minimum.Add(sample)
		d.maximum.Add(sample)

		for _, quantile := range d.quantiles {
			quantile.Add(sample)
		}

		if d.histogram != nil {
			// Cannot fail, the samples were validated above.
			_ = d.histogram.Add(sample)
		}
	}

	return nil
}

// QuantileEstimate pairs a tracked probability with its current estimate.
type QuantileEstimate struct {
	Probability float64 `json:"probability"`
	Value       float64 `json:"value"`
}

// Summary is a point-in-time snapshot of the statistics of a digest.
//
// The moment statistics are NaN while the digest is empty (or, for the sample
// variance, has fewer than two samples); encode a Summary only after checking
// Len if the target format cannot represent NaN.
type Summary struct {
	Len               uint64             `json:"len"`
	Mean              float64            `json:"mean"`
	SampleVariance    float64            `json:"sample_variance"`
	StandardDeviation float64            `json:"standard_deviation"`
	Skewness          float64            `json:"skewness"`
	Kurtosis          float64            `json:"kurtosis"`
	Min               float64            `json:"min"`
	Max               float64            `json:"max"`
	Quantiles         []QuantileEstimate `json:"quantiles,omitempty"`
	Histogram         *HistogramState    `json:"histogram,omitempty"`
}

// Summary returns a consistent snapshot of all tracked statistics.
func (d *Digest) Summary(_ context.Context) Summary {
	d.mu.RLock()
	defer d.mu.RUnlock()

	summary := Summary{
		Len:               d.moments.Len(),
		Mean:              d.moments.Mean(),
		SampleVariance:    d.moments.SampleVariance(),
		StandardDeviation: math.Sqrt(d.moments.SampleVariance()),
		Skewness:          d.moments.Skewness(),
		Kurtosis:          d.moments.Kurtosis(),
		Min:               d.minimum.Min(),
		Max:               d.maximum.Max(),
	}

	for _, quantile := range d.quantiles {
		summary.Quantiles = append(summary.Quantiles, QuantileEstimate{
			Probability: quantile.Probability(),
			Value:       quantile.Quantile(),
		})
	}

	if d.histogram != nil {
		state := d.histogram.State()
		summary.Histogram = &state
	}

	return summary
}

// Quantile returns the current estimate for the given probability.
//
// Fails with ErrQuantileNotTracked if no estimator was configured for p.
func (d *Digest) Quantile(p float64) (float64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, quantile := range d.quantiles {
		if quantile.Probability() == p {
			return quantile.Quantile(), nil
		}
	}

	return 0, sentinel.ErrQuantileNotTracked
}

// Len returns the number of observed samples.
func (d *Digest) Len() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.moments.Len()
}

// Reset discards all observed samples, keeping the configuration (tracked
// probabilities and histogram ranges).
func (d *Digest) Reset(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.moments = NewKurtosis()
	d.minimum = NewMin()
	d.maximum = NewMax()

	for i, quantile := range d.quantiles {
		// 0 <= Probability() <= 1 holds for any constructed estimator.
		fresh, _ := NewQuantile(quantile.Probability())
		d.quantiles[i] = fresh
	}

	if d.histogram != nil {
		d.histogram.Reset()
	}

	return nil
}

// Merge merges another digest into this one, as if all samples observed by
// other had been observed by d.
//
// Fails with ErrQuantileMergeUnsupported if either digest tracks quantiles,
// and with ErrRangesMismatch if exactly one digest carries a histogram or the
// histogram ranges differ. A failed merge leaves d untouched.
//
// Merge locks d before other. Two digests must not be merged into each other
// concurrently, or the opposing lock orders can deadlock.
func (d *Digest) Merge(other *Digest) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	if len(d.quantiles) > 0 || len(other.quantiles) > 0 {
		return sentinel.ErrQuantileMergeUnsupported
	}

	if (d.histogram == nil) != (other.histogram == nil) {
		return sentinel.ErrRangesMismatch
	}

	if d.histogram != nil {
		if err := d.histogram.Merge(other.histogram); err != nil {
			return err
		}
	}

	d.moments.Merge(other.moments)
	d.minimum.Merge(other.minimum)
	d.maximum.Merge(other.maximum)

	return nil
}

// DigestState is the serializable state of a Digest.
type DigestState struct {
	Moments   KurtosisState   `json:"moments"`
	Min       MinState        `json:"min"`
	Max       MaxState        `json:"max"`
	Quantiles []QuantileState `json:"quantiles,omitempty"`
	Histogram *HistogramState `json:"histogram,omitempty"`
}

// State returns the serializable state of the digest.
func (d *Digest) State() DigestState {
	d.mu.RLock()
	defer d.mu.RUnlock()

	state := DigestState{
		Moments: d.moments.State(),
		Min:     d.minimum.State(),
		Max:     d.maximum.State(),
	}

	for _, quantile := range d.quantiles {
		state.Quantiles = append(state.Quantiles, quantile.State())
	}

	if d.histogram != nil {
		hs := d.histogram.State()
		state.Histogram = &hs
	}

	return state
}

// Restore replaces the digest state, including its configuration, with the
// given snapshot. Like the estimator Restore methods it performs no
// validation.
func (d *Digest) Restore(state DigestState) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.moments = NewKurtosis()
	d.moments.Restore(state.Moments)

	d.minimum = NewMin()
	d.minimum.Restore(state.Min)

	d.maximum = NewMax()
	d.maximum.Restore(state.Max)

	d.quantiles = d.quantiles[:0]
	for _, qs := range state.Quantiles {
		quantile := NewMedian()
		quantile.Restore(qs)
		d.quantiles = append(d.quantiles, quantile)
	}

	if state.Histogram != nil {
		d.histogram = &Histogram{}
		d.histogram.Restore(*state.Histogram)
	} else {
		d.histogram = nil
	}
}
