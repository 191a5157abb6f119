package streamstats

import (
	"math"
	"slices"
	"sort"

	"github.com/hyp3rd/streamstats/internal/sentinel"
)

// Histogram counts samples falling into a fixed set of bins defined by sorted
// range values. Neighboring pairs (a, b) of the ranges define a bin for all x
// where a <= x < b. Infinite and zero-width bins are allowed; zero-width bins
// never receive counts.
type Histogram struct {
	// The ranges defining the bins of the histogram.
	ranges []float64
	// The bins of the histogram.
	bins []uint64
}

// NewHistogram constructs a histogram of the given number of bins with
// constant bin width over [start, end).
//
// Fails with ErrInvalidBinCount if bins is not positive.
func NewHistogram(bins int, start, end float64) (*Histogram, error) {
	if bins < 1 {
		return nil, sentinel.ErrInvalidBinCount
	}

	step := (end - start) / float64(bins)
	ranges := make([]float64, bins+1)

	for i := range ranges {
		ranges[i] = start + step*float64(i)
	}

	return &Histogram{
		ranges: ranges,
		bins:   make([]uint64, bins),
	}, nil
}

// NewHistogramFromRanges constructs a histogram from the given ranges.
//
// Fails with ErrNotEnoughRanges if fewer than two ranges are given, with
// ErrNotSorted if the ranges are not sorted, and with ErrNaNRange if a range
// contains NaN. Infinite and empty (zero-width) ranges are allowed.
func NewHistogramFromRanges(ranges []float64) (*Histogram, error) {
	if len(ranges) < 2 {
		return nil, sentinel.ErrNotEnoughRanges
	}

	for i, r := range ranges {
		if math.IsNaN(r) {
			return nil, sentinel.ErrNaNRange
		}

		if i > 0 && ranges[i-1] > r {
			return nil, sentinel.ErrNotSorted
		}
	}

	return &Histogram{
		ranges: slices.Clone(ranges),
		bins:   make([]uint64, len(ranges)-1),
	}, nil
}

// Find returns the index of the bin corresponding to the given sample.
//
// Fails with ErrSampleOutOfRange if the sample is below the first range or not
// below the last.
func (h *Histogram) Find(x float64) (int, error) {
	// Ranges were validated at construction, so a plain binary search for the
	// first range not below x is safe.
	i := sort.SearchFloat64s(h.ranges, x)
	if i == len(h.ranges) {
		return 0, sentinel.ErrSampleOutOfRange
	}

	if h.ranges[i] == x {
		// The sample sits exactly on a range value: it belongs to the bin
		// starting there, skipping any zero-width bins.
		for i < len(h.bins) && h.ranges[i+1] == x {
			i++
		}

		if i >= len(h.bins) {
			return 0, sentinel.ErrSampleOutOfRange
		}

		return i, nil
	}

	if i == 0 {
		return 0, sentinel.ErrSampleOutOfRange
	}

	return i - 1, nil
}

// Add adds a sample to the histogram.
//
// Fails with ErrSampleOutOfRange if the sample is out of range of the histogram.
func (h *Histogram) Add(x float64) error {
	i, err := h.Find(x)
	if err != nil {
		return err
	}

	h.bins[i]++

	return nil
}

// Ranges returns the ranges of the histogram.
func (h *Histogram) Ranges() []float64 {
	return h.ranges
}

// Bins returns the bins of the histogram.
func (h *Histogram) Bins() []uint64 {
	return h.bins
}

// Bar is one histogram bin together with its half-open range [Lo, Hi).
type Bar struct {
	Lo    float64
	Hi    float64
	Count uint64
}

// Bars returns every bin paired with its range, in ascending order.
func (h *Histogram) Bars() []Bar {
	bars := make([]Bar, len(h.bins))
	for i, count := range h.bins {
		bars[i] = Bar{Lo: h.ranges[i], Hi: h.ranges[i+1], Count: count}
	}

	return bars
}

// NumBins returns the number of bins.
func (h *Histogram) NumBins() int {
	return len(h.bins)
}

// Len returns the total number of samples counted by the histogram.
func (h *Histogram) Len() uint64 {
	var sum uint64
	for _, count := range h.bins {
		sum += count
	}

	return sum
}

// RangeMin returns the lower range limit.
//
// (The corresponding bin might be empty.)
func (h *Histogram) RangeMin() float64 {
	return h.ranges[0]
}

// RangeMax returns the upper range limit.
//
// (The corresponding bin might be empty.)
func (h *Histogram) RangeMax() float64 {
	return h.ranges[len(h.ranges)-1]
}

// Reset resets all bins to zero without touching the ranges.
func (h *Histogram) Reset() {
	clear(h.bins)
}

// Widths returns the widths of the bins.
func (h *Histogram) Widths() []float64 {
	widths := make([]float64, len(h.bins))
	for i := range widths {
		widths[i] = h.ranges[i+1] - h.ranges[i]
	}

	return widths
}

// Centers returns the centers of the bins.
func (h *Histogram) Centers() []float64 {
	centers := make([]float64, len(h.bins))
	for i := range centers {
		centers[i] = 0.5 * (h.ranges[i] + h.ranges[i+1])
	}

	return centers
}

// NormalizedBins returns the bins normalized by the bin widths, a density.
func (h *Histogram) NormalizedBins() []float64 {
	normalized := make([]float64, len(h.bins))
	for i := range normalized {
		normalized[i] = float64(h.bins[i]) / (h.ranges[i+1] - h.ranges[i])
	}

	return normalized
}

// Variance estimates the variance of the count in the given bin under a
// multinomial sampling model.
//
// The square root of this estimates the error of the bin count.
func (h *Histogram) Variance(bin int) float64 {
	return multinomialVariance(float64(h.bins[bin]), 1/float64(h.Len()))
}

// Variances estimates the variances of all bin counts.
//
// This is more efficient than calling Variance for each bin.
func (h *Histogram) Variances() []float64 {
	sumInv := 1 / float64(h.Len())

	variances := make([]float64, len(h.bins))
	for i, count := range h.bins {
		variances[i] = multinomialVariance(float64(count), sumInv)
	}

	return variances
}

// Merge adds the bin counts of another histogram to this one.
//
// Fails with ErrRangesMismatch unless both histograms have identical ranges.
func (h *Histogram) Merge(other *Histogram) error {
	if !slices.Equal(h.ranges, other.ranges) {
		return sentinel.ErrRangesMismatch
	}

	for i, count := range other.bins {
		h.bins[i] += count
	}

	return nil
}

// Scale multiplies all bin counts by the given factor.
func (h *Histogram) Scale(factor uint64) {
	for i := range h.bins {
		h.bins[i] *= factor
	}
}

// multinomialVariance calculates the multinomial variance of a bin count given
// the inverse of the total count.
func multinomialVariance(n, nTotInv float64) float64 {
	return n * (1 - n*nTotInv)
}
