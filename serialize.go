package streamstats

import "slices"

// The State types expose an estimator's internal accumulators as plain data so
// it can be snapshotted through a serializer and restored later, for example
// to persist a long-running aggregation across restarts.
//
// Restore intentionally performs no validation: a snapshot is trusted to have
// been produced by State on the same estimator type. Feeding a hand-crafted
// snapshot with inconsistent accumulators yields undefined estimates, not an
// error.

// MeanState is the serializable state of a Mean estimator.
type MeanState struct {
	Avg float64 `json:"avg"`
	N   uint64  `json:"n"`
}

// State returns the serializable state of the estimator.
func (m *Mean) State() MeanState {
	return MeanState{Avg: m.avg, N: m.n}
}

// Restore replaces the estimator state with the given snapshot.
func (m *Mean) Restore(state MeanState) {
	m.avg = state.Avg
	m.n = state.N
}

// VarianceState is the serializable state of a Variance estimator.
type VarianceState struct {
	Avg  MeanState `json:"avg"`
	Sum2 float64   `json:"sum_2"`
}

// State returns the serializable state of the estimator.
func (v *Variance) State() VarianceState {
	return VarianceState{Avg: v.avg.State(), Sum2: v.sum2}
}

// Restore replaces the estimator state with the given snapshot.
func (v *Variance) Restore(state VarianceState) {
	v.avg.Restore(state.Avg)
	v.sum2 = state.Sum2
}

// SkewnessState is the serializable state of a Skewness estimator.
type SkewnessState struct {
	Avg  VarianceState `json:"avg"`
	Sum3 float64       `json:"sum_3"`
}

// State returns the serializable state of the estimator.
func (s *Skewness) State() SkewnessState {
	return SkewnessState{Avg: s.avg.State(), Sum3: s.sum3}
}

// Restore replaces the estimator state with the given snapshot.
func (s *Skewness) Restore(state SkewnessState) {
	s.avg.Restore(state.Avg)
	s.sum3 = state.Sum3
}

// KurtosisState is the serializable state of a Kurtosis estimator.
type KurtosisState struct {
	Avg  SkewnessState `json:"avg"`
	Sum4 float64       `json:"sum_4"`
}

// State returns the serializable state of the estimator.
func (k *Kurtosis) State() KurtosisState {
	return KurtosisState{Avg: k.avg.State(), Sum4: k.sum4}
}

// Restore replaces the estimator state with the given snapshot.
func (k *Kurtosis) Restore(state KurtosisState) {
	k.avg.Restore(state.Avg)
	k.sum4 = state.Sum4
}

// MomentsState is the serializable state of a Moments estimator.
type MomentsState struct {
	MaxOrder int       `json:"max_order"`
	N        uint64    `json:"n"`
	Avg      float64   `json:"avg"`
	M        []float64 `json:"m"`
}

// State returns the serializable state of the estimator.
func (mo *Moments) State() MomentsState {
	return MomentsState{
		MaxOrder: mo.maxOrder,
		N:        mo.n,
		Avg:      mo.avg,
		M:        slices.Clone(mo.m),
	}
}

// Restore replaces the estimator state with the given snapshot.
func (mo *Moments) Restore(state MomentsState) {
	mo.maxOrder = state.MaxOrder
	mo.n = state.N
	mo.avg = state.Avg
	mo.m = slices.Clone(state.M)
}

// CovarianceState is the serializable state of a Covariance estimator.
type CovarianceState struct {
	AvgX    float64 `json:"avg_x"`
	SumX2   float64 `json:"sum_x_2"`
	AvgY    float64 `json:"avg_y"`
	SumY2   float64 `json:"sum_y_2"`
	SumProd float64 `json:"sum_prod"`
	N       uint64  `json:"n"`
}

// State returns the serializable state of the estimator.
func (c *Covariance) State() CovarianceState {
	return CovarianceState{
		AvgX:    c.avgX,
		SumX2:   c.sumX2,
		AvgY:    c.avgY,
		SumY2:   c.sumY2,
		SumProd: c.sumProd,
		N:       c.n,
	}
}

// Restore replaces the estimator state with the given snapshot.
func (c *Covariance) Restore(state CovarianceState) {
	c.avgX = state.AvgX
	c.sumX2 = state.SumX2
	c.avgY = state.AvgY
	c.sumY2 = state.SumY2
	c.sumProd = state.SumProd
	c.n = state.N
}

// WeightedMeanState is the serializable state of a WeightedMean estimator.
type WeightedMeanState struct {
	WeightSum   float64 `json:"weight_sum"`
	WeightedAvg float64 `json:"weighted_avg"`
}

// State returns the serializable state of the estimator.
func (w *WeightedMean) State() WeightedMeanState {
	return WeightedMeanState{WeightSum: w.weightSum, WeightedAvg: w.weightedAvg}
}

// Restore replaces the estimator state with the given snapshot.
func (w *WeightedMean) Restore(state WeightedMeanState) {
	w.weightSum = state.WeightSum
	w.weightedAvg = state.WeightedAvg
}

// WeightedMeanWithErrorState is the serializable state of a
// WeightedMeanWithError estimator.
type WeightedMeanWithErrorState struct {
	WeightSumSq   float64           `json:"weight_sum_sq"`
	WeightedAvg   WeightedMeanState `json:"weighted_avg"`
	UnweightedAvg VarianceState     `json:"unweighted_avg"`
}

// State returns the serializable state of the estimator.
func (w *WeightedMeanWithError) State() WeightedMeanWithErrorState {
	return WeightedMeanWithErrorState{
		WeightSumSq:   w.weightSumSq,
		WeightedAvg:   w.weightedAvg.State(),
		UnweightedAvg: w.unweightedAvg.State(),
	}
}

// Restore replaces the estimator state with the given snapshot.
func (w *WeightedMeanWithError) Restore(state WeightedMeanWithErrorState) {
	w.weightSumSq = state.WeightSumSq
	w.weightedAvg.Restore(state.WeightedAvg)
	w.unweightedAvg.Restore(state.UnweightedAvg)
}

// QuantileState is the serializable state of a Quantile estimator.
type QuantileState struct {
	Q  [markerCount]float64 `json:"q"`
	N  [markerCount]int64   `json:"n"`
	M  [markerCount]float64 `json:"m"`
	DM [markerCount]float64 `json:"dm"`
}

// State returns the serializable state of the estimator.
func (q *Quantile) State() QuantileState {
	return QuantileState{Q: q.q, N: q.n, M: q.m, DM: q.dm}
}

// Restore replaces the estimator state with the given snapshot.
func (q *Quantile) Restore(state QuantileState) {
	q.q = state.Q
	q.n = state.N
	q.m = state.M
	q.dm = state.DM
}

// HistogramState is the serializable state of a Histogram.
type HistogramState struct {
	Ranges []float64 `json:"ranges"`
	Bins   []uint64  `json:"bins"`
}

// State returns the serializable state of the histogram.
func (h *Histogram) State() HistogramState {
	return HistogramState{
		Ranges: slices.Clone(h.ranges),
		Bins:   slices.Clone(h.bins),
	}
}

// Restore replaces the histogram state with the given snapshot.
func (h *Histogram) Restore(state HistogramState) {
	h.ranges = slices.Clone(state.Ranges)
	h.bins = slices.Clone(state.Bins)
}

// MinState is the serializable state of a Min estimator.
type MinState struct {
	Min float64 `json:"min"`
}

// State returns the serializable state of the estimator.
func (m *Min) State() MinState {
	return MinState{Min: m.r.x}
}

// Restore replaces the estimator state with the given snapshot.
func (m *Min) Restore(state MinState) {
	m.r.x = state.Min
}

// MaxState is the serializable state of a Max estimator.
type MaxState struct {
	Max float64 `json:"max"`
}

// State returns the serializable state of the estimator.
func (m *Max) State() MaxState {
	return MaxState{Max: m.r.x}
}

// Restore replaces the estimator state with the given snapshot.
func (m *Max) Restore(state MaxState) {
	m.r.x = state.Max
}
