// Package signal provides the smoothing primitives used to condition noisy
// hand-landmark signals: a single-channel exponential low-pass filter and a
// critically-damped spring smoother with dead-zone gating.
package signal

// Filter is a recursive exponential (EMA) low-pass filter over a scalar
// signal. A freshly constructed or reset filter is unseeded: the next sample
// is adopted verbatim instead of blended, so a legitimate zero value is never
// confused with "no history".
type Filter struct {
	alpha    float64
	estimate float64
	seeded   bool
}

// NewFilter creates a Filter with the given smoothing coefficient.
// alpha must be in (0, 1]; alpha=1 disables smoothing entirely.
func NewFilter(alpha float64) *Filter {
	return &Filter{alpha: alpha}
}

// Filter feeds one sample through the filter and returns the new estimate.
// The first sample after construction or Reset seeds the estimate directly.
func (f *Filter) Filter(sample float64) float64 {
	if !f.seeded {
		f.estimate = sample
		f.seeded = true
		return sample
	}
	f.estimate = f.alpha*sample + (1-f.alpha)*f.estimate
	return f.estimate
}

// SetAlpha changes the smoothing coefficient. The current estimate is kept;
// only the blend weight of future samples changes.
func (f *Filter) SetAlpha(alpha float64) {
	f.alpha = alpha
}

// Reset clears the filter back to the unseeded state. There is no decay:
// the next sample re-seeds the estimate unconditionally.
func (f *Filter) Reset() {
	f.estimate = 0
	f.seeded = false
}

// Seeded reports whether the filter currently holds an estimate.
func (f *Filter) Seeded() bool {
	return f.seeded
}

// Estimate returns the current estimate. Only meaningful when Seeded.
func (f *Filter) Estimate() float64 {
	return f.estimate
}
