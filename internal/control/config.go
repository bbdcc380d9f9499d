package control

import "time"

// Config is the read-only tuning surface of the controller: the tracking
// grace window, per-channel spring stiffness and dead zones, per-signal
// filter coefficients, the auto-rotate motion, and the gain/clamp constants
// that map raw gesture signals into the output channels.
type Config struct {
	// GracePeriod is how long after the last detected hand the pipeline
	// keeps behaving as if tracking, to ride out detector dropouts.
	GracePeriod time.Duration
	// FilterResetDelay is how long past the grace period a loss must
	// persist before the exponential filters are cleared, so stale
	// estimates do not bias the next re-acquisition.
	FilterResetDelay time.Duration

	// Spring parameters per output channel.
	ScaleResponsiveness    float64
	ScaleDeadZone          float64
	RotationResponsiveness float64
	RotationDeadZone       float64

	// Exponential filter coefficients per gesture signal.
	PinchAlpha float64
	TiltAlpha  float64
	PairAlpha  float64

	// One-hand pinch distance to scale mapping.
	PinchScaleBase float64
	PinchScaleGain float64
	PinchScaleMin  float64
	PinchScaleMax  float64

	// Two-hand wrist distance to scale mapping.
	PairScaleBase float64
	PairScaleGain float64
	PairScaleMin  float64
	PairScaleMax  float64

	// Rotation gains.
	TiltXGain float64
	TiltYGain float64
	PairYGain float64
	PairXGain float64

	// Auto-rotate fallback when no hands are tracked: a free-running yaw
	// increment per render tick and a sinusoidal pitch wobble over wall
	// clock time.
	AutoRotateSpeed float64
	WobbleAmplitude float64
	WobbleFrequency float64
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		GracePeriod:      200 * time.Millisecond,
		FilterResetDelay: 500 * time.Millisecond,

		ScaleResponsiveness:    0.12,
		ScaleDeadZone:          0.02,
		RotationResponsiveness: 0.1,
		RotationDeadZone:       0.01,

		PinchAlpha: 0.35,
		TiltAlpha:  0.3,
		PairAlpha:  0.3,

		PinchScaleBase: 0.3,
		PinchScaleGain: 8.0,
		PinchScaleMin:  0.2,
		PinchScaleMax:  2.5,

		PairScaleBase: 0.3,
		PairScaleGain: 3.5,
		PairScaleMin:  0.2,
		PairScaleMax:  2.8,

		TiltXGain: 1.2,
		TiltYGain: 0.8,
		PairYGain: 2.0,
		PairXGain: 0.8,

		AutoRotateSpeed: 0.004,
		WobbleAmplitude: 0.25,
		WobbleFrequency: 0.1,
	}
}
