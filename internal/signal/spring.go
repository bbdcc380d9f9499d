package signal

import "math"

// Integration constants for the damped second-order system. The fast path
// uses the spring's own responsiveness; the slow path is used only when
// drifting back to a rest value after tracking loss.
const (
	// Damping is the per-tick velocity multiplier for the responsive update.
	Damping = 0.7
	// SlowResponsiveness is the stiffness used by UpdateSlow.
	SlowResponsiveness = 0.02
	// SlowDamping is the per-tick velocity multiplier used by UpdateSlow.
	SlowDamping = 0.85
)

// Spring smooths a target scalar into a continuous current value using a
// critically-damped spring approximation at a fixed tick rate.
//
// Target updates pass through a dead zone: a new target is accepted only if
// it differs from the last accepted target by more than the dead zone. This
// is hysteresis, not a low-pass: each accepted value resets the reference
// point, so a slowly drifting true signal still gets through.
type Spring struct {
	current        float64
	target         float64
	velocity       float64
	lastAccepted   float64
	responsiveness float64
	deadZone       float64
}

// NewSpring creates a Spring with the given stiffness and dead zone,
// starting at rest at the given initial value.
func NewSpring(initial, responsiveness, deadZone float64) *Spring {
	return &Spring{
		current:        initial,
		target:         initial,
		lastAccepted:   initial,
		responsiveness: responsiveness,
		deadZone:       deadZone,
	}
}

// SetTarget proposes a new target. It is accepted only if it differs from
// the last accepted target by more than the dead zone; on acceptance both
// the target and the reference point move. Returns whether it was accepted.
func (s *Spring) SetTarget(value float64) bool {
	if math.Abs(value-s.lastAccepted) <= s.deadZone {
		return false
	}
	s.target = value
	s.lastAccepted = value
	return true
}

// ForceTarget sets the target unconditionally, bypassing the dead zone.
// Used by the auto-rotate path, whose per-tick increments are deliberately
// smaller than the dead zone.
func (s *Spring) ForceTarget(value float64) {
	s.target = value
	s.lastAccepted = value
}

// SetTuning changes the stiffness and dead zone without disturbing the
// spring's position, velocity, or target.
func (s *Spring) SetTuning(responsiveness, deadZone float64) {
	s.responsiveness = responsiveness
	s.deadZone = deadZone
}

// Update advances the spring one tick toward its target and returns the new
// current value. It must be called exactly once per tick regardless of
// tracking state; continuous integration is what keeps motion snap-free
// across tracking transitions.
func (s *Spring) Update() float64 {
	s.velocity += (s.target - s.current) * s.responsiveness
	s.velocity *= Damping
	s.current += s.velocity
	return s.current
}

// UpdateSlow overwrites the target with the fallback value and advances the
// spring one tick using the slow constants, producing a visibly slower drift
// back toward a rest state than the responsive update.
func (s *Spring) UpdateSlow(fallback float64) float64 {
	s.target = fallback
	s.lastAccepted = fallback
	s.velocity += (s.target - s.current) * SlowResponsiveness
	s.velocity *= SlowDamping
	s.current += s.velocity
	return s.current
}

// Current returns the spring's current value without advancing it.
func (s *Spring) Current() float64 {
	return s.current
}

// Target returns the spring's current target.
func (s *Spring) Target() float64 {
	return s.target
}

// Snap places the spring at rest exactly at the given value.
func (s *Spring) Snap(value float64) {
	s.current = value
	s.target = value
	s.lastAccepted = value
	s.velocity = 0
}
