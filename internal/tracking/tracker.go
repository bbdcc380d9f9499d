// Package tracking implements the hand-tracking lifecycle state machine that
// decouples transient detector dropouts from genuine loss of the hand.
package tracking

import "time"

// Status is the lifecycle status reported after each presence update.
type Status string

const (
	// StatusTracking means hands were present in the most recent frame.
	StatusTracking Status = "tracking"
	// StatusGrace means hands are absent but the grace window has not
	// elapsed; downstream consumers should keep behaving as if tracking.
	StatusGrace Status = "grace"
	// StatusLost means hands have been absent longer than the grace window.
	StatusLost Status = "lost"
)

// DefaultGracePeriod covers common single-frame detector dropouts.
const DefaultGracePeriod = 200 * time.Millisecond

// Tracker is the 3-state hand-tracking lifecycle machine. It has no terminal
// state and runs for the process lifetime. The initial state is lost, with
// the last-seen time at process start.
type Tracker struct {
	isTracking  bool
	lastSeenAt  time.Time
	gracePeriod time.Duration
}

// NewTracker creates a Tracker with the given grace period. A zero or
// negative grace period falls back to the default.
func NewTracker(gracePeriod time.Duration) *Tracker {
	if gracePeriod <= 0 {
		gracePeriod = DefaultGracePeriod
	}
	return &Tracker{gracePeriod: gracePeriod}
}

// Update advances the machine with one frame's presence observation and
// returns the resulting status along with the time elapsed since hands were
// last seen (zero while tracking).
func (t *Tracker) Update(handsPresent bool, now time.Time) (Status, time.Duration) {
	if handsPresent {
		t.isTracking = true
		t.lastSeenAt = now
		return StatusTracking, 0
	}

	elapsed := now.Sub(t.lastSeenAt)
	if !t.lastSeenAt.IsZero() && elapsed < t.gracePeriod {
		// Still logically tracking for output purposes; just report grace.
		return StatusGrace, elapsed
	}

	t.isTracking = false
	return StatusLost, elapsed
}

// IsTracking reports whether the machine currently considers a hand present,
// including the grace window after a dropout.
func (t *Tracker) IsTracking() bool {
	return t.isTracking
}

// SetGracePeriod changes the grace window. A zero or negative value falls
// back to the default.
func (t *Tracker) SetGracePeriod(gracePeriod time.Duration) {
	if gracePeriod <= 0 {
		gracePeriod = DefaultGracePeriod
	}
	t.gracePeriod = gracePeriod
}

// GracePeriod returns the configured grace window.
func (t *Tracker) GracePeriod() time.Duration {
	return t.gracePeriod
}
