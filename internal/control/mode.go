// Package control routes classified gesture signals into the smoothed scale
// and rotation output channels. A Controller is driven at two cadences: once
// per detection frame (HandleFrame) and once per render tick (Tick).
package control

import "fmt"

// Mode selects which gesture signals are allowed to set spring targets.
// Exactly one mode is active at a time; the mode never gates the mandatory
// per-tick spring advance.
type Mode string

const (
	// ModeScale routes only the scale signals (pinch, two-hand distance).
	ModeScale Mode = "scale"
	// ModeRotate routes only the rotation signals (palm tilt, steering).
	ModeRotate Mode = "rotate"
	// ModeBoth routes scale and rotation signals together.
	ModeBoth Mode = "both"
)

// ParseMode validates a mode string from the UI or API.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeScale, ModeRotate, ModeBoth:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown gesture mode %q", s)
}

// controlsScale reports whether this mode routes the scale signals.
func (m Mode) controlsScale() bool {
	return m == ModeScale || m == ModeBoth
}

// controlsRotation reports whether this mode routes the rotation signals.
func (m Mode) controlsRotation() bool {
	return m == ModeRotate || m == ModeBoth
}
