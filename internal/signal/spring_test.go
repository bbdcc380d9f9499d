package signal

import (
	"math"
	"testing"
)

func TestSpring_DeadZoneHysteresis(t *testing.T) {
	const deadZone = 0.1

	s := NewSpring(0, 0.15, deadZone)

	if ok := s.SetTarget(1.0); !ok {
		t.Fatal("SetTarget(1.0) from 0 should be accepted")
	}

	// A move of deadZone/2 from the accepted target must be rejected.
	if ok := s.SetTarget(1.0 + deadZone/2); ok {
		t.Error("sub-dead-zone target should be rejected")
	}
	if s.Target() != 1.0 {
		t.Errorf("target = %v after rejected update, want 1.0", s.Target())
	}

	// A move of 2*deadZone must be accepted.
	if ok := s.SetTarget(1.0 + 2*deadZone); !ok {
		t.Error("target beyond dead zone should be accepted")
	}
	if s.Target() != 1.0+2*deadZone {
		t.Errorf("target = %v, want %v", s.Target(), 1.0+2*deadZone)
	}
}

func TestSpring_AcceptedTargetResetsReference(t *testing.T) {
	// A slowly drifting signal must still get through: each accepted value
	// becomes the new reference point for the dead-zone test.
	const deadZone = 0.1
	s := NewSpring(0, 0.15, deadZone)

	value := 0.0
	accepted := 0
	for i := 0; i < 10; i++ {
		value += 0.15 // each step exceeds the dead zone from the last accepted
		if s.SetTarget(value) {
			accepted++
		}
	}
	if accepted != 10 {
		t.Errorf("accepted %d of 10 drifting targets, want all 10", accepted)
	}
}

func TestSpring_UpdateConvergesWithBoundedOvershoot(t *testing.T) {
	// The discrete law is lightly underdamped at this stiffness, so the
	// spring swings past the target once or twice. The excursion must stay
	// small and die out.
	s := NewSpring(0, 0.15, 0.01)
	s.ForceTarget(1.0)

	peak := 0.0
	for i := 0; i < 300; i++ {
		if cur := s.Update(); cur > peak {
			peak = cur
		}
	}

	if peak > 1.2 {
		t.Errorf("peak %v exceeded target 1.0 by more than 20%%", peak)
	}
	if math.Abs(s.Current()-1.0) > 1e-3 {
		t.Errorf("current = %v after 300 ticks, want ~1.0", s.Current())
	}
}

func TestSpring_UpdateSlowOverwritesTarget(t *testing.T) {
	s := NewSpring(2.0, 0.15, 0.01)
	s.ForceTarget(2.5)

	s.UpdateSlow(1.0)
	if s.Target() != 1.0 {
		t.Errorf("target = %v after UpdateSlow(1.0), want 1.0", s.Target())
	}
}

func TestSpring_UpdateSlowSettlesSlower(t *testing.T) {
	// "Slow" means a longer settling time, not a smaller value at every
	// tick: the slow constants retain more velocity, so the slow spring can
	// momentarily be ahead of the fast one mid-overshoot. Compare the last
	// tick at which each spring is still outside the tolerance band.
	const eps = 0.01
	settle := func(step func() float64) int {
		last := 0
		for i := 0; i < 600; i++ {
			if math.Abs(step()-1.0) > eps {
				last = i
			}
		}
		return last
	}

	fast := NewSpring(0, 0.15, 0.01)
	fast.ForceTarget(1.0)
	fastSettle := settle(fast.Update)

	slow := NewSpring(0, 0.15, 0.01)
	slowSettle := settle(func() float64 { return slow.UpdateSlow(1.0) })

	if slowSettle <= fastSettle {
		t.Errorf("slow spring settled at tick %d, fast at tick %d; slow should take longer", slowSettle, fastSettle)
	}
}

func TestSpring_ForceTargetBypassesDeadZone(t *testing.T) {
	s := NewSpring(0, 0.15, 0.5)
	s.ForceTarget(0.1) // well inside the dead zone
	if s.Target() != 0.1 {
		t.Errorf("target = %v after ForceTarget(0.1), want 0.1", s.Target())
	}
}
