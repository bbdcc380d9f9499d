package capture

import (
	"testing"
	"time"

	"gocv.io/x/gocv"
)

func TestNewPresenceGate(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		hold      time.Duration
		wantT     float64
		wantHold  time.Duration
	}{
		{
			name:      "explicit values",
			threshold: 2.5,
			hold:      time.Second,
			wantT:     2.5,
			wantHold:  time.Second,
		},
		{
			name:      "defaults on zero",
			threshold: 0,
			hold:      0,
			wantT:     DefaultActivityThreshold,
			wantHold:  DefaultHold,
		},
		{
			name:      "defaults on negative",
			threshold: -1,
			hold:      -time.Second,
			wantT:     DefaultActivityThreshold,
			wantHold:  DefaultHold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewPresenceGate(tt.threshold, tt.hold)
			defer g.Close()

			if g.threshold != tt.wantT {
				t.Errorf("threshold = %f, want %f", g.threshold, tt.wantT)
			}
			if g.hold != tt.wantHold {
				t.Errorf("hold = %v, want %v", g.hold, tt.wantHold)
			}
			if g.seeded {
				t.Error("gate should not be seeded initially")
			}
		})
	}
}

func TestPresenceGate_InitiallyInactive(t *testing.T) {
	g := NewPresenceGate(1.0, time.Second)
	defer g.Close()

	if g.Active(time.Now()) {
		t.Error("gate should be closed before any activity")
	}
}

func TestPresenceGate_StillScene(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	g := NewPresenceGate(1.0, time.Second)
	defer g.Close()

	now := time.Now()

	// Two identical black frames
	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	// First frame seeds the baseline
	if pct := g.Observe(&frame1, now); pct != 0 {
		t.Errorf("first frame changePercent = %f, want 0", pct)
	}

	g.Observe(&frame2, now)
	if g.Active(now) {
		t.Error("identical frames should not open the gate")
	}
}

func TestPresenceGate_SceneChange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	g := NewPresenceGate(1.0, time.Second)
	defer g.Close()

	now := time.Now()

	blackFrame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer blackFrame.Close()

	whiteFrame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer whiteFrame.Close()
	whiteFrame.SetTo(gocv.NewScalar(255, 255, 255, 0))

	g.Observe(&blackFrame, now)
	pct := g.Observe(&whiteFrame, now)

	if pct < 50.0 {
		t.Errorf("changePercent = %f, expected > 50%% for black to white transition", pct)
	}
	if !g.Active(now) {
		t.Error("black to white transition should open the gate")
	}

	// Gate stays open within the hold window and closes after it.
	if !g.Active(now.Add(900 * time.Millisecond)) {
		t.Error("gate should stay open within hold window")
	}
	if g.Active(now.Add(1100 * time.Millisecond)) {
		t.Error("gate should close after hold window")
	}
}

func TestPresenceGate_MarkHands(t *testing.T) {
	g := NewPresenceGate(1.0, time.Second)
	defer g.Close()

	now := time.Now()
	g.MarkHands(now)

	if !g.Active(now) {
		t.Error("MarkHands should open the gate")
	}
	if !g.Active(now.Add(500 * time.Millisecond)) {
		t.Error("gate should stay open within hold window after MarkHands")
	}
	if g.Active(now.Add(2 * time.Second)) {
		t.Error("gate should close after hold window elapses")
	}
}

func TestPresenceGate_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	g := NewPresenceGate(1.0, time.Second)
	defer g.Close()

	now := time.Now()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	g.Observe(&frame, now)
	g.MarkHands(now)

	if !g.seeded {
		t.Error("gate should be seeded after first Observe")
	}

	g.Reset()

	if g.seeded {
		t.Error("gate should not be seeded after Reset")
	}
	if !g.prevGray.Empty() {
		t.Error("prevGray should be empty after Reset")
	}
	if g.Active(now) {
		t.Error("gate should be closed after Reset")
	}
}

func TestPresenceGate_SetThreshold(t *testing.T) {
	g := NewPresenceGate(1.0, time.Second)
	defer g.Close()

	g.SetThreshold(5.0)
	if g.threshold != 5.0 {
		t.Errorf("threshold = %f, want 5.0 after SetThreshold", g.threshold)
	}

	// Non-positive values are ignored
	g.SetThreshold(-1.0)
	if g.threshold != 5.0 {
		t.Errorf("negative threshold should be ignored, got %f, want 5.0", g.threshold)
	}
}

func TestPresenceGate_Close_Multiple(t *testing.T) {
	g := NewPresenceGate(1.0, time.Second)

	// Close multiple times should not panic
	g.Close()
	g.Close()
}

func TestPresenceGate_Observe_AfterClose(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	g := NewPresenceGate(1.0, time.Second)

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	g.Observe(&frame, time.Now())
	g.Close()

	// Observe after close reseeds the baseline
	if pct := g.Observe(&frame, time.Now()); pct != 0 {
		t.Errorf("first frame after close changePercent = %f, want 0", pct)
	}
}
