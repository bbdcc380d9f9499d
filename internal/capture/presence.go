package capture

import (
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Presence gate constants
const (
	// GaussianBlurSize is the kernel size for Gaussian blur (21x21)
	GaussianBlurSize = 21
	// DiffThreshold is the binary threshold for difference detection
	DiffThreshold = 25
	// DefaultActivityThreshold is the percentage of changed pixels
	// needed to count a frame as active.
	DefaultActivityThreshold = 1.0
	// DefaultHold is how long the gate stays open after the last
	// sign of activity.
	DefaultHold = 2 * time.Second
)

// PresenceGate decides whether the capture loop should run at the active
// or the idle frame rate. Scene activity is measured by frame differencing
// with Gaussian blur for noise reduction; confirmed hand detections hold
// the gate open directly via MarkHands.
type PresenceGate struct {
	threshold float64
	hold      time.Duration
	prevGray  gocv.Mat
	seeded    bool
	activeAt  time.Time
	mu        sync.Mutex
}

// NewPresenceGate creates a PresenceGate. The threshold is the percentage
// of pixels that must change between frames to count as activity; hold is
// how long the gate stays open after the last activity.
func NewPresenceGate(threshold float64, hold time.Duration) *PresenceGate {
	if threshold <= 0 {
		threshold = DefaultActivityThreshold
	}
	if hold <= 0 {
		hold = DefaultHold
	}
	return &PresenceGate{
		threshold: threshold,
		hold:      hold,
		prevGray:  gocv.NewMat(),
	}
}

// Observe compares a frame against the previous one and opens the gate if
// enough pixels changed. Returns the change percentage.
//
// Algorithm:
// 1. Convert frame to grayscale
// 2. Apply Gaussian blur (21x21) to reduce noise
// 3. If first frame, store as baseline and return 0
// 4. Calculate absolute difference with previous frame
// 5. Threshold the difference (threshold=25)
// 6. Count non-zero pixels / total pixels = changePercent
// 7. Open the gate if changePercent > threshold
func (g *PresenceGate) Observe(frame *gocv.Mat, now time.Time) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: GaussianBlurSize, Y: GaussianBlurSize}, 0, 0, gocv.BorderDefault)

	if !g.seeded {
		blurred.CopyTo(&g.prevGray)
		g.seeded = true
		return 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, DiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()

	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&g.prevGray)

	if changePercent > g.threshold {
		g.activeAt = now
	}

	return changePercent
}

// MarkHands opens the gate because hands were detected, regardless of
// scene motion. A still hand gesture keeps the pipeline at the active rate.
func (g *PresenceGate) MarkHands(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.activeAt = now
}

// Active reports whether the gate is open, i.e. activity was seen within
// the hold window.
func (g *PresenceGate) Active(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.activeAt.IsZero() {
		return false
	}
	return now.Sub(g.activeAt) < g.hold
}

// Reset clears the gate state, closing the gate and dropping the
// baseline frame so differencing reseeds on the next Observe.
func (g *PresenceGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.prevGray.Empty() {
		g.prevGray.Close()
		g.prevGray = gocv.NewMat()
	}
	g.seeded = false
	g.activeAt = time.Time{}
}

// Close releases resources used by the gate.
func (g *PresenceGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.prevGray.Empty() {
		g.prevGray.Close()
		g.prevGray = gocv.NewMat()
	}
	g.seeded = false
}

// SetThreshold sets the activity threshold.
// Values less than or equal to 0 are ignored.
func (g *PresenceGate) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.threshold = threshold
}
