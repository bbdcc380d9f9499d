package control

import (
	"math"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/signal"
	"github.com/ayusman/mudra/internal/tracking"
)

// Output is what the controller emits to the render sink every tick.
type Output struct {
	Scale     float64 `json:"scale"`
	RotationX float64 `json:"rotationX"`
	RotationY float64 `json:"rotationY"`
}

// Status is the per-frame classification label for the UI sink.
type Status struct {
	Tracking tracking.Status `json:"tracking"`
	Label    string          `json:"label"`
}

// Status labels reported alongside the tracking state.
const (
	LabelLost      = "no hands"
	LabelGrace     = "holding"
	LabelFistLock  = "fist lock"
	LabelPinch     = "pinch scale"
	LabelTilt      = "palm tilt"
	LabelPinchTilt = "pinch + tilt"
	LabelTwoHand   = "two-hand"
)

// Controller owns all mutable gesture-routing state: the active mode, the
// three output springs, the per-signal filters, the tracking lifecycle, and
// the auto-rotate fallback. The detection-frame path and the render-tick
// path run on different goroutines; one mutex serializes them so a frame's
// target writes are always visible to the next tick's update.
type Controller struct {
	mu  sync.Mutex
	cfg Config

	mode    Mode
	tracker *tracking.Tracker

	scaleSpring *signal.Spring
	rotXSpring  *signal.Spring
	rotYSpring  *signal.Spring

	pinchFilter    *signal.Filter
	tiltXFilter    *signal.Filter
	tiltYFilter    *signal.Filter
	pairDistFilter *signal.Filter
	pairYFilter    *signal.Filter
	pairXFilter    *signal.Filter

	autoRotate bool
	baseAngle  float64
	epoch      time.Time

	frames uint64
	ticks  uint64
}

// NewController creates a Controller with the given tuning, starting in
// ModeBoth at neutral scale with auto-rotation enabled.
func NewController(cfg Config) *Controller {
	return &Controller{
		cfg:     cfg,
		mode:    ModeBoth,
		tracker: tracking.NewTracker(cfg.GracePeriod),

		scaleSpring: signal.NewSpring(1.0, cfg.ScaleResponsiveness, cfg.ScaleDeadZone),
		rotXSpring:  signal.NewSpring(0, cfg.RotationResponsiveness, cfg.RotationDeadZone),
		rotYSpring:  signal.NewSpring(0, cfg.RotationResponsiveness, cfg.RotationDeadZone),

		pinchFilter:    signal.NewFilter(cfg.PinchAlpha),
		tiltXFilter:    signal.NewFilter(cfg.TiltAlpha),
		tiltYFilter:    signal.NewFilter(cfg.TiltAlpha),
		pairDistFilter: signal.NewFilter(cfg.PairAlpha),
		pairYFilter:    signal.NewFilter(cfg.PairAlpha),
		pairXFilter:    signal.NewFilter(cfg.PairAlpha),

		autoRotate: true,
		epoch:      time.Now(),
	}
}

// Mode returns the active gesture mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches the active gesture mode. Takes effect on the next frame;
// last write wins if it races a frame.
func (c *Controller) SetMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
}

// Config returns the controller's tuning.
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// SetConfig applies a new tuning to the running controller. Spring positions,
// filter estimates, and the tracking state are preserved; only coefficients
// change, so re-tuning never causes an output snap.
func (c *Controller) SetConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cfg = cfg
	c.tracker.SetGracePeriod(cfg.GracePeriod)

	c.scaleSpring.SetTuning(cfg.ScaleResponsiveness, cfg.ScaleDeadZone)
	c.rotXSpring.SetTuning(cfg.RotationResponsiveness, cfg.RotationDeadZone)
	c.rotYSpring.SetTuning(cfg.RotationResponsiveness, cfg.RotationDeadZone)

	c.pinchFilter.SetAlpha(cfg.PinchAlpha)
	c.tiltXFilter.SetAlpha(cfg.TiltAlpha)
	c.tiltYFilter.SetAlpha(cfg.TiltAlpha)
	c.pairDistFilter.SetAlpha(cfg.PairAlpha)
	c.pairYFilter.SetAlpha(cfg.PairAlpha)
	c.pairXFilter.SetAlpha(cfg.PairAlpha)
}

// Counters reports how many frames and ticks this controller has processed.
func (c *Controller) Counters() (frames, ticks uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames, c.ticks
}

// HandleFrame consumes one detection frame. It advances the tracking
// lifecycle, routes classified gesture signals into the spring targets
// according to the active mode, and returns the status label for the UI.
// It never advances the springs; that is Tick's job.
func (c *Controller) HandleFrame(hands []detector.HandLandmarks, now time.Time) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frames++

	status, sinceLost := c.tracker.Update(len(hands) > 0, now)
	switch status {
	case tracking.StatusTracking:
		return Status{Tracking: status, Label: c.routeGestures(hands)}

	case tracking.StatusGrace:
		// Pass-through: no filter resets, no target changes. The springs
		// carry the motion across the dropout.
		return Status{Tracking: status, Label: LabelGrace}

	default:
		// Only an extended loss clears history and resumes auto-rotation;
		// a fresh loss keeps the fist lock and filter state intact so a
		// quick re-acquisition picks up where it left off.
		if sinceLost > c.cfg.GracePeriod+c.cfg.FilterResetDelay {
			c.resetFilters()
			c.autoRotate = true
		}
		return Status{Tracking: status, Label: LabelLost}
	}
}

// routeGestures dispatches on hand count and updates spring targets for the
// signals the active mode permits. Caller holds the lock.
func (c *Controller) routeGestures(hands []detector.HandLandmarks) string {
	if len(hands) == 1 {
		return c.routeOneHand(&hands[0])
	}
	// Only the first two hands are considered.
	return c.routeTwoHands(&hands[0], &hands[1])
}

func (c *Controller) routeOneHand(hand *detector.HandLandmarks) string {
	// A fist locks rotation and suppresses all signal routing regardless of
	// mode, until the hands change.
	if gesture.IsFist(hand) {
		c.autoRotate = false
		return LabelFistLock
	}

	if c.mode.controlsScale() {
		filtered := c.pinchFilter.Filter(gesture.PinchDistance(hand))
		target := clamp(c.cfg.PinchScaleBase+filtered*c.cfg.PinchScaleGain,
			c.cfg.PinchScaleMin, c.cfg.PinchScaleMax)
		c.scaleSpring.SetTarget(target)
	}

	if c.mode.controlsRotation() {
		tilt := gesture.Orientation(hand)
		c.rotXSpring.SetTarget(c.tiltXFilter.Filter(tilt.X) * c.cfg.TiltXGain)
		c.rotYSpring.SetTarget(c.tiltYFilter.Filter(tilt.Y) * c.cfg.TiltYGain)
		c.autoRotate = false
	}

	switch c.mode {
	case ModeScale:
		return LabelPinch
	case ModeRotate:
		return LabelTilt
	default:
		return LabelPinchTilt
	}
}

func (c *Controller) routeTwoHands(a, b *detector.HandLandmarks) string {
	if c.mode.controlsScale() {
		filtered := c.pairDistFilter.Filter(gesture.TwoHandDistance(a, b))
		target := clamp(c.cfg.PairScaleBase+filtered*c.cfg.PairScaleGain,
			c.cfg.PairScaleMin, c.cfg.PairScaleMax)
		c.scaleSpring.SetTarget(target)
	}

	if c.mode.controlsRotation() {
		steering := gesture.TwoHandRotation(a, b)
		c.rotYSpring.SetTarget(c.pairYFilter.Filter(steering.YRotation * c.cfg.PairYGain))
		c.rotXSpring.SetTarget(c.pairXFilter.Filter(steering.XRotation * c.cfg.PairXGain))
		c.autoRotate = false
	}

	return LabelTwoHand
}

// Tick advances the output channels by one render tick and emits the current
// output. It runs at render cadence regardless of frame arrival: ticks carry
// no detection data, so the tracker is re-evaluated with hands absent. The
// springs advance every tick without exception; that continuity is what
// keeps motion snap-free across tracking transitions.
func (c *Controller) Tick(now time.Time) Output {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ticks++

	status, _ := c.tracker.Update(false, now)
	if status == tracking.StatusTracking || status == tracking.StatusGrace {
		c.scaleSpring.Update()
		c.rotXSpring.Update()
		c.rotYSpring.Update()
	} else {
		// Lost: drift the scale back to neutral slowly.
		c.scaleSpring.UpdateSlow(1.0)

		if c.autoRotate {
			// Free-running yaw plus a gentle pitch wobble. The per-tick
			// increment is below the dead zone, so targets are forced.
			c.baseAngle += c.cfg.AutoRotateSpeed
			c.rotYSpring.ForceTarget(c.baseAngle)

			elapsed := now.Sub(c.epoch).Seconds()
			wobble := c.cfg.WobbleAmplitude * math.Sin(2*math.Pi*c.cfg.WobbleFrequency*elapsed)
			c.rotXSpring.ForceTarget(wobble)

			c.rotXSpring.Update()
			c.rotYSpring.Update()
		} else {
			// Rotation was locked by the user; hold near the last base
			// angle and let pitch settle back to level.
			c.rotXSpring.UpdateSlow(0)
			c.rotYSpring.UpdateSlow(c.baseAngle)
		}
	}

	return Output{
		Scale:     c.scaleSpring.Current(),
		RotationX: c.rotXSpring.Current(),
		RotationY: c.rotYSpring.Current(),
	}
}

// resetFilters clears every exponential filter back to the unseeded state.
// Caller holds the lock.
func (c *Controller) resetFilters() {
	c.pinchFilter.Reset()
	c.tiltXFilter.Reset()
	c.tiltYFilter.Reset()
	c.pairDistFilter.Reset()
	c.pairYFilter.Reset()
	c.pairXFilter.Reset()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
