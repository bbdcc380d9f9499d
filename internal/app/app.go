// Package app wires the Mudra pipeline together: camera capture, presence
// gating, hand detection, gesture control, and output publishing.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tracking"
)

// Pipeline timing constants.
const (
	// RenderFPS is the rate of the output render loop.
	RenderFPS = 60
	// IdleTimeoutMs is how long the presence gate stays open after the
	// last activity before capture drops back to the idle rate.
	IdleTimeoutMs = 2000
)

// Sink receives one output frame per render tick. The WebSocket hub
// implements it; tests use a recording stub.
type Sink interface {
	Publish(out control.Output, status control.Status)
}

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	CameraID       int
	ActivityThresh float64
	Control        control.Config
	Sink           Sink
}

// App owns the two pipeline loops: the detection loop that feeds camera
// frames through the detector into the controller, and the render loop
// that ticks the controller and publishes its output.
type App struct {
	config     Config
	camera     capture.Camera
	presence   *capture.PresenceGate
	detector   detector.Detector
	controller *control.Controller

	enabled    bool
	lastStatus control.Status
	mu         sync.RWMutex

	stopCh    chan struct{}
	wg        sync.WaitGroup
	sessionID string
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		presence:   capture.NewPresenceGate(config.ActivityThresh, IdleTimeoutMs*time.Millisecond),
		controller: control.NewController(config.Control),
		lastStatus: control.Status{Tracking: tracking.StatusLost, Label: control.LabelLost},
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetCamera replaces the camera implementation. Must be called before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Status returns the most recent frame classification.
func (a *App) Status() control.Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastStatus
}

func (a *App) setStatus(s control.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastStatus = s
}

// Start opens the camera and launches the detection and render loops.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(capture.IdleFPS)

	if a.config.Store != nil {
		sess := &store.Session{
			ID:   uuid.New().String(),
			Mode: string(a.controller.Mode()),
		}
		if err := a.config.Store.Sessions().Create(sess); err != nil {
			log.Printf("Failed to record session start: %v", err)
		} else {
			a.sessionID = sess.ID
		}
	}

	a.stopCh = make(chan struct{})
	a.wg.Add(2)
	go a.runDetectionLoop(a.stopCh)
	go a.runRenderLoop(a.stopCh)

	log.Println("Pipeline started")
	return nil
}

// Stop halts both loops and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	sessionID := a.sessionID
	a.sessionID = ""
	a.mu.Unlock()

	a.wg.Wait()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.presence.Close()

	a.mu.RLock()
	d := a.detector
	a.mu.RUnlock()
	if d != nil {
		if err := d.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if a.config.Store != nil && sessionID != "" {
		frames, ticks := a.controller.Counters()
		if err := a.config.Store.Sessions().Finish(sessionID, frames, ticks); err != nil {
			log.Printf("Failed to record session end: %v", err)
		}
	}

	log.Println("Pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// PresenceGate returns the presence gate instance.
func (a *App) PresenceGate() *capture.PresenceGate {
	return a.presence
}

// Controller returns the gesture controller.
func (a *App) Controller() *control.Controller {
	return a.controller
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
