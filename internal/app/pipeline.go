package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/capture"
)

// runDetectionLoop is the capture-side loop. It reads camera frames, feeds
// them through the presence gate, and runs hand detection while the gate is
// open. Detected hands go to the controller, which updates its spring
// targets; this loop never advances the outputs itself.
//
// Loop logic:
// 1. Start at the idle rate (5 FPS)
// 2. When the presence gate opens, switch to the active rate (15 FPS)
// 3. Run hand detection on each active frame
// 4. Route the landmarks to the controller
// 5. Hands hold the gate open even when the scene is otherwise still
// 6. After 2s without activity the gate closes and capture idles again
func (a *App) runDetectionLoop(stopCh <-chan struct{}) {
	defer a.wg.Done()

	activeMode := false
	frameInterval := time.Second / time.Duration(capture.IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			now := time.Now()
			a.presence.Observe(frame, now)

			if a.presence.Active(now) {
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(capture.ActiveFPS)
					ticker.Reset(time.Second / time.Duration(capture.ActiveFPS))
					log.Println("Switched to active capture")
				}
			} else if activeMode {
				activeMode = false
				a.camera.SetFPS(capture.IdleFPS)
				ticker.Reset(time.Second / time.Duration(capture.IdleFPS))
				log.Println("Switched to idle capture")
			}

			d := a.Detector()
			if !activeMode || d == nil {
				frame.Close()
				continue
			}

			hands, err := d.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			if len(hands) > 0 {
				// A still hand produces no frame difference; hold the
				// gate open on detections so tracking does not idle out.
				a.presence.MarkHands(now)
			}

			a.setStatus(a.controller.HandleFrame(hands, now))
		}
	}
}

// runRenderLoop ticks the controller at the render rate and publishes each
// output frame to the sink. It runs whether or not hands are visible; the
// controller's springs and auto-rotation need every tick.
func (a *App) runRenderLoop(stopCh <-chan struct{}) {
	defer a.wg.Done()

	ticker := time.NewTicker(time.Second / RenderFPS)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			out := a.controller.Tick(time.Now())
			if a.config.Sink != nil {
				a.config.Sink.Publish(out, a.Status())
			}
		}
	}
}
