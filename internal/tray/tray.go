// Package tray provides the system tray interface for the Mudra gesture
// control service.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/mudra/internal/control"
)

// Tray represents the system tray application. It exposes an enable toggle,
// a gesture mode submenu, the current status line, and a quit item.
type Tray struct {
	onToggle   func(enabled bool)
	onMode     func(mode control.Mode)
	onSettings func()
	onQuit     func()
	enabled    bool
	mode       control.Mode
	mu         sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuStatus *systray.MenuItem
	menuScale  *systray.MenuItem
	menuRotate *systray.MenuItem
	menuBoth   *systray.MenuItem
}

// New creates a new Tray instance starting enabled in the given mode.
func New(mode control.Mode) *Tray {
	return &Tray{
		enabled: true,
		mode:    mode,
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnMode sets the callback function to be called when a mode menu item is clicked.
func (t *Tray) OnMode(fn func(mode control.Mode)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onMode = fn
}

// OnSettings sets the callback function to be called when the settings menu item is clicked.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Gesture Control")

	t.menuToggle = systray.AddMenuItem("● Enabled", "Toggle gesture control")
	systray.AddSeparator()

	t.menuStatus = systray.AddMenuItem("Status: no hands", "Current tracking status")
	t.menuStatus.Disable()
	systray.AddSeparator()

	menuMode := systray.AddMenuItem("Mode", "Gesture mode")
	t.menuScale = menuMode.AddSubMenuItemCheckbox("Scale", "Pinch controls scale only", false)
	t.menuRotate = menuMode.AddSubMenuItemCheckbox("Rotate", "Tilt controls rotation only", false)
	t.menuBoth = menuMode.AddSubMenuItemCheckbox("Both", "Scale and rotation together", false)
	t.checkMode(t.mode)
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-t.menuScale.ClickedCh:
				t.handleMode(control.ModeScale)
			case <-t.menuRotate.ClickedCh:
				t.handleMode(control.ModeRotate)
			case <-t.menuBoth.ClickedCh:
				t.handleMode(control.ModeBoth)
			case <-menuSettings.ClickedCh:
				t.handleSettings()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Enabled")
	} else {
		t.menuToggle.SetTitle("○ Disabled")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleMode handles a mode submenu click.
func (t *Tray) handleMode(mode control.Mode) {
	t.mu.Lock()
	t.mode = mode
	t.checkMode(mode)
	callback := t.onMode
	t.mu.Unlock()

	if callback != nil {
		callback(mode)
	}
}

// checkMode updates the mode submenu checkboxes. Caller holds the lock
// during click handling; onReady calls it before the click loop starts.
func (t *Tray) checkMode(mode control.Mode) {
	t.menuScale.Uncheck()
	t.menuRotate.Uncheck()
	t.menuBoth.Uncheck()

	switch mode {
	case control.ModeScale:
		t.menuScale.Check()
	case control.ModeRotate:
		t.menuRotate.Check()
	default:
		t.menuBoth.Check()
	}
}

// handleSettings handles the settings menu item click.
func (t *Tray) handleSettings() {
	t.mu.RLock()
	callback := t.onSettings
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetStatus updates the status line in the menu.
func (t *Tray) SetStatus(label string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus != nil {
		if label == "" {
			t.menuStatus.SetTitle("Status: no hands")
		} else {
			t.menuStatus.SetTitle("Status: " + label)
		}
	}
}

// SetMode updates the checked mode from outside, e.g. when the mode is
// changed through the HTTP API.
func (t *Tray) SetMode(mode control.Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = mode
	if t.menuScale != nil {
		t.checkMode(mode)
	}
}

// Mode returns the currently selected mode.
func (t *Tray) Mode() control.Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
