package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	fmt.Println("Mudra - Hand Gesture Control")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "mudra.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Restore the gesture mode from the previous run
	mode := control.ModeBoth
	if saved, ok := api.SavedMode(st); ok {
		mode = saved
	}

	hub := server.NewOutputHub()
	t := tray.New(mode)

	a := app.New(app.Config{
		Store:    st,
		CameraID: 0,
		Control:  control.DefaultConfig(),
		Sink:     &statusSink{hub: hub, tray: t},
	})
	a.Controller().SetMode(mode)
	if p, ok := api.ActiveProfile(st); ok {
		a.Controller().SetConfig(api.ProfileConfig(p))
		fmt.Printf("Applied tuning profile %q\n", p.Name)
	}

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir:  webDir,
		Store:      st,
		Camera:     a.Camera(),
		Controller: a.Controller(),
		Output:     hub,
	})

	addr := ":8080"
	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	a.SetEnabled(true)
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	t.OnToggle(a.SetEnabled)
	t.OnMode(func(mode control.Mode) {
		a.Controller().SetMode(mode)
		if err := api.SaveMode(st, mode); err != nil {
			log.Printf("Failed to persist mode: %v", err)
		}
	})
	t.OnSettings(func() {
		openBrowser("http://localhost" + addr)
	})
	t.OnQuit(a.Stop)

	// Blocks until the quit menu item is clicked.
	t.Run()
}

// statusSink fans each render tick out to the WebSocket hub and mirrors the
// status label into the tray menu when it changes.
type statusSink struct {
	hub       *server.OutputHub
	tray      *tray.Tray
	lastLabel string
}

func (s *statusSink) Publish(out control.Output, status control.Status) {
	s.hub.Publish(out, status)
	if status.Label != s.lastLabel {
		s.lastLabel = status.Label
		s.tray.SetStatus(status.Label)
	}
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
