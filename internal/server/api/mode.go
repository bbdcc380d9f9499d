// Package api provides HTTP API handlers for the Mudra gesture control service.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/store"
)

// modeSettingKey is the settings row that persists the mode across restarts.
const modeSettingKey = "gesture_mode"

// ModeHandler exposes the active gesture mode for reading and switching.
type ModeHandler struct {
	controller *control.Controller
	store      *store.Store
}

// NewModeHandler creates a ModeHandler. The store may be nil, in which case
// mode changes are not persisted.
func NewModeHandler(c *control.Controller, s *store.Store) *ModeHandler {
	return &ModeHandler{controller: c, store: s}
}

type modeResponse struct {
	Mode string `json:"mode"`
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

// ServeHTTP implements the http.Handler interface.
func (h *ModeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut, http.MethodPost:
		h.set(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ModeHandler) get(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, modeResponse{Mode: string(h.controller.Mode())})
}

func (h *ModeHandler) set(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	mode, err := control.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.controller.SetMode(mode)
	// Persistence is best-effort; the switch already took effect.
	SaveMode(h.store, mode)

	writeJSON(w, http.StatusOK, modeResponse{Mode: string(mode)})
}

// SaveMode persists the gesture mode so it survives restarts.
func SaveMode(s *store.Store, mode control.Mode) error {
	if s == nil {
		return nil
	}
	return s.SetSetting(modeSettingKey, string(mode))
}

// SavedMode reads the persisted gesture mode, if any.
func SavedMode(s *store.Store) (control.Mode, bool) {
	if s == nil {
		return "", false
	}
	value, err := s.Setting(modeSettingKey)
	if err != nil {
		return "", false
	}
	mode, err := control.ParseMode(value)
	if err != nil {
		return "", false
	}
	return mode, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
