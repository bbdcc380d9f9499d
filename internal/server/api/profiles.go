package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/store"
)

// ProfileHandler handles HTTP requests for tuning-profile resources. The
// controller may be nil, in which case profile activation is unavailable.
type ProfileHandler struct {
	store      *store.Store
	controller *control.Controller
}

// NewProfileHandler creates a new ProfileHandler with the given store and
// controller.
func NewProfileHandler(s *store.Store, c *control.Controller) *ProfileHandler {
	return &ProfileHandler{store: s, controller: c}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/profiles, /api/profiles/{id},
	// /api/profiles/{id}/activate
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/profiles
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/activate"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.activate(w, r, id)
		return
	}

	// Item endpoint: /api/profiles/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// profilePayload carries the tunable fields in both directions.
type profilePayload struct {
	ID                     string  `json:"id,omitempty"`
	Name                   string  `json:"name"`
	GraceMs                int     `json:"grace_ms"`
	FilterResetMs          int     `json:"filter_reset_ms"`
	ScaleResponsiveness    float64 `json:"scale_responsiveness"`
	ScaleDeadZone          float64 `json:"scale_dead_zone"`
	RotationResponsiveness float64 `json:"rotation_responsiveness"`
	RotationDeadZone       float64 `json:"rotation_dead_zone"`
	PinchAlpha             float64 `json:"pinch_alpha"`
	TiltAlpha              float64 `json:"tilt_alpha"`
	PairAlpha              float64 `json:"pair_alpha"`
	AutoRotateSpeed        float64 `json:"auto_rotate_speed"`
	WobbleAmplitude        float64 `json:"wobble_amplitude"`
	WobbleFrequency        float64 `json:"wobble_frequency"`
	CreatedAt              string  `json:"created_at,omitempty"`
	UpdatedAt              string  `json:"updated_at,omitempty"`
}

type listProfilesResponse struct {
	Profiles []profilePayload `json:"profiles"`
}

func toPayload(p *store.Profile) profilePayload {
	return profilePayload{
		ID:                     p.ID,
		Name:                   p.Name,
		GraceMs:                p.GraceMs,
		FilterResetMs:          p.FilterResetMs,
		ScaleResponsiveness:    p.ScaleResponsiveness,
		ScaleDeadZone:          p.ScaleDeadZone,
		RotationResponsiveness: p.RotationResponsiveness,
		RotationDeadZone:       p.RotationDeadZone,
		PinchAlpha:             p.PinchAlpha,
		TiltAlpha:              p.TiltAlpha,
		PairAlpha:              p.PairAlpha,
		AutoRotateSpeed:        p.AutoRotateSpeed,
		WobbleAmplitude:        p.WobbleAmplitude,
		WobbleFrequency:        p.WobbleFrequency,
		CreatedAt:              p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:              p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (pp *profilePayload) apply(p *store.Profile) {
	p.Name = pp.Name
	p.GraceMs = pp.GraceMs
	p.FilterResetMs = pp.FilterResetMs
	p.ScaleResponsiveness = pp.ScaleResponsiveness
	p.ScaleDeadZone = pp.ScaleDeadZone
	p.RotationResponsiveness = pp.RotationResponsiveness
	p.RotationDeadZone = pp.RotationDeadZone
	p.PinchAlpha = pp.PinchAlpha
	p.TiltAlpha = pp.TiltAlpha
	p.PairAlpha = pp.PairAlpha
	p.AutoRotateSpeed = pp.AutoRotateSpeed
	p.WobbleAmplitude = pp.WobbleAmplitude
	p.WobbleFrequency = pp.WobbleFrequency
}

func (h *ProfileHandler) list(w http.ResponseWriter, _ *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}

	resp := listProfilesResponse{Profiles: make([]profilePayload, 0, len(profiles))}
	for _, p := range profiles {
		resp.Profiles = append(resp.Profiles, toPayload(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	var req profilePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	p := &store.Profile{ID: uuid.New().String()}
	req.apply(p)

	if err := h.store.Profiles().Create(p); err != nil {
		writeError(w, http.StatusConflict, "failed to create profile")
		return
	}
	writeJSON(w, http.StatusCreated, toPayload(p))
}

func (h *ProfileHandler) get(w http.ResponseWriter, _ *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, toPayload(p))
}

func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req profilePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	req.apply(p)
	if err := h.store.Profiles().Update(p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, toPayload(p))
}

// activeProfileSettingKey persists which profile is applied across restarts.
const activeProfileSettingKey = "active_profile"

func (h *ProfileHandler) activate(w http.ResponseWriter, _ *http.Request, id string) {
	if h.controller == nil {
		writeError(w, http.StatusServiceUnavailable, "no controller attached")
		return
	}

	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	h.controller.SetConfig(ProfileConfig(p))
	// Persistence is best-effort; the tuning already took effect.
	h.store.SetSetting(activeProfileSettingKey, p.ID)

	writeJSON(w, http.StatusOK, toPayload(p))
}

// ProfileConfig converts a stored profile into a controller tuning. Fields
// the profile leaves at zero keep their defaults, as do the gain and clamp
// constants a profile does not carry.
func ProfileConfig(p *store.Profile) control.Config {
	cfg := control.DefaultConfig()

	if p.GraceMs > 0 {
		cfg.GracePeriod = time.Duration(p.GraceMs) * time.Millisecond
	}
	if p.FilterResetMs > 0 {
		cfg.FilterResetDelay = time.Duration(p.FilterResetMs) * time.Millisecond
	}
	if p.ScaleResponsiveness > 0 {
		cfg.ScaleResponsiveness = p.ScaleResponsiveness
		cfg.ScaleDeadZone = p.ScaleDeadZone
	}
	if p.RotationResponsiveness > 0 {
		cfg.RotationResponsiveness = p.RotationResponsiveness
		cfg.RotationDeadZone = p.RotationDeadZone
	}
	if p.PinchAlpha > 0 {
		cfg.PinchAlpha = p.PinchAlpha
	}
	if p.TiltAlpha > 0 {
		cfg.TiltAlpha = p.TiltAlpha
	}
	if p.PairAlpha > 0 {
		cfg.PairAlpha = p.PairAlpha
	}
	if p.AutoRotateSpeed > 0 {
		cfg.AutoRotateSpeed = p.AutoRotateSpeed
	}
	if p.WobbleAmplitude > 0 {
		cfg.WobbleAmplitude = p.WobbleAmplitude
	}
	if p.WobbleFrequency > 0 {
		cfg.WobbleFrequency = p.WobbleFrequency
	}

	return cfg
}

// ActiveProfile loads the persisted active profile, if one is recorded and
// still exists.
func ActiveProfile(s *store.Store) (*store.Profile, bool) {
	if s == nil {
		return nil, false
	}
	id, err := s.Setting(activeProfileSettingKey)
	if err != nil {
		return nil, false
	}
	p, err := s.Profiles().GetByID(id)
	if err != nil {
		return nil, false
	}
	return p, true
}

func (h *ProfileHandler) delete(w http.ResponseWriter, _ *http.Request, id string) {
	if err := h.store.Profiles().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
