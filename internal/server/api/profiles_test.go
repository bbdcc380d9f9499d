package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/control"
)

const sampleProfileJSON = `{
	"name": "studio",
	"grace_ms": 250,
	"filter_reset_ms": 500,
	"scale_responsiveness": 0.12,
	"scale_dead_zone": 0.02,
	"rotation_responsiveness": 0.1,
	"rotation_dead_zone": 0.01,
	"pinch_alpha": 0.4,
	"tilt_alpha": 0.3,
	"pair_alpha": 0.3,
	"auto_rotate_speed": 0.004,
	"wobble_amplitude": 0.25,
	"wobble_frequency": 0.1
}`

func createProfile(t *testing.T, h *ProfileHandler) profilePayload {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/profiles",
		strings.NewReader(sampleProfileJSON)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created profilePayload
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created profile: %v", err)
	}
	return created
}

func TestProfileHandler_Create(t *testing.T) {
	h := NewProfileHandler(newTestStore(t), nil)

	created := createProfile(t, h)
	if created.ID == "" {
		t.Error("created profile has no ID")
	}
	if created.Name != "studio" || created.GraceMs != 250 {
		t.Errorf("created profile = %+v, want studio/250", created)
	}

	t.Run("rejects missing name", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/profiles",
			strings.NewReader(`{"grace_ms": 100}`)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/profiles",
			strings.NewReader(sampleProfileJSON)))
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
		}
	})
}

func TestProfileHandler_GetUpdateDelete(t *testing.T) {
	h := NewProfileHandler(newTestStore(t), nil)
	created := createProfile(t, h)

	t.Run("get by id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles/"+created.ID, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var got profilePayload
		json.NewDecoder(rec.Body).Decode(&got)
		if got.PinchAlpha != 0.4 {
			t.Errorf("pinch_alpha = %v, want 0.4", got.PinchAlpha)
		}
	})

	t.Run("update", func(t *testing.T) {
		body := strings.Replace(sampleProfileJSON, `"pinch_alpha": 0.4`, `"pinch_alpha": 0.6`, 1)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/profiles/"+created.ID,
			strings.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var got profilePayload
		json.NewDecoder(rec.Body).Decode(&got)
		if got.PinchAlpha != 0.6 {
			t.Errorf("pinch_alpha = %v after update, want 0.6", got.PinchAlpha)
		}
	})

	t.Run("update rejects missing name", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/profiles/"+created.ID,
			strings.NewReader(`{"grace_ms": 100}`)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles/"+created.ID, nil))
		var got profilePayload
		json.NewDecoder(rec.Body).Decode(&got)
		if got.Name != "studio" {
			t.Errorf("name = %q after rejected update, want %q", got.Name, "studio")
		}
	})

	t.Run("list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var got listProfilesResponse
		json.NewDecoder(rec.Body).Decode(&got)
		if len(got.Profiles) != 1 {
			t.Errorf("listed %d profiles, want 1", len(got.Profiles))
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/profiles/"+created.ID, nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles/"+created.ID, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestProfileHandler_Activate(t *testing.T) {
	s := newTestStore(t)
	controller := control.NewController(control.DefaultConfig())
	h := NewProfileHandler(s, controller)
	created := createProfile(t, h)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/profiles/"+created.ID+"/activate", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("activate status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	cfg := controller.Config()
	if cfg.GracePeriod != 250*time.Millisecond {
		t.Errorf("grace period = %v after activate, want 250ms", cfg.GracePeriod)
	}
	if cfg.PinchAlpha != 0.4 {
		t.Errorf("pinch alpha = %v after activate, want 0.4", cfg.PinchAlpha)
	}
	// Fields a profile does not carry keep their defaults
	if cfg.PinchScaleGain != control.DefaultConfig().PinchScaleGain {
		t.Errorf("pinch scale gain = %v, want default", cfg.PinchScaleGain)
	}

	p, ok := ActiveProfile(s)
	if !ok || p.ID != created.ID {
		t.Errorf("ActiveProfile = (%v, %v), want the activated profile", p, ok)
	}

	t.Run("requires POST", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
			"/api/profiles/"+created.ID+"/activate", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})

	t.Run("unavailable without controller", func(t *testing.T) {
		detached := NewProfileHandler(s, nil)
		rec := httptest.NewRecorder()
		detached.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
			"/api/profiles/"+created.ID+"/activate", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
	})
}

func TestProfileHandler_NotFound(t *testing.T) {
	h := NewProfileHandler(newTestStore(t), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles/missing-id", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
