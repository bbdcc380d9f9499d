package store

import (
	"testing"

	"github.com/google/uuid"
)

func testProfile(name string) *Profile {
	return &Profile{
		ID:                     uuid.New().String(),
		Name:                   name,
		GraceMs:                200,
		FilterResetMs:          500,
		ScaleResponsiveness:    0.12,
		ScaleDeadZone:          0.02,
		RotationResponsiveness: 0.1,
		RotationDeadZone:       0.01,
		PinchAlpha:             0.35,
		TiltAlpha:              0.3,
		PairAlpha:              0.3,
		AutoRotateSpeed:        0.004,
		WobbleAmplitude:        0.25,
		WobbleFrequency:        0.1,
	}
}

func TestProfileRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := testProfile("default")
	if err := repo.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "default" {
		t.Errorf("Name = %q, want %q", got.Name, "default")
	}
	if got.PinchAlpha != 0.35 || got.ScaleDeadZone != 0.02 {
		t.Errorf("tuning values not round-tripped: %+v", got)
	}

	byName, err := repo.GetByName("default")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if byName.ID != p.ID {
		t.Errorf("GetByName() ID = %q, want %q", byName.ID, p.ID)
	}
}

func TestProfileRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Profiles().GetByID("nope"); err != ErrNotFound {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestProfileRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	for _, name := range []string{"studio", "demo", "living-room"} {
		if err := repo.Create(testProfile(name)); err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
	}

	profiles, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("List() returned %d profiles, want 3", len(profiles))
	}
	// Ordered by name.
	if profiles[0].Name != "demo" || profiles[2].Name != "studio" {
		t.Errorf("List() order = [%s %s %s], want name order", profiles[0].Name, profiles[1].Name, profiles[2].Name)
	}
}

func TestProfileRepository_Update(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := testProfile("default")
	if err := repo.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	p.PinchAlpha = 0.5
	p.GraceMs = 350
	if err := repo.Update(p); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.PinchAlpha != 0.5 || got.GraceMs != 350 {
		t.Errorf("updated values not persisted: alpha=%v grace=%v", got.PinchAlpha, got.GraceMs)
	}

	missing := testProfile("ghost")
	if err := repo.Update(missing); err != ErrNotFound {
		t.Errorf("Update() on missing profile error = %v, want ErrNotFound", err)
	}
}

func TestProfileRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := testProfile("default")
	if err := repo.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(p.ID); err != ErrNotFound {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(p.ID); err != ErrNotFound {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestSessionRepository_CreateAndFinish(t *testing.T) {
	s := newTestStore(t)
	repo := s.Sessions()

	sess := &Session{ID: uuid.New().String(), Mode: "both"}
	if err := repo.Create(sess); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Finish(sess.ID, 1200, 3600); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	sessions, err := repo.List(10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("List() returned %d sessions, want 1", len(sessions))
	}
	got := sessions[0]
	if got.EndedAt == nil {
		t.Error("EndedAt = nil after Finish")
	}
	if got.Frames != 1200 || got.Ticks != 3600 {
		t.Errorf("counters = %d/%d, want 1200/3600", got.Frames, got.Ticks)
	}

	if err := repo.Finish("missing", 0, 0); err != ErrNotFound {
		t.Errorf("Finish() on missing session error = %v, want ErrNotFound", err)
	}
}
