package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Profile is a named controller tuning: grace window, spring stiffness and
// dead zones, per-signal filter coefficients, and the auto-rotate motion.
type Profile struct {
	ID                     string
	Name                   string
	GraceMs                int
	FilterResetMs          int
	ScaleResponsiveness    float64
	ScaleDeadZone          float64
	RotationResponsiveness float64
	RotationDeadZone       float64
	PinchAlpha             float64
	TiltAlpha              float64
	PairAlpha              float64
	AutoRotateSpeed        float64
	WobbleAmplitude        float64
	WobbleFrequency        float64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ProfileRepository provides CRUD operations for tuning profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

const profileColumns = `id, name, grace_ms, filter_reset_ms,
	scale_responsiveness, scale_dead_zone, rotation_responsiveness, rotation_dead_zone,
	pinch_alpha, tilt_alpha, pair_alpha,
	auto_rotate_speed, wobble_amplitude, wobble_frequency,
	created_at, updated_at`

// Create inserts a new profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.GraceMs, p.FilterResetMs,
		p.ScaleResponsiveness, p.ScaleDeadZone, p.RotationResponsiveness, p.RotationDeadZone,
		p.PinchAlpha, p.TiltAlpha, p.PairAlpha,
		p.AutoRotateSpeed, p.WobbleAmplitude, p.WobbleFrequency,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func scanProfile(row interface{ Scan(...any) error }) (*Profile, error) {
	p := &Profile{}
	err := row.Scan(
		&p.ID, &p.Name, &p.GraceMs, &p.FilterResetMs,
		&p.ScaleResponsiveness, &p.ScaleDeadZone, &p.RotationResponsiveness, &p.RotationDeadZone,
		&p.PinchAlpha, &p.TiltAlpha, &p.PairAlpha,
		&p.AutoRotateSpeed, &p.WobbleAmplitude, &p.WobbleFrequency,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	row := r.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

// GetByName retrieves a profile by its unique name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	row := r.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name)
	return scanProfile(row)
}

// List returns all profiles ordered by name.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Update modifies an existing profile's tuning values.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	res, err := r.db.Exec(
		`UPDATE profiles SET name = ?, grace_ms = ?, filter_reset_ms = ?,
			scale_responsiveness = ?, scale_dead_zone = ?,
			rotation_responsiveness = ?, rotation_dead_zone = ?,
			pinch_alpha = ?, tilt_alpha = ?, pair_alpha = ?,
			auto_rotate_speed = ?, wobble_amplitude = ?, wobble_frequency = ?,
			updated_at = ?
		 WHERE id = ?`,
		p.Name, p.GraceMs, p.FilterResetMs,
		p.ScaleResponsiveness, p.ScaleDeadZone,
		p.RotationResponsiveness, p.RotationDeadZone,
		p.PinchAlpha, p.TiltAlpha, p.PairAlpha,
		p.AutoRotateSpeed, p.WobbleAmplitude, p.WobbleFrequency,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a profile by ID.
func (r *ProfileRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
