package store

import (
	"database/sql"
	"errors"
	"time"
)

// GestureCategory distinguishes held poses from motion gestures.
type GestureCategory string

const (
	// CategoryStatic is a held hand pose classified per frame.
	CategoryStatic GestureCategory = "static"
	// CategoryDynamic is a motion gesture detected from the wrist trajectory.
	CategoryDynamic GestureCategory = "dynamic"
)

// Gesture is a catalog entry mapping a recognized gesture name to a
// machine command.
type Gesture struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  GestureCategory `json:"category"`
	Action    string          `json:"action"`
	Enabled   bool            `json:"enabled"`
	CreatedAt time.Time       `json:"created_at"`
}

// GestureRepository provides catalog operations.
type GestureRepository struct {
	db *sql.DB
}

// Gestures returns the gesture catalog repository.
func (s *Store) Gestures() *GestureRepository {
	return &GestureRepository{db: s.db}
}

// Create inserts a new catalog entry.
func (r *GestureRepository) Create(g *Gesture) error {
	g.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO gestures (id, name, category, action, enabled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, string(g.Category), g.Action, g.Enabled, g.CreatedAt,
	)
	return err
}

// GetByName retrieves a catalog entry by gesture name.
func (r *GestureRepository) GetByName(name string) (*Gesture, error) {
	g := &Gesture{}
	var category string

	err := r.db.QueryRow(
		`SELECT id, name, category, action, enabled, created_at
		 FROM gestures WHERE name = ?`,
		name,
	).Scan(&g.ID, &g.Name, &category, &g.Action, &g.Enabled, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	g.Category = GestureCategory(category)
	return g, nil
}

// List retrieves the full catalog, ordered by name.
func (r *GestureRepository) List() ([]*Gesture, error) {
	rows, err := r.db.Query(
		`SELECT id, name, category, action, enabled, created_at
		 FROM gestures ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gestures []*Gesture
	for rows.Next() {
		g := &Gesture{}
		var category string

		if err := rows.Scan(&g.ID, &g.Name, &category, &g.Action, &g.Enabled, &g.CreatedAt); err != nil {
			return nil, err
		}

		g.Category = GestureCategory(category)
		gestures = append(gestures, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return gestures, nil
}

// SetEnabled toggles whether a gesture dispatches its action.
func (r *GestureRepository) SetEnabled(name string, enabled bool) error {
	result, err := r.db.Exec(
		`UPDATE gestures SET enabled = ? WHERE name = ?`,
		enabled, name,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAction rebinds a gesture to a different machine command.
func (r *GestureRepository) SetAction(name, action string) error {
	result, err := r.db.Exec(
		`UPDATE gestures SET action = ? WHERE name = ?`,
		action, name,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
