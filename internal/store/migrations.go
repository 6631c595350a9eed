package store

import "github.com/google/uuid"

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Gesture catalog - maps recognized gestures to machine commands
		`CREATE TABLE IF NOT EXISTS gestures (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL CHECK(category IN ('static', 'dynamic')),
			action TEXT NOT NULL,
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Action log - audit trail of every triggered action
		`CREATE TABLE IF NOT EXISTS action_logs (
			id TEXT PRIMARY KEY,
			gesture TEXT NOT NULL,
			confidence REAL NOT NULL,
			mode TEXT NOT NULL,
			triggered_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings - key-value pairs (persisted mode, camera id, ...)
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_action_logs_triggered_at ON action_logs(triggered_at)`,
		`CREATE INDEX IF NOT EXISTS idx_gestures_name ON gestures(name)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// defaultCatalog is the factory gesture-to-command mapping. It is only
// inserted when the gestures table is empty, so operator edits survive
// restarts.
var defaultCatalog = []Gesture{
	{Name: "fist", Category: CategoryStatic, Action: "STOP_MACHINE"},
	{Name: "open_hand", Category: CategoryStatic, Action: "START_MACHINE"},
	{Name: "one_finger", Category: CategoryStatic, Action: "MODE_1"},
	{Name: "two_fingers", Category: CategoryStatic, Action: "MODE_2"},
	{Name: "three_fingers", Category: CategoryStatic, Action: "MODE_3"},
	{Name: "four_fingers", Category: CategoryStatic, Action: "MODE_4"},
	{Name: "five_fingers", Category: CategoryStatic, Action: "MODE_5"},
	{Name: "ok_sign", Category: CategoryStatic, Action: "CONFIRM"},
	{Name: "swipe_left", Category: CategoryDynamic, Action: "MOVE_LEFT"},
	{Name: "swipe_right", Category: CategoryDynamic, Action: "MOVE_RIGHT"},
	{Name: "swipe_up", Category: CategoryDynamic, Action: "MOVE_UP"},
	{Name: "swipe_down", Category: CategoryDynamic, Action: "MOVE_DOWN"},
}

func (s *Store) seedDefaults() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM gestures`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	repo := s.Gestures()
	for _, g := range defaultCatalog {
		g.ID = uuid.NewString()
		g.Enabled = true
		if err := repo.Create(&g); err != nil {
			return err
		}
	}
	return nil
}
