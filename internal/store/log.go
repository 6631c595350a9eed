package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ActionLog is one triggered action in the audit trail.
type ActionLog struct {
	ID          string    `json:"id"`
	Gesture     string    `json:"gesture"`
	Confidence  float64   `json:"confidence"`
	Mode        string    `json:"mode"`
	TriggeredAt time.Time `json:"triggered_at"`
}

// ActionLogRepository provides audit-trail operations.
type ActionLogRepository struct {
	db *sql.DB
}

// ActionLogs returns the audit-trail repository.
func (s *Store) ActionLogs() *ActionLogRepository {
	return &ActionLogRepository{db: s.db}
}

// Create appends a log entry. The ID and timestamp are assigned here
// when unset.
func (r *ActionLogRepository) Create(l *ActionLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.TriggeredAt.IsZero() {
		l.TriggeredAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO action_logs (id, gesture, confidence, mode, triggered_at)
		 VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.Gesture, l.Confidence, l.Mode, l.TriggeredAt,
	)
	return err
}

// List returns the most recent entries, newest first.
func (r *ActionLogRepository) List(limit int) ([]*ActionLog, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture, confidence, mode, triggered_at
		 FROM action_logs ORDER BY triggered_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*ActionLog
	for rows.Next() {
		l := &ActionLog{}
		if err := rows.Scan(&l.ID, &l.Gesture, &l.Confidence, &l.Mode, &l.TriggeredAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// Prune deletes entries older than the cutoff and returns how many
// rows were removed.
func (r *ActionLogRepository) Prune(olderThan time.Time) (int64, error) {
	result, err := r.db.Exec(
		`DELETE FROM action_logs WHERE triggered_at < ?`,
		olderThan,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
