// Package sqlitestore provides a SQLite implementation of store.Store for
// single-node deployments.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zhouzirui/mindwell/backend/internal/store"
)

// timestamps are stored as fixed-width UTC text so they sort lexically
const timeLayout = "2006-01-02T15:04:05.000000Z"

// Store persists sessions and appointments in a SQLite file.
type Store struct {
	db *sql.DB
}

// New opens or creates a SQLite database at path.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// one writer at a time; avoids SQLITE_BUSY under the fire-and-forget writers
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chat_sessions (
		id            TEXT PRIMARY KEY,
		user_id       TEXT,
		language      TEXT NOT NULL DEFAULT 'en',
		message_count INTEGER NOT NULL DEFAULT 0,
		started_at    TEXT NOT NULL,
		ended_at      TEXT,
		rating        INTEGER,
		escalated     INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_chat_sessions_started ON chat_sessions(started_at DESC);

	CREATE TABLE IF NOT EXISTS appointments (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		purpose    TEXT NOT NULL,
		appt_date  TEXT NOT NULL,
		appt_time  TEXT NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'scheduled',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_appointments_user ON appointments(user_id, appt_date, appt_time);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Ping reports whether the database file is usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateSession inserts a session row.
func (s *Store) CreateSession(ctx context.Context, rec store.SessionRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, user_id, language, message_count, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, nullIfEmpty(rec.UserID), rec.Language, rec.MessageCount, formatTime(rec.StartedAt))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// UpdateSession closes a session row.
func (s *Store) UpdateSession(ctx context.Context, upd store.SessionUpdate) error {
	rating := sql.NullInt64{Int64: int64(upd.Rating), Valid: upd.Rating > 0}
	res, err := s.db.ExecContext(ctx,
		`UPDATE chat_sessions SET ended_at = ?, message_count = ?, rating = ?, escalated = ?
		 WHERE id = ?`,
		formatTime(upd.EndedAt), upd.MessageCount, rating, upd.Escalated, upd.ID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// CreateAppointment inserts an appointment row.
func (s *Store) CreateAppointment(ctx context.Context, appt store.Appointment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO appointments (id, user_id, purpose, appt_date, appt_time, notes, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		appt.ID, appt.UserID, appt.Purpose, appt.Date, appt.Time, appt.Notes, string(appt.Status), formatTime(appt.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

const appointmentColumns = `id, user_id, purpose, appt_date, appt_time, notes, status, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row scanner) (store.Appointment, error) {
	var (
		a                 store.Appointment
		status, createdAt string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Purpose, &a.Date, &a.Time, &a.Notes, &status, &createdAt); err != nil {
		return store.Appointment{}, err
	}
	a.Status = store.AppointmentStatus(status)
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		a.CreatedAt = t
	}
	return a, nil
}

// ListAppointments returns a user's appointments ordered by date and time.
func (s *Store) ListAppointments(ctx context.Context, userID string) ([]store.Appointment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments
		 WHERE user_id = ? ORDER BY appt_date, appt_time, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	out := make([]store.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateAppointmentStatus sets the status and returns the updated row.
func (s *Store) UpdateAppointmentStatus(ctx context.Context, id string, status store.AppointmentStatus) (store.Appointment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Appointment{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is harmless

	res, err := tx.ExecContext(ctx, `UPDATE appointments SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return store.Appointment{}, fmt.Errorf("update appointment: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return store.Appointment{}, fmt.Errorf("update appointment: %w", err)
	} else if n == 0 {
		return store.Appointment{}, store.ErrNotFound
	}

	a, err := scanAppointment(tx.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return store.Appointment{}, store.ErrNotFound
	}
	if err != nil {
		return store.Appointment{}, fmt.Errorf("reload appointment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return store.Appointment{}, fmt.Errorf("commit: %w", err)
	}
	return a, nil
}

// SessionAnalytics aggregates sessions by the month they started.
func (s *Store) SessionAnalytics(ctx context.Context, limit int) ([]store.MonthlySessionStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(started_at, 1, 7) AS month,
		       count(*),
		       COALESCE(avg(rating), 0),
		       sum(CASE WHEN escalated THEN 1 ELSE 0 END)
		FROM chat_sessions
		GROUP BY month
		ORDER BY month DESC
		LIMIT ?`, store.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query session analytics: %w", err)
	}
	defer rows.Close()

	out := make([]store.MonthlySessionStats, 0)
	for rows.Next() {
		var r store.MonthlySessionStats
		if err := rows.Scan(&r.Month, &r.TotalSessions, &r.AvgSatisfaction, &r.EscalatedSessions); err != nil {
			return nil, fmt.Errorf("scan session analytics: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AppointmentAnalytics aggregates appointments by booked month and purpose.
func (s *Store) AppointmentAnalytics(ctx context.Context, limit int) ([]store.MonthlyAppointmentStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(appt_date, 1, 7) AS month,
		       purpose,
		       count(*),
		       sum(CASE WHEN status = 'completed' THEN 1 ELSE 0 END)
		FROM appointments
		GROUP BY month, purpose
		ORDER BY month DESC, purpose
		LIMIT ?`, store.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query appointment analytics: %w", err)
	}
	defer rows.Close()

	out := make([]store.MonthlyAppointmentStats, 0)
	for rows.Next() {
		var r store.MonthlyAppointmentStats
		if err := rows.Scan(&r.Month, &r.Purpose, &r.TotalAppointments, &r.CompletedAppointments); err != nil {
			return nil, fmt.Errorf("scan appointment analytics: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
