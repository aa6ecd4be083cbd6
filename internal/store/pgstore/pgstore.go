// Package pgstore provides a PostgreSQL implementation of store.Store.
package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zhouzirui/mindwell/backend/internal/store"
)

var tracer = otel.Tracer("github.com/zhouzirui/mindwell/backend/internal/store/pgstore")

//go:embed schema.sql
var schema string

const dateLayout = "2006-01-02"

// Store persists sessions and appointments in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL, applies the schema, and returns a ready Store.
// Queries are traced through otelpgx.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func startSpan(ctx context.Context, name, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", op),
	))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// CreateSession inserts a session row.
func (s *Store) CreateSession(ctx context.Context, rec store.SessionRecord) error {
	ctx, span := startSpan(ctx, "pgstore.CreateSession", "INSERT")
	defer span.End()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO chat_sessions (id, user_id, language, message_count, started_at)
		 VALUES ($1, NULLIF($2, ''), $3, $4, $5)`,
		rec.ID, rec.UserID, rec.Language, rec.MessageCount, rec.StartedAt.UTC())
	if err != nil {
		return fail(span, fmt.Errorf("insert session: %w", err))
	}
	return nil
}

// UpdateSession closes a session row.
func (s *Store) UpdateSession(ctx context.Context, upd store.SessionUpdate) error {
	ctx, span := startSpan(ctx, "pgstore.UpdateSession", "UPDATE")
	defer span.End()

	var rating *int
	if upd.Rating > 0 {
		rating = &upd.Rating
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE chat_sessions
		 SET ended_at = $2, message_count = $3, rating = $4, escalated = $5
		 WHERE id = $1`,
		upd.ID, upd.EndedAt.UTC(), upd.MessageCount, rating, upd.Escalated)
	if err != nil {
		return fail(span, fmt.Errorf("update session: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return fail(span, store.ErrNotFound)
	}
	return nil
}

// CreateAppointment inserts an appointment row.
func (s *Store) CreateAppointment(ctx context.Context, appt store.Appointment) error {
	ctx, span := startSpan(ctx, "pgstore.CreateAppointment", "INSERT")
	defer span.End()

	date, err := time.Parse(dateLayout, appt.Date)
	if err != nil {
		return fail(span, fmt.Errorf("parse appointment date: %w", err))
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO appointments (id, user_id, purpose, appt_date, appt_time, notes, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		appt.ID, appt.UserID, appt.Purpose, date, appt.Time, appt.Notes, string(appt.Status), appt.CreatedAt.UTC())
	if err != nil {
		return fail(span, fmt.Errorf("insert appointment: %w", err))
	}
	return nil
}

const appointmentColumns = `id, user_id, purpose, appt_date, appt_time, notes, status, created_at`

func scanAppointment(row pgx.Row) (store.Appointment, error) {
	var (
		a      store.Appointment
		date   time.Time
		status string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Purpose, &date, &a.Time, &a.Notes, &status, &a.CreatedAt); err != nil {
		return store.Appointment{}, err
	}
	a.Date = date.Format(dateLayout)
	a.Status = store.AppointmentStatus(status)
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

// ListAppointments returns a user's appointments ordered by date and time.
func (s *Store) ListAppointments(ctx context.Context, userID string) ([]store.Appointment, error) {
	ctx, span := startSpan(ctx, "pgstore.ListAppointments", "SELECT")
	defer span.End()

	rows, err := s.pool.Query(ctx,
		`SELECT `+appointmentColumns+` FROM appointments
		 WHERE user_id = $1 ORDER BY appt_date, appt_time, id`, userID)
	if err != nil {
		return nil, fail(span, fmt.Errorf("query appointments: %w", err))
	}
	defer rows.Close()

	out := make([]store.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fail(span, fmt.Errorf("scan appointment: %w", err))
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fail(span, fmt.Errorf("iterate appointments: %w", err))
	}
	return out, nil
}

// UpdateAppointmentStatus sets the status and returns the updated row.
func (s *Store) UpdateAppointmentStatus(ctx context.Context, id string, status store.AppointmentStatus) (store.Appointment, error) {
	ctx, span := startSpan(ctx, "pgstore.UpdateAppointmentStatus", "UPDATE")
	defer span.End()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return store.Appointment{}, fail(span, fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	a, err := scanAppointment(tx.QueryRow(ctx,
		`UPDATE appointments SET status = $2 WHERE id = $1 RETURNING `+appointmentColumns,
		id, string(status)))
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Appointment{}, fail(span, store.ErrNotFound)
	}
	if err != nil {
		return store.Appointment{}, fail(span, fmt.Errorf("update appointment: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return store.Appointment{}, fail(span, fmt.Errorf("commit: %w", err))
	}
	return a, nil
}

// SessionAnalytics aggregates sessions by the month they started.
func (s *Store) SessionAnalytics(ctx context.Context, limit int) ([]store.MonthlySessionStats, error) {
	ctx, span := startSpan(ctx, "pgstore.SessionAnalytics", "SELECT")
	defer span.End()

	rows, err := s.pool.Query(ctx, `
		SELECT to_char(started_at AT TIME ZONE 'UTC', 'YYYY-MM') AS month,
		       count(*),
		       COALESCE(avg(rating)::float8, 0),
		       count(*) FILTER (WHERE escalated)
		FROM chat_sessions
		GROUP BY month
		ORDER BY month DESC
		LIMIT $1`, store.NormalizeLimit(limit))
	if err != nil {
		return nil, fail(span, fmt.Errorf("query session analytics: %w", err))
	}
	defer rows.Close()

	out := make([]store.MonthlySessionStats, 0)
	for rows.Next() {
		var r store.MonthlySessionStats
		if err := rows.Scan(&r.Month, &r.TotalSessions, &r.AvgSatisfaction, &r.EscalatedSessions); err != nil {
			return nil, fail(span, fmt.Errorf("scan session analytics: %w", err))
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fail(span, fmt.Errorf("iterate session analytics: %w", err))
	}
	return out, nil
}

// AppointmentAnalytics aggregates appointments by booked month and purpose.
func (s *Store) AppointmentAnalytics(ctx context.Context, limit int) ([]store.MonthlyAppointmentStats, error) {
	ctx, span := startSpan(ctx, "pgstore.AppointmentAnalytics", "SELECT")
	defer span.End()

	rows, err := s.pool.Query(ctx, `
		SELECT to_char(appt_date, 'YYYY-MM') AS month,
		       purpose,
		       count(*),
		       count(*) FILTER (WHERE status = 'completed')
		FROM appointments
		GROUP BY month, purpose
		ORDER BY month DESC, purpose
		LIMIT $1`, store.NormalizeLimit(limit))
	if err != nil {
		return nil, fail(span, fmt.Errorf("query appointment analytics: %w", err))
	}
	defer rows.Close()

	out := make([]store.MonthlyAppointmentStats, 0)
	for rows.Next() {
		var r store.MonthlyAppointmentStats
		if err := rows.Scan(&r.Month, &r.Purpose, &r.TotalAppointments, &r.CompletedAppointments); err != nil {
			return nil, fail(span, fmt.Errorf("scan appointment analytics: %w", err))
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fail(span, fmt.Errorf("iterate appointment analytics: %w", err))
	}
	return out, nil
}
