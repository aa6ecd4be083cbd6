// Package storetest holds behaviour checks shared by every store.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/zhouzirui/mindwell/backend/internal/store"
)

// Run exercises s against the store.Store contract. s must be empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	t.Run("SessionAnalytics", func(t *testing.T) { testSessionAnalytics(t, s) })
	t.Run("Appointments", func(t *testing.T) { testAppointments(t, s) })
	t.Run("AppointmentAnalytics", func(t *testing.T) { testAppointmentAnalytics(t, s) })
	t.Run("MissingRecords", func(t *testing.T) { testMissingRecords(t, s) })
}

func testSessionAnalytics(t *testing.T, s store.Store) {
	ctx := context.Background()
	sept := time.Date(2026, time.September, 14, 10, 0, 0, 0, time.UTC)
	oct := time.Date(2026, time.October, 3, 9, 30, 0, 0, time.UTC)

	sessions := []struct {
		id        string
		started   time.Time
		rating    int
		escalated bool
		end       bool
	}{
		{id: "sess-sept-1", started: sept, rating: 4, end: true},
		{id: "sess-oct-1", started: oct, rating: 5, end: true},
		{id: "sess-oct-2", started: oct.Add(time.Hour), rating: 2, escalated: true, end: true},
		{id: "sess-oct-3", started: oct.Add(2 * time.Hour)},
	}
	for _, sess := range sessions {
		rec := store.SessionRecord{ID: sess.id, UserID: "user-1", Language: "en", StartedAt: sess.started}
		if err := s.CreateSession(ctx, rec); err != nil {
			t.Fatalf("CreateSession(%s): %v", sess.id, err)
		}
		if !sess.end {
			continue
		}
		upd := store.SessionUpdate{
			ID:           sess.id,
			EndedAt:      sess.started.Add(10 * time.Minute),
			MessageCount: 6,
			Rating:       sess.rating,
			Escalated:    sess.escalated,
		}
		if err := s.UpdateSession(ctx, upd); err != nil {
			t.Fatalf("UpdateSession(%s): %v", sess.id, err)
		}
	}

	rows, err := s.SessionAnalytics(ctx, 12)
	if err != nil {
		t.Fatalf("SessionAnalytics: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 monthly rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].Month != "2026-10" || rows[1].Month != "2026-09" {
		t.Fatalf("rows not ordered newest first: %+v", rows)
	}
	if rows[0].TotalSessions != 3 || rows[0].EscalatedSessions != 1 {
		t.Fatalf("unexpected october row: %+v", rows[0])
	}
	if math.Abs(rows[0].AvgSatisfaction-3.5) > 1e-9 {
		t.Fatalf("expected avg satisfaction 3.5 (unrated excluded), got %v", rows[0].AvgSatisfaction)
	}
	if rows[1].TotalSessions != 1 || math.Abs(rows[1].AvgSatisfaction-4) > 1e-9 {
		t.Fatalf("unexpected september row: %+v", rows[1])
	}

	limited, err := s.SessionAnalytics(ctx, 1)
	if err != nil {
		t.Fatalf("SessionAnalytics(limit=1): %v", err)
	}
	if len(limited) != 1 || limited[0].Month != "2026-10" {
		t.Fatalf("limit not applied: %+v", limited)
	}
}

func testAppointments(t *testing.T, s store.Store) {
	ctx := context.Background()
	created := time.Date(2026, time.October, 1, 8, 0, 0, 0, time.UTC)
	appts := []store.Appointment{
		{ID: "appt-b", UserID: "user-1", Purpose: "Anxiety Management", Date: "2026-10-21", Time: "14:00", Status: store.StatusScheduled, CreatedAt: created},
		{ID: "appt-a", UserID: "user-1", Purpose: "General Counseling", Date: "2026-10-20", Time: "09:30", Notes: "first visit", Status: store.StatusScheduled, CreatedAt: created},
		{ID: "appt-c", UserID: "user-2", Purpose: "Sleep Issues", Date: "2026-10-20", Time: "10:00", Status: store.StatusScheduled, CreatedAt: created},
	}
	for _, a := range appts {
		if err := s.CreateAppointment(ctx, a); err != nil {
			t.Fatalf("CreateAppointment(%s): %v", a.ID, err)
		}
	}

	got, err := s.ListAppointments(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListAppointments: %v", err)
	}
	if len(got) != 2 || got[0].ID != "appt-a" || got[1].ID != "appt-b" {
		t.Fatalf("unexpected appointments for user-1: %+v", got)
	}
	if got[0].Notes != "first visit" || got[0].Date != "2026-10-20" || got[0].Time != "09:30" {
		t.Fatalf("appointment fields not preserved: %+v", got[0])
	}

	none, err := s.ListAppointments(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListAppointments(nobody): %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no appointments, got %+v", none)
	}

	updated, err := s.UpdateAppointmentStatus(ctx, "appt-a", store.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateAppointmentStatus: %v", err)
	}
	if updated.Status != store.StatusCompleted || updated.Purpose != "General Counseling" {
		t.Fatalf("unexpected updated appointment: %+v", updated)
	}
}

func testAppointmentAnalytics(t *testing.T, s store.Store) {
	ctx := context.Background()
	rows, err := s.AppointmentAnalytics(ctx, 12)
	if err != nil {
		t.Fatalf("AppointmentAnalytics: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %+v", rows)
	}
	byPurpose := make(map[string]store.MonthlyAppointmentStats, len(rows))
	for _, r := range rows {
		if r.Month != "2026-10" {
			t.Fatalf("unexpected month in %+v", r)
		}
		byPurpose[r.Purpose] = r
	}
	if r := byPurpose["General Counseling"]; r.TotalAppointments != 1 || r.CompletedAppointments != 1 {
		t.Fatalf("unexpected general counseling row: %+v", r)
	}
	if r := byPurpose["Anxiety Management"]; r.TotalAppointments != 1 || r.CompletedAppointments != 0 {
		t.Fatalf("unexpected anxiety row: %+v", r)
	}
	if rows[0].Purpose != "Anxiety Management" {
		t.Fatalf("rows within a month should be ordered by purpose: %+v", rows)
	}
}

func testMissingRecords(t *testing.T, s store.Store) {
	ctx := context.Background()
	err := s.UpdateSession(ctx, store.SessionUpdate{ID: "missing", EndedAt: time.Now()})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing session, got %v", err)
	}
	_, err = s.UpdateAppointmentStatus(ctx, "missing", store.StatusCancelled)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing appointment, got %v", err)
	}
}
