// Package memstore provides an in-memory implementation of store.Store.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/zhouzirui/mindwell/backend/internal/store"
)

type sessionRow struct {
	rec       store.SessionRecord
	rating    int
	escalated bool
	ended     bool
}

// Store keeps sessions and appointments in memory. Suitable for dev/testing.
type Store struct {
	mu           sync.RWMutex
	sessions     map[string]*sessionRow
	appointments map[string]store.Appointment
}

// New initializes an empty Store.
func New() *Store {
	return &Store{
		sessions:     make(map[string]*sessionRow),
		appointments: make(map[string]store.Appointment),
	}
}

// CreateSession records a newly opened session.
func (s *Store) CreateSession(_ context.Context, rec store.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[rec.ID] = &sessionRow{rec: rec}
	return nil
}

// UpdateSession records the end of a session.
func (s *Store) UpdateSession(_ context.Context, upd store.SessionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.sessions[upd.ID]
	if !ok {
		return store.ErrNotFound
	}
	row.rec.MessageCount = upd.MessageCount
	row.rating = upd.Rating
	row.escalated = upd.Escalated
	row.ended = true
	return nil
}

// CreateAppointment stores a copy of appt.
func (s *Store) CreateAppointment(_ context.Context, appt store.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments[appt.ID] = appt
	return nil
}

// ListAppointments returns the user's appointments ordered by date and time.
func (s *Store) ListAppointments(_ context.Context, userID string) ([]store.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Appointment, 0)
	for _, a := range s.appointments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b store.Appointment) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.Time, b.Time), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// UpdateAppointmentStatus sets the status and returns the updated copy.
func (s *Store) UpdateAppointmentStatus(_ context.Context, id string, status store.AppointmentStatus) (store.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return store.Appointment{}, store.ErrNotFound
	}
	a.Status = status
	s.appointments[id] = a
	return a, nil
}

// SessionAnalytics aggregates sessions by the month they started.
func (s *Store) SessionAnalytics(_ context.Context, limit int) ([]store.MonthlySessionStats, error) {
	type bucket struct {
		total, escalated, rated, ratingSum int
	}
	s.mu.RLock()
	buckets := make(map[string]*bucket)
	for _, row := range s.sessions {
		m := store.MonthOf(row.rec.StartedAt)
		b, ok := buckets[m]
		if !ok {
			b = &bucket{}
			buckets[m] = b
		}
		b.total++
		if row.escalated {
			b.escalated++
		}
		if row.rating > 0 {
			b.rated++
			b.ratingSum += row.rating
		}
	}
	s.mu.RUnlock()

	out := make([]store.MonthlySessionStats, 0, len(buckets))
	for m, b := range buckets {
		row := store.MonthlySessionStats{Month: m, TotalSessions: b.total, EscalatedSessions: b.escalated}
		if b.rated > 0 {
			row.AvgSatisfaction = float64(b.ratingSum) / float64(b.rated)
		}
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b store.MonthlySessionStats) int {
		return cmp.Compare(b.Month, a.Month)
	})
	return truncate(out, store.NormalizeLimit(limit)), nil
}

// AppointmentAnalytics aggregates appointments by booked month and purpose.
func (s *Store) AppointmentAnalytics(_ context.Context, limit int) ([]store.MonthlyAppointmentStats, error) {
	type key struct{ month, purpose string }
	s.mu.RLock()
	buckets := make(map[key]*store.MonthlyAppointmentStats)
	for _, a := range s.appointments {
		k := key{month: monthOfDate(a.Date), purpose: a.Purpose}
		b, ok := buckets[k]
		if !ok {
			b = &store.MonthlyAppointmentStats{Month: k.month, Purpose: k.purpose}
			buckets[k] = b
		}
		b.TotalAppointments++
		if a.Status == store.StatusCompleted {
			b.CompletedAppointments++
		}
	}
	s.mu.RUnlock()

	out := make([]store.MonthlyAppointmentStats, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b store.MonthlyAppointmentStats) int {
		return cmp.Or(cmp.Compare(b.Month, a.Month), cmp.Compare(a.Purpose, b.Purpose))
	})
	return truncate(out, store.NormalizeLimit(limit)), nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func monthOfDate(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

func truncate[T any](rows []T, limit int) []T {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
