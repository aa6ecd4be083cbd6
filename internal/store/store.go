// Package store defines the persistence collaborator used for session
// logging, appointments and dashboard analytics.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an update targets a missing record.
var ErrNotFound = errors.New("store: record not found")

// DefaultAnalyticsLimit caps dashboard rows when callers pass no limit.
const DefaultAnalyticsLimit = 12

// SessionRecord is written when a chat session opens.
type SessionRecord struct {
	ID           string
	UserID       string // empty for anonymous sessions
	Language     string
	MessageCount int
	StartedAt    time.Time
}

// SessionUpdate is written when a chat session ends.
type SessionUpdate struct {
	ID           string
	EndedAt      time.Time
	MessageCount int
	Rating       int // 0 means not rated
	Escalated    bool
}

// AppointmentStatus tracks an appointment through its lifecycle.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a counselling booking.
type Appointment struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Purpose   string            `json:"purpose"`
	Date      string            `json:"date"` // YYYY-MM-DD
	Time      string            `json:"time"` // HH:MM
	Notes     string            `json:"notes,omitempty"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// MonthlySessionStats is one dashboard row of chat activity. Month is YYYY-MM.
type MonthlySessionStats struct {
	Month             string  `json:"month"`
	TotalSessions     int     `json:"totalSessions"`
	AvgSatisfaction   float64 `json:"avgSatisfaction"`
	EscalatedSessions int     `json:"escalatedSessions"`
}

// MonthlyAppointmentStats is one dashboard row of bookings per purpose.
type MonthlyAppointmentStats struct {
	Month                 string `json:"month"`
	Purpose               string `json:"purpose"`
	TotalAppointments     int    `json:"totalAppointments"`
	CompletedAppointments int    `json:"completedAppointments"`
}

// Store is the persistence interface. Analytics rows are ordered newest
// month first and capped at limit rows.
type Store interface {
	CreateSession(ctx context.Context, rec SessionRecord) error
	UpdateSession(ctx context.Context, upd SessionUpdate) error

	CreateAppointment(ctx context.Context, appt Appointment) error
	ListAppointments(ctx context.Context, userID string) ([]Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status AppointmentStatus) (Appointment, error)

	SessionAnalytics(ctx context.Context, limit int) ([]MonthlySessionStats, error)
	AppointmentAnalytics(ctx context.Context, limit int) ([]MonthlyAppointmentStats, error)

	Close() error
}

// MonthOf formats t as the YYYY-MM bucket used by analytics.
func MonthOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// NormalizeLimit applies DefaultAnalyticsLimit to non-positive limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultAnalyticsLimit
	}
	return limit
}
