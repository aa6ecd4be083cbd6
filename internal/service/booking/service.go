// Package booking validates and records counselling appointments.
package booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/zhouzirui/mindwell/backend/internal/metrics"
	"github.com/zhouzirui/mindwell/backend/internal/store"
	"github.com/zhouzirui/mindwell/backend/pkg/utils"
)

var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrMissingFields      = errors.New("purpose, date and time are required")
	ErrInvalidPurpose     = errors.New("unknown appointment purpose")
	ErrInvalidDate        = errors.New("date must be formatted YYYY-MM-DD")
	ErrDateUnavailable    = errors.New("appointments can only be booked on a future weekday")
	ErrInvalidSlot        = errors.New("time is not an available slot")
	ErrInvalidStatus      = errors.New("unknown appointment status")
	ErrAppointmentMissing = errors.New("appointment not found")
)

const dateLayout = "2006-01-02"

// maxNotesLen caps free-text notes after sanitization.
const maxNotesLen = 2000

// Purposes are the bookable appointment reasons in display order.
var Purposes = []string{
	"General Counseling",
	"Academic Stress Support",
	"Anxiety Management",
	"Depression Support",
	"Crisis Intervention",
	"Peer Relationship Issues",
	"Family Concerns",
	"Eating Disorder Support",
	"Substance Use Support",
	"Sleep Issues",
	"Other",
}

// TimeSlots are the half-hour starts from 09:00 to 17:00.
var TimeSlots = buildSlots(9*time.Hour, 17*time.Hour, 30*time.Minute)

func buildSlots(first, last, step time.Duration) []string {
	var out []string
	for d := first; d <= last; d += step {
		out = append(out, fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60))
	}
	return out
}

// Options is what the booking form offers.
type Options struct {
	Purposes  []string `json:"purposes"`
	TimeSlots []string `json:"timeSlots"`
	Statuses  []string `json:"statuses"`
}

// Request is a booking form submission.
type Request struct {
	Purpose string `json:"purpose"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

// Service books appointments against a store.
type Service struct {
	store   store.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records booking attempts.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a booking service backed by st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Options returns the bookable purposes, slots and statuses.
func (s *Service) Options() Options {
	return Options{
		Purposes:  slices.Clone(Purposes),
		TimeSlots: slices.Clone(TimeSlots),
		Statuses:  []string{string(store.StatusScheduled), string(store.StatusCompleted), string(store.StatusCancelled)},
	}
}

// Book validates req and stores a scheduled appointment for userID.
func (s *Service) Book(ctx context.Context, userID string, req Request) (store.Appointment, error) {
	if strings.TrimSpace(userID) == "" {
		return store.Appointment{}, ErrAuthRequired
	}
	appt, err := s.validate(req)
	if err != nil {
		s.record(req.Purpose, "rejected")
		return store.Appointment{}, err
	}

	appt.ID = ulid.Make().String()
	appt.UserID = userID
	appt.Status = store.StatusScheduled
	appt.CreatedAt = s.now().UTC()

	if err := s.store.CreateAppointment(ctx, appt); err != nil {
		s.record(appt.Purpose, "error")
		return store.Appointment{}, fmt.Errorf("create appointment: %w", err)
	}
	s.record(appt.Purpose, "booked")
	return appt, nil
}

func (s *Service) validate(req Request) (store.Appointment, error) {
	purpose := strings.TrimSpace(req.Purpose)
	date := strings.TrimSpace(req.Date)
	slot := strings.TrimSpace(req.Time)
	if purpose == "" || date == "" || slot == "" {
		return store.Appointment{}, ErrMissingFields
	}
	if !slices.Contains(Purposes, purpose) {
		return store.Appointment{}, ErrInvalidPurpose
	}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return store.Appointment{}, ErrInvalidDate
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	if !day.After(today) || day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		return store.Appointment{}, ErrDateUnavailable
	}
	if !slices.Contains(TimeSlots, slot) {
		return store.Appointment{}, ErrInvalidSlot
	}

	notes := utils.Sanitize(req.Notes)
	if r := []rune(notes); len(r) > maxNotesLen {
		notes = string(r[:maxNotesLen])
	}

	return store.Appointment{
		Purpose: purpose,
		Date:    day.Format(dateLayout),
		Time:    slot,
		Notes:   notes,
	}, nil
}

// List returns the caller's appointments.
func (s *Service) List(ctx context.Context, userID string) ([]store.Appointment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrAuthRequired
	}
	appts, err := s.store.ListAppointments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// UpdateStatus moves an appointment to status.
func (s *Service) UpdateStatus(ctx context.Context, id string, status store.AppointmentStatus) (store.Appointment, error) {
	if !status.Valid() {
		return store.Appointment{}, ErrInvalidStatus
	}
	appt, err := s.store.UpdateAppointmentStatus(ctx, id, status)
	if errors.Is(err, store.ErrNotFound) {
		return store.Appointment{}, ErrAppointmentMissing
	}
	if err != nil {
		return store.Appointment{}, fmt.Errorf("update appointment status: %w", err)
	}
	return appt, nil
}

// IsValidationError reports whether err came from input validation rather
// than the store.
func IsValidationError(err error) bool {
	for _, target := range []error{ErrMissingFields, ErrInvalidPurpose, ErrInvalidDate, ErrDateUnavailable, ErrInvalidSlot, ErrInvalidStatus} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *Service) record(purpose, result string) {
	if s.metrics == nil {
		return
	}
	if !slices.Contains(Purposes, purpose) {
		purpose = "unknown"
	}
	s.metrics.AppointmentsTotal.WithLabelValues(purpose, result).Inc()
}
