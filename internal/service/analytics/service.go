// Package analytics builds the admin dashboard from store aggregates.
package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/zhouzirui/mindwell/backend/internal/store"
)

// popularPurposeLimit caps the "popular support categories" list.
const popularPurposeLimit = 6

// Summary holds the dashboard headline figures.
type Summary struct {
	TotalSessions       int     `json:"totalSessions"`
	AverageSatisfaction float64 `json:"averageSatisfaction"`
	EscalatedSessions   int     `json:"escalatedSessions"`
	TotalAppointments   int     `json:"totalAppointments"`
	CompletionRate      float64 `json:"completionRate"` // percent
}

// PurposeTotal is one entry of the popular categories list.
type PurposeTotal struct {
	Purpose           string `json:"purpose"`
	TotalAppointments int    `json:"totalAppointments"`
}

// Dashboard is the admin analytics view.
type Dashboard struct {
	Summary         Summary                         `json:"summary"`
	Sessions        []store.MonthlySessionStats     `json:"sessions"`
	Appointments    []store.MonthlyAppointmentStats `json:"appointments"`
	PopularPurposes []PurposeTotal                  `json:"popularPurposes"`
}

// Service reads aggregate rows from the store.
type Service struct {
	store store.Store
}

// NewService returns an analytics service backed by st.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Dashboard loads up to limit rows of each aggregate and summarises them.
func (s *Service) Dashboard(ctx context.Context, limit int) (Dashboard, error) {
	limit = store.NormalizeLimit(limit)

	sessions, err := s.store.SessionAnalytics(ctx, limit)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load session analytics: %w", err)
	}
	appts, err := s.store.AppointmentAnalytics(ctx, limit)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load appointment analytics: %w", err)
	}

	return Dashboard{
		Summary:         Summarize(sessions, appts),
		Sessions:        sessions,
		Appointments:    appts,
		PopularPurposes: popularPurposes(appts),
	}, nil
}

// Summarize computes the headline figures. Average satisfaction is the mean
// of monthly averages, skipping months without ratings.
func Summarize(sessions []store.MonthlySessionStats, appts []store.MonthlyAppointmentStats) Summary {
	var sum Summary
	var ratedMonths int
	var ratingTotal float64
	for _, row := range sessions {
		sum.TotalSessions += row.TotalSessions
		sum.EscalatedSessions += row.EscalatedSessions
		if row.AvgSatisfaction > 0 {
			ratedMonths++
			ratingTotal += row.AvgSatisfaction
		}
	}
	if ratedMonths > 0 {
		sum.AverageSatisfaction = ratingTotal / float64(ratedMonths)
	}

	var completed int
	for _, row := range appts {
		sum.TotalAppointments += row.TotalAppointments
		completed += row.CompletedAppointments
	}
	if sum.TotalAppointments > 0 {
		sum.CompletionRate = float64(completed) / float64(sum.TotalAppointments) * 100
	}
	return sum
}

func popularPurposes(appts []store.MonthlyAppointmentStats) []PurposeTotal {
	totals := make(map[string]int)
	for _, row := range appts {
		totals[row.Purpose] += row.TotalAppointments
	}
	out := make([]PurposeTotal, 0, len(totals))
	for purpose, n := range totals {
		out = append(out, PurposeTotal{Purpose: purpose, TotalAppointments: n})
	}
	slices.SortFunc(out, func(a, b PurposeTotal) int {
		return cmp.Or(cmp.Compare(b.TotalAppointments, a.TotalAppointments), cmp.Compare(a.Purpose, b.Purpose))
	})
	if len(out) > popularPurposeLimit {
		out = out[:popularPurposeLimit]
	}
	return out
}
