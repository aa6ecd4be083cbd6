// Package metrics holds the Prometheus instruments for chat, booking and
// persistence.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for the service.
type Metrics struct {
	TurnsTotal          *prometheus.CounterVec
	CrisisTotal         *prometheus.CounterVec
	IgnoredSubmissions  prometheus.Counter
	SessionsStarted     *prometheus.CounterVec
	SessionsEnded       prometheus.Counter
	SessionRating       prometheus.Histogram
	PersistenceFailures *prometheus.CounterVec
	AppointmentsTotal   *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

// NewMetrics registers and returns metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TurnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindwell_chat_turns_total",
			Help: "Chat turns answered by detected language and topic.",
		}, []string{"language", "topic"}),
		CrisisTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindwell_chat_crisis_total",
			Help: "Turns answered with the crisis safety message, by language.",
		}, []string{"language"}),
		IgnoredSubmissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mindwell_chat_ignored_submissions_total",
			Help: "Submissions dropped because they were empty after sanitization.",
		}),
		SessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindwell_chat_sessions_started_total",
			Help: "Chat sessions opened by preferred language.",
		}, []string{"language"}),
		SessionsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mindwell_chat_sessions_ended_total",
			Help: "Chat sessions ended.",
		}),
		SessionRating: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mindwell_chat_session_rating",
			Help:    "Satisfaction ratings submitted at session end.",
			Buckets: prometheus.LinearBuckets(1, 1, 5), // 1 .. 5
		}),
		PersistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindwell_persistence_failures_total",
			Help: "Failed session log writes by operation.",
		}, []string{"operation"}),
		AppointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindwell_appointments_total",
			Help: "Appointment booking attempts by purpose and result.",
		}, []string{"purpose", "result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindwell_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindwell_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.TurnsTotal,
		m.CrisisTotal,
		m.IgnoredSubmissions,
		m.SessionsStarted,
		m.SessionsEnded,
		m.SessionRating,
		m.PersistenceFailures,
		m.AppointmentsTotal,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// Middleware records request counts and latency labelled by chi route
// pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
