package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestSpanNameUsesRoutePattern(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			got = SpanName(req)
		})
	})
	r.Use(TraceRoute)
	r.Route("/api/chat", func(r chi.Router) {
		r.Get("/sessions/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat/sessions/9f8e7d6c", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if got != "GET /api/chat/sessions/{sessionID}" {
		t.Fatalf("unexpected span name %q", got)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/nowhere/123", nil))
	if got != "POST" {
		t.Fatalf("unmatched route should use the bare method, got %q", got)
	}
}
