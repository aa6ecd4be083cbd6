package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zhouzirui/mindwell/backend/internal/analysis/triage"
	"github.com/zhouzirui/mindwell/backend/internal/metrics"
	middlewarePkg "github.com/zhouzirui/mindwell/backend/internal/middleware"
	resourceModel "github.com/zhouzirui/mindwell/backend/internal/model/resource"
	analyticsService "github.com/zhouzirui/mindwell/backend/internal/service/analytics"
	bookingService "github.com/zhouzirui/mindwell/backend/internal/service/booking"
	chatService "github.com/zhouzirui/mindwell/backend/internal/service/chat"
	"github.com/zhouzirui/mindwell/backend/internal/store/memstore"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	st := memstore.New()
	tokens, err := middlewarePkg.ParseTokenDirectory("admin-token:ops:admin")
	if err != nil {
		t.Fatalf("ParseTokenDirectory: %v", err)
	}

	return NewRouter(Deps{
		Chat:      chatService.NewService(triage.NewEngine(triage.WithSeed(1)), chatService.WithStore(st), chatService.WithMetrics(m)),
		Booking:   bookingService.NewService(st, bookingService.WithMetrics(m)),
		Analytics: analyticsService.NewService(st),
		Resources: resourceModel.NewMemoryStore(resourceModel.Seed()),
		Tokens:    tokens,
		Metrics:   m,
		Gatherer:  reg,
	})
}

func TestRouterServesHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from /healthz, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/chat/sessions", bytes.NewReader([]byte(`{"language":"en"}`)))
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	body := resp.Body.String()
	if !strings.Contains(body, "mindwell_chat_sessions_started_total") {
		t.Fatalf("expected session metric in exposition")
	}
	if !strings.Contains(body, `route="/api/chat/sessions"`) {
		t.Fatalf("expected route-labelled request metric, got:\n%s", body)
	}
}

func TestRouterGuardsAdminRoutes(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/analytics", http.NoBody)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/analytics", http.NoBody)
	req.Header.Set("Authorization", "Bearer admin-token")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRouterAnswersPreflight(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/appointments", http.NoBody)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}
