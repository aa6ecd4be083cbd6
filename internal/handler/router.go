package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zhouzirui/mindwell/backend/internal/handler/admin"
	"github.com/zhouzirui/mindwell/backend/internal/handler/booking"
	"github.com/zhouzirui/mindwell/backend/internal/handler/chat"
	"github.com/zhouzirui/mindwell/backend/internal/handler/resource"
	"github.com/zhouzirui/mindwell/backend/internal/handler/stream"
	"github.com/zhouzirui/mindwell/backend/internal/metrics"
	middlewarePkg "github.com/zhouzirui/mindwell/backend/internal/middleware"
	resourceModel "github.com/zhouzirui/mindwell/backend/internal/model/resource"
	analyticsService "github.com/zhouzirui/mindwell/backend/internal/service/analytics"
	bookingService "github.com/zhouzirui/mindwell/backend/internal/service/booking"
	chatService "github.com/zhouzirui/mindwell/backend/internal/service/chat"
	"github.com/zhouzirui/mindwell/backend/pkg/utils"
)

// Deps holds what the HTTP layer needs. Metrics and Gatherer are optional;
// /metrics is only mounted when Gatherer is set.
type Deps struct {
	Chat      *chatService.Service
	Booking   *bookingService.Service
	Analytics *analyticsService.Service
	Resources resourceModel.Store
	Tokens    *middlewarePkg.TokenDirectory
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)
	r.Use(middlewarePkg.TraceRoute)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(middlewarePkg.Authenticate(deps.Tokens))

		chat.New(deps.Chat).RegisterRoutes(api)
		chat.NewWebSocketHandler(deps.Chat).RegisterWebSocketRoutes(api)
		stream.New(deps.Chat).RegisterRoutes(api)

		if deps.Resources != nil {
			resource.New(deps.Resources).RegisterRoutes(api)
		}
		if deps.Booking != nil {
			booking.New(deps.Booking).RegisterRoutes(api)
		}
		if deps.Analytics != nil && deps.Booking != nil {
			admin.New(deps.Analytics, deps.Booking).RegisterRoutes(api)
		}
	})

	return r
}
