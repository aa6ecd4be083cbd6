package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindwell/backend/internal/middleware"
	analyticsService "github.com/zhouzirui/mindwell/backend/internal/service/analytics"
	bookingService "github.com/zhouzirui/mindwell/backend/internal/service/booking"
	"github.com/zhouzirui/mindwell/backend/internal/store"
	"github.com/zhouzirui/mindwell/backend/pkg/utils"
)

// Handler 管理端的HTTP处理器
type Handler struct {
	analytics *analyticsService.Service
	booking   *bookingService.Service
}

// New 创建管理端处理器
func New(analytics *analyticsService.Service, booking *bookingService.Service) *Handler {
	return &Handler{analytics: analytics, booking: booking}
}

// RegisterRoutes 注册管理端路由，仅限管理员角色
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(middleware.RoleAdmin))
		r.Get("/analytics", h.handleAnalytics)
		r.Patch("/appointments/{appointmentID}", h.handleUpdateStatus)
	})
}

// handleAnalytics 返回按月汇总的统计数据
func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultAnalyticsLimit
	if raw := r.URL.Query().Get("months"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			utils.RespondError(w, http.StatusBadRequest, "months must be a positive integer")
			return
		}
		limit = v
	}

	dashboard, err := h.analytics.Dashboard(r.Context(), limit)
	if err != nil {
		log.Printf("[admin] analytics failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load analytics")
		return
	}
	utils.RespondJSON(w, http.StatusOK, dashboard)
}

// handleUpdateStatus 修改预约状态
func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.booking.UpdateStatus(r.Context(), chi.URLParam(r, "appointmentID"), store.AppointmentStatus(payload.Status))
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusOK, appt)
	case errors.Is(err, bookingService.ErrInvalidStatus):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, bookingService.ErrAppointmentMissing):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("[admin] update appointment failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to update appointment")
	}
}
