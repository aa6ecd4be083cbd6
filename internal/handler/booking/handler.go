package booking

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindwell/backend/internal/middleware"
	bookingService "github.com/zhouzirui/mindwell/backend/internal/service/booking"
	"github.com/zhouzirui/mindwell/backend/pkg/utils"
)

const (
	authTitle    = "Authentication Required"
	authMessage  = "Please log in to book an appointment."
	failedTitle  = "Booking Failed"
	failedNotice = "There was an error booking your appointment. Please try again."
)

// Handler 预约服务的HTTP处理器
type Handler struct {
	bookingSvc *bookingService.Service
}

// New 创建预约处理器
func New(bookingSvc *bookingService.Service) *Handler {
	return &Handler{bookingSvc: bookingSvc}
}

// RegisterRoutes 注册预约相关的路由，除选项外都需要登录
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/appointments/options", h.handleOptions)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authTitle, authMessage))
		r.Post("/appointments", h.handleBook)
		r.Get("/appointments", h.handleList)
	})
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.bookingSvc.Options())
}

// handleBook 校验并创建预约
func (h *Handler) handleBook(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	var req bookingService.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.bookingSvc.Book(r.Context(), id.UserID, req)
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusCreated, appt)
	case errors.Is(err, bookingService.ErrAuthRequired):
		utils.RespondNotice(w, http.StatusUnauthorized, authTitle, authMessage)
	case errors.Is(err, bookingService.ErrMissingFields):
		utils.RespondNotice(w, http.StatusBadRequest, "Missing Information", "Please fill in all required fields.")
	case bookingService.IsValidationError(err):
		utils.RespondNotice(w, http.StatusBadRequest, "Invalid Appointment", err.Error())
	default:
		log.Printf("[booking] create failed user=%s: %v", id.UserID, err)
		utils.RespondNotice(w, http.StatusInternalServerError, failedTitle, failedNotice)
	}
}

// handleList 返回当前用户的预约
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	appts, err := h.bookingSvc.List(r.Context(), id.UserID)
	if err != nil {
		log.Printf("[booking] list failed user=%s: %v", id.UserID, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load appointments")
		return
	}
	utils.RespondJSON(w, http.StatusOK, appts)
}
