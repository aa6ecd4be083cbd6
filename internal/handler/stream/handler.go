package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatService "github.com/zhouzirui/mindwell/backend/internal/service/chat"
	"github.com/zhouzirui/mindwell/backend/pkg/utils"
)

// Handler renders one chat turn as Server-Sent Events.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates a new stream handler
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the streaming endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/stream/{sessionID}", h.handleStream)
}

// StreamResponse represents a streaming response chunk
type StreamResponse struct {
	Event     string `json:"event"`
	SessionID string `json:"sessionId,omitempty"`
	Content   string `json:"content,omitempty"`
	Language  string `json:"language,omitempty"`
	Topic     string `json:"topic,omitempty"`
	Subtopic  string `json:"subtopic,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	userMessage := r.URL.Query().Get("message")
	if userMessage == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}
	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	if err := h.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
		log.Printf("[stream] error handling request session=%s: %v", sessionID, err)
	}
}

// HandleStreamRequest runs one turn for sessionID and streams its phases.
// Failures after the headers are sent are reported as an error event.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return errors.New("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	if err := h.send(w, flusher, StreamResponse{Event: "start", SessionID: sessionID}); err != nil {
		return err
	}
	if err := h.send(w, flusher, StreamResponse{Event: "thinking", SessionID: sessionID}); err != nil {
		return err
	}

	result, err := h.chatSvc.Submit(ctx, sessionID, userMessage)
	if err != nil {
		h.sendError(w, flusher, err.Error())
		return fmt.Errorf("submit turn: %w", err)
	}

	if result.Accepted {
		if err := h.send(w, flusher, StreamResponse{
			Event:     "message",
			SessionID: sessionID,
			Content:   result.BotMessage.Text,
			Language:  string(result.Language),
			Topic:     string(result.Topic),
			Subtopic:  string(result.Subtopic),
		}); err != nil {
			return err
		}
	}

	if err := h.send(w, flusher, StreamResponse{Event: "end", SessionID: sessionID, Finished: true}); err != nil {
		return err
	}

	log.Printf("[stream] completed turn session=%s topic=%s", sessionID, result.Topic)
	return nil
}

func (h *Handler) send(w http.ResponseWriter, flusher http.Flusher, resp StreamResponse) error {
	return utils.SendSSEEvent(w, flusher, resp.Event, resp)
}

func (h *Handler) sendError(w http.ResponseWriter, flusher http.Flusher, message string) {
	if err := h.send(w, flusher, StreamResponse{Event: "error", Error: message}); err != nil {
		log.Printf("[stream] failed to send error event: %v", err)
	}
}
