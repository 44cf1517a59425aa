package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"cg-backend/internal/domain"
	"cg-backend/internal/service"
	"cg-backend/internal/service/assistant"
	apperrors "cg-backend/pkg/errors"
	"cg-backend/pkg/logger"
)

// AssistantHandler handles the scripted responder, the streaming chat
// endpoint and the podcast metadata fetch.
type AssistantHandler struct {
	scripted *assistant.Scripted
	chat     *assistant.ChatService
	podcast  *service.PodcastService
	logger   *logger.Logger
	now      func() time.Time
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(scripted *assistant.Scripted, chat *assistant.ChatService, podcast *service.PodcastService, logger *logger.Logger) *AssistantHandler {
	return &AssistantHandler{
		scripted: scripted,
		chat:     chat,
		podcast:  podcast,
		logger:   logger,
		now:      time.Now,
	}
}

// NotebookLMResponse is the scripted responder's reply shape
type NotebookLMResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// PodcastResponse wraps the episode description
type PodcastResponse struct {
	Success bool                `json:"success"`
	Data    service.PodcastInfo `json:"data"`
}

// NotebookLM handles POST /api/notebooklm
func (h *AssistantHandler) NotebookLM(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeError(w, h.logger, apperrors.NewValidationError("Message is required", nil))
		return
	}

	writeJSON(w, h.logger, http.StatusOK, NotebookLMResponse{
		Success:   true,
		Response:  h.scripted.Reply(req.Message),
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// Chat handles POST /api/chat, streaming the model output as plain text
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.chat.IsConfigured() {
		writeError(w, h.logger, apperrors.NewConfigurationError("Chat provider is not configured"))
		return
	}

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	messages := req.Messages
	if len(messages) == 0 {
		if strings.TrimSpace(req.Message) == "" {
			writeError(w, h.logger, apperrors.NewValidationError("Message is required", nil))
			return
		}
		messages = []domain.ChatMessage{{Role: "user", Content: req.Message}}
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, h.logger, apperrors.NewInternalError("Streaming unsupported", nil))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	err := h.chat.Stream(r.Context(), messages, func(chunk string) {
		if _, werr := w.Write([]byte(chunk)); werr != nil {
			return
		}
		flusher.Flush()
	})
	if err != nil {
		// headers are already out, the best we can do is log and close
		h.logger.WithError(err).Error("Chat stream failed")
	}
}

// Podcast handles GET /api/podcast
func (h *AssistantHandler) Podcast(w http.ResponseWriter, r *http.Request) {
	info, err := h.podcast.Episode(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, PodcastResponse{Success: true, Data: info})
}
