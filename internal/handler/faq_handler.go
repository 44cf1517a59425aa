package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cg-backend/internal/domain"
	"cg-backend/internal/service"
	apperrors "cg-backend/pkg/errors"
	"cg-backend/pkg/logger"
)

// FAQHandler handles the scripted FAQ conversation endpoint
type FAQHandler struct {
	faq    *service.FAQService
	logger *logger.Logger
}

// NewFAQHandler creates a new FAQ handler
func NewFAQHandler(faq *service.FAQService, logger *logger.Logger) *FAQHandler {
	return &FAQHandler{faq: faq, logger: logger}
}

// Respond handles POST /api/faq
func (h *FAQHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req domain.FAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	resp := h.faq.Respond(req.SessionID, req.Message)
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// RegisterRoutes registers FAQ routes with the router
func (h *FAQHandler) RegisterRoutes(r chi.Router) {
	r.Post("/faq", h.Respond)
}
