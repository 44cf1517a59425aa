package handler

import (
	"net/http"
	"time"

	"cg-backend/internal/container"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	container *container.Container
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container) *HealthHandler {
	return &HealthHandler{container: container}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string          `json:"status"`
	Timestamp    time.Time       `json:"timestamp"`
	Version      string          `json:"version"`
	Service      string          `json:"service"`
	Integrations map[string]bool `json:"integrations"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	cfg := h.container.GetConfig()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Service:   "cg-backend",
		Integrations: map[string]bool{
			"google_sheets": cfg.HasSheets(),
			"slack":         cfg.HasSlack(),
			"chat":          cfg.HuggingFaceAPIKey != "",
			"redis":         h.container.HasRedis(),
		},
	}

	writeJSON(w, logger, http.StatusOK, response)
}
