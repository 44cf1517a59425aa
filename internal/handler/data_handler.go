package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cg-backend/internal/service"
	"cg-backend/pkg/logger"
)

// DataHandler handles the admin data-management surface
type DataHandler struct {
	activities *service.ActivityService
	logger     *logger.Logger
}

// NewDataHandler creates a new data handler
func NewDataHandler(activities *service.ActivityService, logger *logger.Logger) *DataHandler {
	return &DataHandler{activities: activities, logger: logger}
}

type clearRequest struct {
	Quarter string `json:"quarter"`
}

// ClearResponse acknowledges a wipe
type ClearResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatsResponse reports aggregate counters for the admin view
type StatsResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Source  string      `json:"source"`
}

// ClearData handles DELETE /api/clear-data?quarter= and POST /api/clear-data
func (h *DataHandler) ClearData(w http.ResponseWriter, r *http.Request) {
	quarter := r.URL.Query().Get("quarter")
	if r.Method == http.MethodPost && r.Body != nil {
		var req clearRequest
		// the POST body is optional, a missing or empty one means clear everything
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Quarter != "" {
			quarter = req.Quarter
		}
	}

	if err := h.activities.ClearData(r.Context(), quarter); err != nil {
		writeError(w, h.logger, err)
		return
	}

	message := "All activity data cleared"
	if quarter != "" {
		message = "Cleared activity data for " + quarter
	}
	h.logger.WithField("quarter", quarter).Info("Activity data cleared")
	writeJSON(w, h.logger, http.StatusOK, ClearResponse{Success: true, Message: message})
}

// GetStats handles GET /api/clear-data, the admin stats view
func (h *DataHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, source, err := h.activities.Stats(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, StatsResponse{Success: true, Data: stats, Source: source})
}

// RegisterRoutes registers data management routes with the router
func (h *DataHandler) RegisterRoutes(r chi.Router) {
	r.Delete("/clear-data", h.ClearData)
	r.Post("/clear-data", h.ClearData)
	r.Get("/clear-data", h.GetStats)
}
