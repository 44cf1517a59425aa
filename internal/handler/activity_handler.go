package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cg-backend/internal/domain"
	"cg-backend/internal/service"
	apperrors "cg-backend/pkg/errors"
	"cg-backend/pkg/logger"
)

// ActivityHandler handles the activity log HTTP surface
type ActivityHandler struct {
	activities *service.ActivityService
	logger     *logger.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activities *service.ActivityService, logger *logger.Logger) *ActivityHandler {
	return &ActivityHandler{activities: activities, logger: logger}
}

// ActivitiesResponse is the list and leaderboard response shape
type ActivitiesResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Quarters []string    `json:"quarters,omitempty"`
	Source   string      `json:"source"`
}

// LogResponse acknowledges a committed submission
type LogResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Points    int    `json:"points"`
	Storage   string `json:"storage"`
	Timestamp string `json:"timestamp"`
}

// GetActivities handles GET /api/activities
func (h *ActivityHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	quarter := query.Get("quarter")

	limit := service.DefaultListLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			writeError(w, h.logger, apperrors.NewValidationError("Invalid limit parameter", nil))
			return
		}
		limit = parsed
	}

	switch {
	case query.Get("type") == "leaderboard":
		entries, source, err := h.activities.Leaderboard(ctx, quarter)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, ActivitiesResponse{
			Success: true,
			Data:    entries,
			Source:  source,
		})

	case query.Get("format") == "csv":
		doc, _, err := h.activities.ExportCSV(ctx, limit, quarter)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="activities.csv"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(doc)); err != nil {
			h.logger.WithError(err).Error("Failed to write CSV response")
		}

	default:
		result, err := h.activities.ListActivities(ctx, limit, quarter)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, ActivitiesResponse{
			Success:  true,
			Data:     result.Records,
			Quarters: result.Quarters,
			Source:   result.Source,
		})
	}
}

// LogActivity handles POST /api/log-activity
func (h *ActivityHandler) LogActivity(w http.ResponseWriter, r *http.Request) {
	var input domain.ActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	result, err := h.activities.Submit(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"name":    result.Record.Name,
		"role":    result.Record.Role,
		"points":  result.Record.Points,
		"storage": result.Storage,
	}).Info("Activity logged")

	writeJSON(w, h.logger, http.StatusOK, LogResponse{
		Success:   true,
		Message:   "Activity logged successfully!",
		Points:    result.Record.Points,
		Storage:   result.Storage,
		Timestamp: result.Record.Timestamp,
	})
}

// RegisterRoutes registers activity routes with the router
func (h *ActivityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/activities", h.GetActivities)
	r.Post("/log-activity", h.LogActivity)
}
