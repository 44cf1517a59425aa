package handler

import (
	"encoding/json"
	"net/http"

	apperrors "cg-backend/pkg/errors"
	"cg-backend/pkg/logger"
)

// writeJSON encodes payload with the given status
func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps an error onto the API error shape. Validation errors
// carry their structured details inline so clients see the exact
// missing field names or the valid enum values.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.NewInternalError("Internal server error", err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Debug("Request rejected")
	}

	body := map[string]interface{}{"error": appErr.Message}
	for key, value := range appErr.Details {
		body[key] = value
	}
	writeJSON(w, log, appErr.StatusCode, body)
}
