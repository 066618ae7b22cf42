package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tair/bekawave/internal/domain"
	"github.com/tair/bekawave/pkg/logger"
)

// ErrorResponse is the body of every failed entity request
type ErrorResponse struct {
	Message string `json:"message"`
}

// Response is the envelope used by operational endpoints
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Message: message})
}

// respondFailure maps err onto a status and one of the entity's fixed
// messages. Internal detail only reaches the log.
func respondFailure(w http.ResponseWriter, r *http.Request, err error, notFound, duplicate, internal string) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		respondError(w, http.StatusBadRequest, validation.Error())
	case errors.Is(err, domain.ErrUnsupportedFormat):
		respondError(w, http.StatusBadRequest, "Unsupported format")
	case domain.IsNotFound(err):
		logger.Info(r.Context()).Err(err).Msg(notFound)
		respondError(w, http.StatusNotFound, notFound)
	case domain.IsDuplicate(err):
		logger.Info(r.Context()).Err(err).Msg(duplicate)
		respondError(w, http.StatusConflict, duplicate)
	default:
		logger.Error(r.Context()).Err(err).Msg(internal)
		respondError(w, http.StatusInternalServerError, internal)
	}
}
