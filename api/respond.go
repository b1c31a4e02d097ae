package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON writes data with a 200 status.
func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	const maxResponseSize = 10 * 1024 * 1024 // 10MB
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large, truncating")

		status = http.StatusRequestEntityTooLarge
		jsonData, _ = json.Marshal(map[string]interface{}{
			"error":        "Response too large",
			"status":       "error",
			"maxSizeMB":    maxResponseSize / (1024 * 1024),
			"actualSizeMB": len(jsonData) / (1024 * 1024),
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteMessage writes {"message": msg} with a 200 status.
func (r Responder) WriteMessage(w http.ResponseWriter, msg string) {
	r.WriteJSON(w, messageResponse{Message: msg})
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSONStatus(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal Server Error",
			Status: "error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().
			Int("status", apiErr.StatusCode).
			Str("error", apiErr.GetFullError()).
			Msg("request failed")
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, ErrorResponse{
		Error:   apiErr.Message(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	})
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
