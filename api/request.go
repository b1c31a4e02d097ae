package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
)

const maxRequestBody = 1 << 20

// decodeBody reads a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, payloadType string, dst any) error {
	bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read request body")
		return errs.NewMalformedPayloadError(payloadType, err)
	}
	if err := json.Unmarshal(bodyBytes, dst); err != nil {
		logger.Warn().Err(err).Int("bodySize", len(bodyBytes)).Msgf("Failed to decode %s request body", payloadType)
		return errs.NewMalformedPayloadError(payloadType, err)
	}
	return nil
}

// uuidParam parses the named URL parameter as a UUID.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a UUID")
	}
	return id, nil
}
