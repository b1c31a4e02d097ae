package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          pinger
	startupTime time.Time
}

func newHealthHandler(db pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

// liveness reports that the process is serving requests
func (h healthHandler) liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, healthResponse{
			Status: "ok",
			Uptime: time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}

// readiness reports whether the database answers
func (h healthHandler) readiness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn().Err(err).Msg("Readiness check failed")
			e := errs.NewApiErr(http.StatusServiceUnavailable, "Database unavailable")
			e.Cause = err
			h.responder.WriteError(w, e)
			return
		}
		h.responder.WriteJSON(w, healthResponse{Status: "ready"})
	}
}
