package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type adminDetailsHandler struct {
	responder        Responder
	logger           zerolog.Logger
	adminDetailsRepo *database.AdminDetailsRepo
}

func newAdminDetailsHandler(adminDetailsRepo *database.AdminDetailsRepo) adminDetailsHandler {
	logger := log.With().Str("handlerName", "adminDetailsHandler").Logger()

	return adminDetailsHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		adminDetailsRepo: adminDetailsRepo,
	}
}

// getAdminDetails returns the public contact record
// @Summary Get admin details
// @Tags Admin
// @Produce json
// @Success 200 {object} models.AdminDetails "Contact details"
// @Failure 404 {object} ErrorResponse "Not Found - Admin details not found"
// @Router /admin-details [get]
func (h adminDetailsHandler) getAdminDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := h.adminDetailsRepo.First(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "admin details", err))
			return
		}

		h.responder.WriteJSON(w, details)
	}
}

// updateAdminDetails updates the contact record, creating it when missing
// @Summary Update admin details
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param details body models.AdminDetails true "Contact details"
// @Success 200 {object} models.AdminDetails "Stored contact details"
// @Failure 400 {object} ErrorResponse "Bad Request - All fields are required"
// @Router /admin-details [put]
func (h adminDetailsHandler) updateAdminDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var details models.AdminDetails
		if err := decodeBody(w, r, h.logger, "admin details", &details); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if field := details.MissingField(); field != "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field))
			return
		}

		stored, inserted, err := h.adminDetailsRepo.Upsert(r.Context(), details)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "admin details", err))
			return
		}
		if inserted {
			h.logger.Info().Str("id", stored.ID.String()).Msg("Admin details were missing, inserted a new record")
		}

		h.responder.WriteJSON(w, stored)
	}
}
