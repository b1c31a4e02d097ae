package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type adminAuthHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *auth.Service
}

func newAdminAuthHandler(service *auth.Service) adminAuthHandler {
	logger := log.With().Str("handlerName", "adminAuthHandler").Logger()

	return adminAuthHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// login checks the email and mails a verification code
// @Summary Start admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} messageResponse
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Failure 500 {object} ErrorResponse "Failed to send verification code"
// @Router /admin-login [post]
func (h adminAuthHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeBody(w, r, h.logger, "login", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.RequestLoginCode(r.Context(), req.Email, req.Password); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteMessage(w, "Verification code sent to your email")
	}
}

// verifyLogin exchanges a verification code for a session token
// @Summary Finish admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body verifyLoginRequest true "Verification code"
// @Success 200 {object} loginResponse
// @Failure 400 {object} ErrorResponse "Missing, expired or invalid code"
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Router /verify-admin-login [post]
func (h adminAuthHandler) verifyLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyLoginRequest
		if err := decodeBody(w, r, h.logger, "verification", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		session, err := h.service.VerifyLogin(r.Context(), req.Email, req.Code)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, loginResponse{
			Token:     session.Token,
			ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
			Admin:     adminSummary{Email: session.Email},
		})
	}
}

// sendUpdateVerification mails a credential update code to the configured admin email
// @Summary Request credential update code
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} messageResponse
// @Router /send-update-verification [post]
func (h adminAuthHandler) sendUpdateVerification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Any email in the body is ignored: the code always goes to the stored admin address.
		sentTo, err := h.service.RequestUpdateCode(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if claims, ok := ctxGetClaims(r.Context()); ok {
			h.logger.Info().Str("requestedBy", claims.Email).Str("sentTo", sentTo).Msg("Credential update code requested")
		}

		h.responder.WriteMessage(w, "Verification code sent to your email")
	}
}

// updateCredentials replaces the admin credentials after checking the code
// @Summary Update admin credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateCredentialsRequest true "New credentials"
// @Success 200 {object} messageResponse
// @Failure 400 {object} ErrorResponse "Missing, expired or invalid code, or email already in use"
// @Router /update-admin-credentials [post]
func (h adminAuthHandler) updateCredentials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateCredentialsRequest
		if err := decodeBody(w, r, h.logger, "credentials", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		err := h.service.UpdateCredentials(r.Context(), auth.CredentialUpdate{
			Email:            req.Email,
			VerificationCode: req.VerificationCode,
			NewEmail:         req.NewEmail,
			NewEmailPassword: req.NewEmailPassword,
			NewPassword:      req.NewPassword,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if claims, ok := ctxGetClaims(r.Context()); ok {
			h.logger.Info().Str("updatedBy", claims.Email).Msg("Admin credentials changed")
		}
		h.responder.WriteMessage(w, "Admin credentials updated successfully")
	}
}

// getAdminEmail returns the configured admin login email
// @Summary Get admin email
// @Tags Auth
// @Produce json
// @Success 200 {object} adminSummary
// @Failure 404 {object} ErrorResponse "Admin credentials not found"
// @Router /admin-email [get]
func (h adminAuthHandler) getAdminEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, err := h.service.AdminEmail(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, adminSummary{Email: email})
	}
}

// getAdminCredentials returns the stored login email. Secrets are never returned.
// @Summary Get admin credentials
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} credentialsResponse
// @Router /admin-credentials [get]
func (h adminAuthHandler) getAdminCredentials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := h.service.Credentials(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, credentialsResponse{
			Email:            summary.Email,
			EmailPasswordSet: summary.EmailPasswordSet,
			UpdatedAt:        summary.UpdatedAt,
		})
	}
}
