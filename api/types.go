package api

import "time"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler      projectHandler
	feedbackHandler     feedbackHandler
	adminDetailsHandler adminDetailsHandler
	adminAuthHandler    adminAuthHandler
	healthHandler       healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Project not found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyLoginRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type updateCredentialsRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
	NewEmail         string `json:"newEmail"`
	NewEmailPassword string `json:"newEmailPassword"`
	NewPassword      string `json:"newPassword"`
}

type adminSummary struct {
	Email string `json:"email"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
	Admin     adminSummary `json:"admin"`
}

type credentialsResponse struct {
	Email            string    `json:"email"`
	EmailPasswordSet bool      `json:"emailPasswordSet"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime,omitempty"`
}
