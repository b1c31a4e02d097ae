package errs

import (
	"errors"
	"net/http"
)

// Authentication & Authorization Errors
var (
	ErrMissingToken       = errors.New("missing access token")
	ErrExpiredToken       = errors.New("expired access token")
	ErrInvalidToken       = errors.New("invalid access token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Verification Code Errors
var (
	ErrNoPendingCode = errors.New("no pending verification code")
	ErrCodeExpired   = errors.New("verification code expired")
	ErrInvalidCode   = errors.New("invalid verification code")
	ErrEmailInUse    = errors.New("email already in use")
)

// Authentication & Authorization Error Constructors

// NewInvalidCredentialsError is returned both for unknown emails and for wrong
// passwords so callers cannot tell which one failed.
func NewInvalidCredentialsError() *ApiErr {
	return newKindErr(http.StatusUnauthorized, ErrInvalidCredentials, "Invalid email or password")
}

func NewMissingTokenError() *ApiErr {
	e := newKindErr(http.StatusUnauthorized, ErrMissingToken, "Missing access token")
	e.Field = "authorization"
	return e
}

func NewExpiredTokenError() *ApiErr {
	e := newKindErr(http.StatusUnauthorized, ErrExpiredToken, "Access token has expired")
	e.Field = "authorization"
	return e
}

func NewInvalidTokenError() *ApiErr {
	e := newKindErr(http.StatusUnauthorized, ErrInvalidToken, "Invalid access token")
	e.Field = "authorization"
	return e
}

// Verification Code Error Constructors
func NewNoPendingCodeError() *ApiErr {
	return newKindErr(http.StatusBadRequest, ErrNoPendingCode, "No verification code found. Please request a new code.")
}

func NewCodeExpiredError() *ApiErr {
	return newKindErr(http.StatusBadRequest, ErrCodeExpired, "Verification code has expired. Please request a new code.")
}

func NewInvalidCodeError() *ApiErr {
	return newKindErr(http.StatusBadRequest, ErrInvalidCode, "Invalid verification code")
}

func NewEmailInUseError() *ApiErr {
	e := newKindErr(http.StatusBadRequest, ErrEmailInUse, "Email already in use")
	e.Field = "newEmail"
	return e
}

// Authentication & Authorization Error Type Checkers
func IsInvalidCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsMissingTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsExpiredTokenError(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsNoPendingCodeError(err error) bool {
	return errors.Is(err, ErrNoPendingCode)
}

func IsCodeExpiredError(err error) bool {
	return errors.Is(err, ErrCodeExpired)
}

func IsInvalidCodeError(err error) bool {
	return errors.Is(err, ErrInvalidCode)
}
