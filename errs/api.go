package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values
var (
	ErrForbidden    = errors.New("operation not allowed")
	ErrBadRequest   = errors.New("malformed request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
	ErrCORSBlocked  = errors.New("request blocked by CORS policy")
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
)

type ApiErr struct {
	StatusCode int
	err        error
	kind       error  // sentinel matched by errors.Is without leaking into the message
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// Message returns the user-facing message without details.
func (e *ApiErr) Message() string {
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		var apiErr *ApiErr
		if errors.As(e.Cause, &apiErr) {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// Is reports whether target is the sentinel this error was built from.
func (e *ApiErr) Is(target error) bool {
	return e.kind != nil && e.kind == target
}

// newKindErr builds an ApiErr whose message is shown verbatim to clients while
// still matching kind with errors.Is.
func newKindErr(statusCode int, kind error, message string) *ApiErr {
	return &ApiErr{StatusCode: statusCode, err: errors.New(message), kind: kind}
}

// Common error constructors with appropriate HTTP status codes
func NewNotFoundError(message string) *ApiErr {
	return newKindErr(http.StatusNotFound, ErrNotFound, message)
}

func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, err: errors.New(message)}
}

func NewInternalError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, err: errors.New(message)}
}

func NewInternalErrorWithCause(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        errors.New(message),
		Cause:      cause,
	}
}

func NewCORSError(origin string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrCORSBlocked,
		Details:    fmt.Sprintf("Origin '%s' is not allowed by CORS policy", origin),
	}
}

// Request & Input-Validation Error Constructors
func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	e := newKindErr(http.StatusBadRequest, ErrMalformedPayload, fmt.Sprintf("malformed %s payload", payloadType))
	e.Cause = cause
	e.Field = "payload"
	return e
}

// NewMissingRequiredFieldError reports the first blank field of a payload.
// The message stays the same for every field so clients can show it verbatim.
func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	e := newKindErr(http.StatusBadRequest, ErrMissingRequiredField, "All fields are required")
	e.Field = fieldName
	return e
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	e := newKindErr(http.StatusBadRequest, ErrInvalidField, fmt.Sprintf("invalid %s", fieldName))
	e.Details = reason
	e.Field = fieldName
	return e
}

func IsBadRequest(err error) bool {
	return StatusOf(err) == http.StatusBadRequest
}

func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not an ApiErr.
func StatusOf(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
