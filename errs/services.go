package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party Delivery Errors
var (
	ErrDeliveryFailed     = errors.New("delivery failed")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// NewDeliveryError reports that an outbound message (email, SMS) could not be handed off.
func NewDeliveryError(channel string, cause error) *ApiErr {
	e := newKindErr(http.StatusInternalServerError, ErrDeliveryFailed, "Failed to send verification code")
	e.Details = fmt.Sprintf("%s delivery failed", channel)
	e.Cause = cause
	return e
}

func NewConfigMissingError(key string) error {
	return fmt.Errorf("%w: %s is required", ErrConfigMissing, key)
}

func NewConfigInvalidError(key, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrConfigInvalid, key, reason)
}

func IsDeliveryError(err error) bool {
	return errors.Is(err, ErrDeliveryFailed)
}

func IsConfigMissingError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
