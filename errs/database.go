package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrTransactionFailed         = errors.New("transaction failed")
)

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause != nil {
		if errors.Is(cause, gorm.ErrRecordNotFound) {
			e := NewNotFoundError(notFoundMessage(entity))
			e.Cause = cause
			return e
		}

		// Check for common driver errors and provide more specific messages
		errStr := strings.ToLower(cause.Error())
		switch {
		case strings.Contains(errStr, "duplicate key"), strings.Contains(errStr, "unique constraint"):
			e := newKindErr(http.StatusBadRequest, ErrUniqueConstraintViolation, fmt.Sprintf("%s already exists", entity))
			e.Details = details
			e.Cause = cause
			return e
		case strings.Contains(errStr, "connection refused"), strings.Contains(errStr, "unable to open database"):
			e := newKindErr(http.StatusInternalServerError, ErrDatabaseConnection, "Unable to connect to database")
			e.Cause = cause
			return e
		}
	}

	// Generic database error
	e := newKindErr(http.StatusInternalServerError, ErrDatabaseQuery, "Internal Server Error")
	e.Details = details
	e.Cause = cause
	return e
}

// NewTransactionFailedError wraps a failed multi-write unit; every write in it was rolled back.
func NewTransactionFailedError(operation string, cause error) *ApiErr {
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}
	e := newKindErr(http.StatusInternalServerError, ErrTransactionFailed, "Internal Server Error")
	e.Details = fmt.Sprintf("Transaction failed during %s", operation)
	e.Cause = cause
	e.Field = "transaction"
	return e
}

// notFoundMessage turns "admin details" into "Admin details not found".
func notFoundMessage(entity string) string {
	if entity == "" {
		return "Not found"
	}
	return strings.ToUpper(entity[:1]) + entity[1:] + " not found"
}

// Database & Storage Error Type Checkers
func IsUniqueConstraintViolationError(err error) bool {
	return errors.Is(err, ErrUniqueConstraintViolation)
}

func IsTransactionFailedError(err error) bool {
	return errors.Is(err, ErrTransactionFailed)
}
