package services

import (
	"errors"

	apperrors "github.com/language-gems/analytics-service/internal/errors"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrBadRequest    = errors.New("bad request")
	ErrInternalError = errors.New("internal server error")

	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAssignmentNoClass  = errors.New("assignment has no class")

	// ErrRosterUnavailable is the one propagating fetch failure: with
	// no roster there is no denominator for any completion rate.
	ErrRosterUnavailable = errors.New("class roster unavailable")
)

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if err represents a "not found" condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAssignmentNotFound)
}

// IsBadRequest checks if err represents an unprocessable request,
// such as an assignment that was never linked to a class.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrAssignmentNoClass)
}

// IsRosterUnavailable checks for the propagating roster failure.
func IsRosterUnavailable(err error) bool {
	return errors.Is(err, ErrRosterUnavailable)
}

// IsValidation checks if err represents a validation failure.
func IsValidation(err error) bool {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}
