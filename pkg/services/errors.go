// Package services runs workflow steps and keeps their execution records.
package services

import (
	"errors"
	"fmt"

	"github.com/flowcrm/aisummary/pkg/persistence"
)

var (
	ErrInvalidRequest = errors.New("invalid request")

	// ErrExecutionNotFound is returned when no record exists for an execution id.
	ErrExecutionNotFound = persistence.ErrExecutionNotFound
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsValidationError checks if an error is a request error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

func NewValidationError(op, code, message string) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     ErrInvalidRequest,
	}
}
