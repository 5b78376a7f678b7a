package persistence

import (
	"errors"
	"fmt"

	"github.com/flowcrm/aisummary/pkg/models"
)

var (
	ErrExecutionNotFound = errors.New("execution not found")
	ErrInvalidExecution  = errors.New("invalid execution record")
)

// ExecutionError wraps a store failure with the operation and execution involved.
type ExecutionError struct {
	Op          string
	ExecutionID string
	Err         error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s operation failed for execution %s: %v", e.Op, e.ExecutionID, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func NewExecutionError(op, executionID string, err error) *ExecutionError {
	return &ExecutionError{
		Op:          op,
		ExecutionID: executionID,
		Err:         err,
	}
}

func IsExecutionNotFound(err error) bool {
	return errors.Is(err, ErrExecutionNotFound)
}

// ValidateExecution rejects records that cannot be keyed.
func ValidateExecution(execution *models.StepExecution) error {
	if execution == nil || execution.ID == "" {
		return ErrInvalidExecution
	}

	return nil
}
