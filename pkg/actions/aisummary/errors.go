package aisummary

import (
	"errors"
	"fmt"
)

var (
	// ErrStepNotFound indicates the current step id is absent from the step list.
	ErrStepNotFound = errors.New("step not found")

	// ErrInvalidActionType indicates the current step is not an AI summary step.
	ErrInvalidActionType = errors.New("invalid action type for AI Summary workflow action")

	// ErrNotConfigured indicates no completion API credential was available at construction.
	ErrNotConfigured = errors.New("OpenAI API key is not configured. Please set " + APIKeyEnvVar + " environment variable")

	// ErrValidation indicates the step input cannot be sent.
	ErrValidation = errors.New("validation error")

	// ErrPromptRequired indicates an empty or whitespace-only prompt.
	ErrPromptRequired = fmt.Errorf("%w: prompt is required for AI Summary action", ErrValidation)

	// ErrUpstream wraps any failure of the completion API call.
	ErrUpstream = errors.New("OpenAI API error")
)

func IsStepNotFound(err error) bool {
	return errors.Is(err, ErrStepNotFound)
}

func IsInvalidActionType(err error) bool {
	return errors.Is(err, ErrInvalidActionType)
}

func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstream)
}
