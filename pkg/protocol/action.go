// Package protocol defines the interfaces and contracts for pluggable workflow actions.
package protocol

import (
	"context"

	"github.com/flowcrm/aisummary/pkg/models"
)

// Action executes one kind of workflow step.
type Action interface {
	// Execute runs the step identified by input.CurrentStepID.
	Execute(ctx context.Context, input models.ActionInput) (models.ActionOutput, error)
}

// ActionFactory creates actions and provides metadata about the action type.
type ActionFactory interface {
	// Create creates a new action instance with the given configuration
	Create(ctx context.Context, config map[string]any) (Action, error)

	// Type returns the step discriminant handled by the created actions
	Type() models.ActionType

	// Name returns the human-readable name for this action type
	Name() string

	// Description returns a description of what this action does
	Description() string

	// Icon returns the icon shown for this action in the step picker
	Icon() string

	// Schema returns the JSON schema for the step settings input
	Schema() map[string]any
}
