// Package web provides the HTTP handlers and request types of the step execution API.
package web

import "github.com/flowcrm/aisummary/pkg/models"

// ExecuteStepRequest is the body of POST /actions/:type/execute. An empty or
// missing step list is accepted; the executor reports the current step as not found.
type ExecuteStepRequest struct {
	CurrentStepID string         `json:"currentStepId" validate:"required"`
	Steps         models.Steps   `json:"steps"`
	Context       map[string]any `json:"context,omitempty"`
}

func (r ExecuteStepRequest) ActionInput() models.ActionInput {
	return models.ActionInput{
		CurrentStepID: r.CurrentStepID,
		Steps:         r.Steps,
		Context:       r.Context,
	}
}

type ExecuteStepResponse struct {
	ExecutionID string `json:"executionId"`
	Result      any    `json:"result"`
}

// ActionResponse describes a registered action type.
type ActionResponse struct {
	Type        models.ActionType `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Schema      map[string]any    `json:"schema"`
}
