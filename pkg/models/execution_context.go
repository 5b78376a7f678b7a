package models

import "time"

// ActionInput is what the engine hands to an action executor.
type ActionInput struct {
	CurrentStepID string         `json:"currentStepId" validate:"required"`
	Steps         Steps          `json:"steps"`
	Context       map[string]any `json:"context,omitempty"`
}

// ActionOutput is what an action executor hands back to the engine.
type ActionOutput struct {
	Result any `json:"result,omitempty"`
}

// ExecutionStatus is the outcome of one step execution.
type ExecutionStatus string

const (
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusError   ExecutionStatus = "error"
)

// StepExecution records one execution of a step.
type StepExecution struct {
	ID         string          `json:"id"`
	StepID     string          `json:"step_id"`
	ActionType ActionType      `json:"action_type"`
	Status     ExecutionStatus `json:"status"`
	Result     any             `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}
