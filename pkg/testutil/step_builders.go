// Package testutil provides test data builders for workflow steps.
package testutil

import (
	"github.com/google/uuid"

	"github.com/flowcrm/aisummary/pkg/models"
)

// CreateTestSummaryStep creates an AI summary step with default values that can be overridden.
func CreateTestSummaryStep(overrides ...func(*models.AiSummaryAction)) *models.AiSummaryAction {
	step := models.NewAiSummaryAction(uuid.New().String(), "Test Summary")
	step.Valid = true
	step.Settings.Input.Prompt = "Summarize the test record"

	for _, override := range overrides {
		override(step)
	}

	return step
}

func WithStepID(id string) func(*models.AiSummaryAction) {
	return func(a *models.AiSummaryAction) {
		a.ID = id
	}
}

func WithPrompt(prompt string) func(*models.AiSummaryAction) {
	return func(a *models.AiSummaryAction) {
		a.Settings.Input.Prompt = prompt
	}
}

// WithModelSettings sets every optional input field.
func WithModelSettings(model string, maxTokens int, temperature float64) func(*models.AiSummaryAction) {
	return func(a *models.AiSummaryAction) {
		a.Settings.Input.Model = models.Ptr(model)
		a.Settings.Input.MaxTokens = models.Ptr(maxTokens)
		a.Settings.Input.Temperature = models.Ptr(temperature)
	}
}

// CreateTestInput targets the first step and includes every step given.
func CreateTestInput(steps ...models.WorkflowAction) models.ActionInput {
	input := models.ActionInput{
		Steps:   models.Steps(steps),
		Context: map[string]any{},
	}

	if len(steps) > 0 {
		input.CurrentStepID = steps[0].GetID()
	}

	return input
}
