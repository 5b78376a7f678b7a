package aisummary

import (
	"context"
	"log/slog"

	"github.com/flowcrm/aisummary/pkg/models"
)

// Summarizer produces a summary for one AI summary input.
type Summarizer interface {
	Execute(ctx context.Context, input models.AiSummaryInput) (*models.AiSummaryResult, error)
}

// Action executes AI summary steps.
type Action struct {
	summarizer Summarizer
	logger     *slog.Logger
}

func NewAction(summarizer Summarizer, logger *slog.Logger) *Action {
	return &Action{
		summarizer: summarizer,
		logger:     logger.With("action_type", string(models.ActionTypeAiSummary)),
	}
}

// Execute looks up the current step, checks it is an AI summary step and summarizes its input.
// Errors are returned unchanged; there is no retry.
func (a *Action) Execute(ctx context.Context, input models.ActionInput) (models.ActionOutput, error) {
	step, ok := input.Steps.Find(input.CurrentStepID)
	if !ok {
		return models.ActionOutput{}, ErrStepNotFound
	}

	summaryStep, ok := models.AsAiSummaryAction(step)
	if !ok {
		a.logger.WarnContext(ctx, "Step is not an AI summary step",
			"step_id", input.CurrentStepID, "step_type", string(step.GetType()))

		return models.ActionOutput{}, ErrInvalidActionType
	}

	result, err := a.summarizer.Execute(ctx, summaryStep.Settings.Input)
	if err != nil {
		return models.ActionOutput{}, err
	}

	return models.ActionOutput{Result: result}, nil
}
