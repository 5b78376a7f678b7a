package aisummary

import (
	"context"
	"log/slog"

	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/flowcrm/aisummary/pkg/protocol"
)

// ActionFactory creates AI summary actions sharing one Summarizer.
type ActionFactory struct {
	summarizer Summarizer
	logger     *slog.Logger
}

func NewActionFactory(summarizer Summarizer, logger *slog.Logger) *ActionFactory {
	return &ActionFactory{
		summarizer: summarizer,
		logger:     logger,
	}
}

// Create returns an executor. The step settings come with each execution, so config is unused.
//
//nolint:ireturn // factory contract
func (f *ActionFactory) Create(_ context.Context, _ map[string]any) (protocol.Action, error) {
	return NewAction(f.summarizer, f.logger), nil
}

func (f *ActionFactory) Type() models.ActionType {
	return models.ActionTypeAiSummary
}

func (f *ActionFactory) Name() string {
	return "AI Summary"
}

func (f *ActionFactory) Description() string {
	return "Sends a prompt to a language model and returns the generated summary with its token usage."
}

func (f *ActionFactory) Icon() string {
	return "IconSparkles"
}

// Schema returns the JSON schema for the step settings input.
func (f *ActionFactory) Schema() map[string]any {
	modelValues := make([]string, 0, len(models.AiSummaryModelOptions))
	for _, option := range models.AiSummaryModelOptions {
		modelValues = append(modelValues, option.Value)
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "Prompt sent to the model as a single user message",
				"examples": []string{
					"Summarize the following notes in three bullet points: {{trigger.record.notes}}",
				},
			},
			"model": map[string]any{
				"type":        "string",
				"description": "Model identifier forwarded to the completion API",
				"default":     models.DefaultAiSummaryModel,
				"examples":    modelValues,
			},
			"maxTokens": map[string]any{
				"type":        "integer",
				"description": "Maximum number of tokens to generate",
				"default":     models.DefaultAiSummaryMaxTokens,
				"minimum":     1,
			},
			"temperature": map[string]any{
				"type":        "number",
				"description": "Sampling temperature",
				"default":     models.DefaultAiSummaryTemperature,
				"minimum":     0,
				"maximum":     2,
			},
		},
		"required": []string{"prompt"},
	}
}
