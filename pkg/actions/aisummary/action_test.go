package aisummary_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/flowcrm/aisummary/pkg/actions/aisummary"
	"github.com/flowcrm/aisummary/pkg/mocks"
	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func summaryStep(id, prompt string) *models.AiSummaryAction {
	step := models.NewAiSummaryAction(id, "Summarize")
	step.Settings.Input.Prompt = prompt

	return step
}

func TestAction_Execute_StepNotFound(t *testing.T) {
	summarizer := &mocks.MockSummarizer{}
	action := aisummary.NewAction(summarizer, testLogger())

	tests := []struct {
		name  string
		steps models.Steps
	}{
		{name: "empty list", steps: nil},
		{name: "other ids", steps: models.Steps{summaryStep("a", "p"), summaryStep("b", "p")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := action.Execute(context.Background(), models.ActionInput{
				CurrentStepID: "missing",
				Steps:         tt.steps,
			})
			require.ErrorIs(t, err, aisummary.ErrStepNotFound)
			assert.True(t, aisummary.IsStepNotFound(err))
			assert.Nil(t, output.Result)
		})
	}

	summarizer.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAction_Execute_InvalidType(t *testing.T) {
	summarizer := &mocks.MockSummarizer{}
	action := aisummary.NewAction(summarizer, testLogger())

	steps := models.Steps{
		&models.GenericAction{BaseAction: models.BaseAction{ID: "code"}, Kind: models.ActionTypeCode},
		&models.AiAgentAction{BaseAction: models.BaseAction{ID: "agent"}},
	}

	for _, id := range []string{"code", "agent"} {
		_, err := action.Execute(context.Background(), models.ActionInput{CurrentStepID: id, Steps: steps})
		require.ErrorIs(t, err, aisummary.ErrInvalidActionType)
		assert.True(t, aisummary.IsInvalidActionType(err))
	}

	summarizer.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAction_Execute_DelegatesCurrentStepInput(t *testing.T) {
	summarizer := &mocks.MockSummarizer{}
	action := aisummary.NewAction(summarizer, testLogger())

	target := summaryStep("target", "Summarize the opportunity")
	target.Settings.Input.Model = models.Ptr("gpt-4")

	expected := &models.AiSummaryResult{Summary: "done", Model: "gpt-4", TokensUsed: 42}
	summarizer.On("Execute", mock.Anything, target.Settings.Input).Return(expected, nil).Once()

	output, err := action.Execute(context.Background(), models.ActionInput{
		CurrentStepID: "target",
		Steps:         models.Steps{summaryStep("other", "ignored"), target},
		Context:       map[string]any{"trigger": map[string]any{"id": "rec-1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, expected, output.Result)

	summarizer.AssertExpectations(t)
}

func TestAction_Execute_PropagatesErrorsUnchanged(t *testing.T) {
	for _, expected := range []error{
		aisummary.ErrNotConfigured,
		aisummary.ErrPromptRequired,
		errors.New("boom"),
	} {
		summarizer := &mocks.MockSummarizer{}
		summarizer.On("Execute", mock.Anything, mock.Anything).Return(nil, expected).Once()

		action := aisummary.NewAction(summarizer, testLogger())

		_, err := action.Execute(context.Background(), models.ActionInput{
			CurrentStepID: "s",
			Steps:         models.Steps{summaryStep("s", "p")},
		})
		assert.Same(t, expected, err)
		summarizer.AssertNumberOfCalls(t, "Execute", 1)
	}
}
