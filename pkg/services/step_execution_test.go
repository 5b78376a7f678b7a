package services_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/flowcrm/aisummary/pkg/actions/aisummary"
	"github.com/flowcrm/aisummary/pkg/events"
	"github.com/flowcrm/aisummary/pkg/mocks"
	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/flowcrm/aisummary/pkg/persistence"
	"github.com/flowcrm/aisummary/pkg/persistence/memory"
	"github.com/flowcrm/aisummary/pkg/registry"
	"github.com/flowcrm/aisummary/pkg/services"
	"github.com/flowcrm/aisummary/pkg/testutil"
)

type fixture struct {
	service    *services.StepExecution
	summarizer *mocks.MockSummarizer
	publisher  *mocks.MockEventPublisher
	store      *memory.ResultStore
	clock      *clockwork.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	summarizer := &mocks.MockSummarizer{}
	publisher := &mocks.MockEventPublisher{}
	store := memory.NewResultStore()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	reg := registry.NewRegistry(slog.Default())
	reg.RegisterDefaultActions(summarizer)

	t.Cleanup(func() {
		summarizer.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	return &fixture{
		service:    services.NewStepExecution(reg, store, publisher, slog.Default(), services.WithClock(clock)),
		summarizer: summarizer,
		publisher:  publisher,
		store:      store,
		clock:      clock,
	}
}

func summaryInput(prompt string) (models.ActionInput, *models.AiSummaryAction) {
	step := testutil.CreateTestSummaryStep(testutil.WithStepID("step-1"), testutil.WithPrompt(prompt))

	return testutil.CreateTestInput(step), step
}

func TestStepExecution_Execute_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input, step := summaryInput("Summarize the meeting")

	result := &models.AiSummaryResult{Summary: "Short.", Model: "gpt-3.5-turbo", TokensUsed: 21}
	f.summarizer.On("Execute", mock.Anything, step.Settings.Input).Return(result, nil).Once()
	f.publisher.On("Publish", mock.Anything, mock.AnythingOfType("string"),
		mock.MatchedBy(func(e events.StepExecutionFinished) bool {
			return e.StepID == "step-1" && e.Result == result && e.Type == events.StepExecutionFinishedEvent
		})).Return(nil).Once()

	execution, err := f.service.Execute(ctx, models.ActionTypeAiSummary, input)
	require.NoError(t, err)

	assert.NotEmpty(t, execution.ID)
	assert.Equal(t, models.ExecutionStatusSuccess, execution.Status)
	assert.Equal(t, result, execution.Result)
	assert.Equal(t, f.clock.Now().UTC(), execution.StartedAt)

	stored, err := f.service.Get(ctx, execution.ID)
	require.NoError(t, err)
	assert.Equal(t, execution.ID, stored.ID)
	assert.Equal(t, models.ExecutionStatusSuccess, stored.Status)
}

func TestStepExecution_Execute_ActionErrorReturnedUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input, step := summaryInput("Summarize the meeting")

	upstream := errors.Join(aisummary.ErrUpstream, errors.New("rate limited"))
	f.summarizer.On("Execute", mock.Anything, step.Settings.Input).Return(nil, upstream).Once()
	f.publisher.On("Publish", mock.Anything, mock.AnythingOfType("string"),
		mock.MatchedBy(func(e events.StepExecutionFailed) bool {
			return e.StepID == "step-1" && e.Error == upstream.Error()
		})).Return(nil).Once()

	execution, err := f.service.Execute(ctx, models.ActionTypeAiSummary, input)

	assert.Same(t, upstream, err)
	require.NotNil(t, execution)
	assert.Equal(t, models.ExecutionStatusError, execution.Status)
	assert.Nil(t, execution.Result)

	stored, getErr := f.service.Get(ctx, execution.ID)
	require.NoError(t, getErr)
	assert.Equal(t, upstream.Error(), stored.Error)
}

func TestStepExecution_Execute_StepNotFound(t *testing.T) {
	f := newFixture(t)
	input, _ := summaryInput("Summarize")
	input.CurrentStepID = "other"

	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.AnythingOfType("events.StepExecutionFailed")).
		Return(nil).Once()

	_, err := f.service.Execute(context.Background(), models.ActionTypeAiSummary, input)

	assert.ErrorIs(t, err, aisummary.ErrStepNotFound)
}

func TestStepExecution_Execute_PublishFailureDoesNotFailStep(t *testing.T) {
	f := newFixture(t)
	input, step := summaryInput("Summarize")

	f.summarizer.On("Execute", mock.Anything, step.Settings.Input).
		Return(&models.AiSummaryResult{Summary: "ok"}, nil).Once()
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable")).Once()

	execution, err := f.service.Execute(context.Background(), models.ActionTypeAiSummary, input)

	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusSuccess, execution.Status)
}

func TestStepExecution_Execute_UnregisteredType(t *testing.T) {
	f := newFixture(t)
	input, _ := summaryInput("Summarize")

	execution, err := f.service.Execute(context.Background(), models.ActionTypeCode, input)

	assert.Nil(t, execution)
	assert.True(t, registry.IsActionNotRegistered(err))
}

func TestStepExecution_Execute_MissingCurrentStep(t *testing.T) {
	f := newFixture(t)
	input, _ := summaryInput("Summarize")
	input.CurrentStepID = " "

	_, err := f.service.Execute(context.Background(), models.ActionTypeAiSummary, input)

	assert.True(t, services.IsValidationError(err))
}

func TestStepExecution_Get_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Get(context.Background(), "missing")

	assert.True(t, persistence.IsExecutionNotFound(err))
	assert.ErrorIs(t, err, services.ErrExecutionNotFound)
}

func TestStepExecution_WithoutPublisher(t *testing.T) {
	summarizer := &mocks.MockSummarizer{}
	reg := registry.NewRegistry(slog.Default())
	reg.RegisterDefaultActions(summarizer)

	service := services.NewStepExecution(reg, memory.NewResultStore(), nil, slog.Default())
	input, step := summaryInput("Summarize")

	summarizer.On("Execute", mock.Anything, step.Settings.Input).
		Return(&models.AiSummaryResult{Summary: "ok"}, nil).Once()

	_, err := service.Execute(context.Background(), models.ActionTypeAiSummary, input)

	require.NoError(t, err)

	message, healthy := service.HealthCheck(context.Background())
	assert.True(t, healthy)
	assert.Equal(t, "Result store is healthy", message)
}
