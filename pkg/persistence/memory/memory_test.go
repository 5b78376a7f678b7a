package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/flowcrm/aisummary/pkg/persistence"
)

func TestResultStore_SaveAndGet(t *testing.T) {
	store := NewResultStore()
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	execution := &models.StepExecution{
		ID:         "exec-1",
		StepID:     "step-1",
		ActionType: models.ActionTypeAiSummary,
		Status:     models.ExecutionStatusSuccess,
		Result:     &models.AiSummaryResult{Summary: "short", Model: "gpt-4", TokensUsed: 3},
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}

	require.NoError(t, store.SaveExecution(ctx, execution))

	execution.Status = models.ExecutionStatusError

	got, err := store.ExecutionByID(ctx, "exec-1")
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusSuccess, got.Status, "stored record is a copy")
	assert.Equal(t, "step-1", got.StepID)
	assert.NoError(t, store.HealthCheck(ctx))
	assert.NoError(t, store.Close(ctx))
}

func TestResultStore_NotFound(t *testing.T) {
	store := NewResultStore()

	_, err := store.ExecutionByID(context.Background(), "missing")

	assert.True(t, persistence.IsExecutionNotFound(err))
}

func TestResultStore_RejectsRecordWithoutID(t *testing.T) {
	store := NewResultStore()

	err := store.SaveExecution(context.Background(), &models.StepExecution{})

	assert.ErrorIs(t, err, persistence.ErrInvalidExecution)
}
