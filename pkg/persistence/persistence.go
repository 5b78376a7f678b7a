// Package persistence stores the records of finished step executions.
package persistence

import (
	"context"

	"github.com/flowcrm/aisummary/pkg/models"
)

type ResultStore interface {
	SaveExecution(ctx context.Context, execution *models.StepExecution) error
	ExecutionByID(ctx context.Context, id string) (*models.StepExecution, error)
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
