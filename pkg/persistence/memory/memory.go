// Package memory keeps step execution records in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/flowcrm/aisummary/pkg/persistence"
)

// ResultStore is a map-backed persistence.ResultStore. Records never expire.
type ResultStore struct {
	mu         sync.RWMutex
	executions map[string]models.StepExecution
}

func NewResultStore() *ResultStore {
	return &ResultStore{executions: make(map[string]models.StepExecution)}
}

func (s *ResultStore) SaveExecution(_ context.Context, execution *models.StepExecution) error {
	if err := persistence.ValidateExecution(execution); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.executions[execution.ID] = *execution

	return nil
}

func (s *ResultStore) ExecutionByID(_ context.Context, id string) (*models.StepExecution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	execution, ok := s.executions[id]
	if !ok {
		return nil, persistence.NewExecutionError("ExecutionByID", id, persistence.ErrExecutionNotFound)
	}

	return &execution, nil
}

func (s *ResultStore) HealthCheck(_ context.Context) error {
	return nil
}

func (s *ResultStore) Close(_ context.Context) error {
	return nil
}
