// Package redis stores step execution records in Redis with an expiry.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/flowcrm/aisummary/pkg/persistence"
)

const (
	KeyPrefix  = "aisummary:execution:"
	DefaultTTL = 24 * time.Hour
)

// ResultStore is a persistence.ResultStore holding one JSON value per execution.
type ResultStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewResultStore wraps an existing client. A ttl of zero keeps records forever.
func NewResultStore(client redis.UniversalClient, ttl time.Duration) *ResultStore {
	return &ResultStore{
		client: client,
		ttl:    ttl,
	}
}

// NewResultStoreFromURL connects using a redis:// or rediss:// URL.
func NewResultStoreFromURL(ctx context.Context, url string, ttl time.Duration) (*ResultStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	store := NewResultStore(redis.NewClient(opts), ttl)

	if err := store.HealthCheck(ctx); err != nil {
		_ = store.client.Close()

		return nil, err
	}

	return store, nil
}

func key(id string) string {
	return KeyPrefix + id
}

func (s *ResultStore) SaveExecution(ctx context.Context, execution *models.StepExecution) error {
	if err := persistence.ValidateExecution(execution); err != nil {
		return err
	}

	data, err := json.Marshal(execution)
	if err != nil {
		return persistence.NewExecutionError("SaveExecution", execution.ID, err)
	}

	if err := s.client.Set(ctx, key(execution.ID), data, s.ttl).Err(); err != nil {
		return persistence.NewExecutionError("SaveExecution", execution.ID, err)
	}

	return nil
}

func (s *ResultStore) ExecutionByID(ctx context.Context, id string) (*models.StepExecution, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, persistence.NewExecutionError("ExecutionByID", id, persistence.ErrExecutionNotFound)
	}

	if err != nil {
		return nil, persistence.NewExecutionError("ExecutionByID", id, err)
	}

	var execution models.StepExecution
	if err := json.Unmarshal(data, &execution); err != nil {
		return nil, persistence.NewExecutionError("ExecutionByID", id, err)
	}

	return &execution, nil
}

func (s *ResultStore) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	return nil
}

func (s *ResultStore) Close(_ context.Context) error {
	return s.client.Close()
}
