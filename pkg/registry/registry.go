// Package registry keeps the action factories available to the step executor.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/flowcrm/aisummary/pkg/actions/aisummary"
	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/flowcrm/aisummary/pkg/protocol"
)

type Registry struct {
	logger *slog.Logger

	mu              sync.RWMutex
	actionFactories map[models.ActionType]protocol.ActionFactory
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		logger:          log.With("module", "registry"),
		actionFactories: make(map[models.ActionType]protocol.ActionFactory),
	}
}

// RegisterAction adds a factory, replacing any factory of the same type.
func (r *Registry) RegisterAction(actionFactory protocol.ActionFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.actionFactories[actionFactory.Type()] = actionFactory

	r.logger.Debug("Registered action", "action_type", actionFactory.Type())
}

// RegisterDefaultActions registers every built-in action.
func (r *Registry) RegisterDefaultActions(summarizer aisummary.Summarizer) {
	r.RegisterAction(aisummary.NewActionFactory(summarizer, r.logger))
}

//nolint:ireturn // factory contract
func (r *Registry) Factory(actionType models.ActionType) (protocol.ActionFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.actionFactories[actionType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrActionNotRegistered, actionType)
	}

	return factory, nil
}

//nolint:ireturn // factory contract
func (r *Registry) CreateAction(ctx context.Context, actionType models.ActionType, config map[string]any) (protocol.Action, error) {
	factory, err := r.Factory(actionType)
	if err != nil {
		return nil, err
	}

	return factory.Create(ctx, config)
}

// Factories returns the registered factories ordered by type.
func (r *Registry) Factories() []protocol.ActionFactory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factories := make([]protocol.ActionFactory, 0, len(r.actionFactories))
	for _, factory := range r.actionFactories {
		factories = append(factories, factory)
	}

	sort.Slice(factories, func(i, j int) bool {
		return factories[i].Type() < factories[j].Type()
	})

	return factories
}

// ValidateConfig checks config against the schema of the factory for actionType.
func (r *Registry) ValidateConfig(actionType models.ActionType, config map[string]any) error {
	factory, err := r.Factory(actionType)
	if err != nil {
		return err
	}

	if config == nil {
		config = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(factory.Schema())
	dataLoader := gojsonschema.NewGoLoader(config)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("validating %s config: %w", actionType, err)
	}

	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}

		return &ConfigError{ActionType: string(actionType), Violations: violations}
	}

	return nil
}
