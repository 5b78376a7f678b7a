package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/flowcrm/aisummary/pkg/eventbus"
	"github.com/flowcrm/aisummary/pkg/events"
	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/flowcrm/aisummary/pkg/otelhelper"
	"github.com/flowcrm/aisummary/pkg/persistence"
	"github.com/flowcrm/aisummary/pkg/protocol"
)

const tracerName = "github.com/flowcrm/aisummary/pkg/services"

// ActionCreator builds the action that executes a step type.
type ActionCreator interface {
	CreateAction(ctx context.Context, actionType models.ActionType, config map[string]any) (protocol.Action, error)
}

type StepExecutionOption func(*StepExecution)

func WithClock(clock clockwork.Clock) StepExecutionOption {
	return func(s *StepExecution) {
		s.clock = clock
	}
}

func WithTracer(tracer trace.Tracer) StepExecutionOption {
	return func(s *StepExecution) {
		s.tracer = tracer
	}
}

// StepExecution runs one step, records the outcome and announces it on the event bus.
type StepExecution struct {
	actions   ActionCreator
	store     persistence.ResultStore
	publisher eventbus.EventPublisher
	logger    *slog.Logger
	clock     clockwork.Clock
	tracer    trace.Tracer
}

// NewStepExecution creates the service. publisher may be nil to skip events.
func NewStepExecution(
	actions ActionCreator,
	store persistence.ResultStore,
	publisher eventbus.EventPublisher,
	logger *slog.Logger,
	opts ...StepExecutionOption,
) *StepExecution {
	s := &StepExecution{
		actions:   actions,
		store:     store,
		publisher: publisher,
		logger:    logger.With("module", "step_execution"),
		clock:     clockwork.NewRealClock(),
		tracer:    otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Execute runs the step input.CurrentStepID with the action registered for actionType.
// The returned record is nil only when no action could be created. Errors from the action
// are returned unchanged.
func (s *StepExecution) Execute(
	ctx context.Context,
	actionType models.ActionType,
	input models.ActionInput,
) (*models.StepExecution, error) {
	if strings.TrimSpace(input.CurrentStepID) == "" {
		return nil, NewValidationError("Execute", "current_step_id_required", "currentStepId is required")
	}

	action, err := s.actions.CreateAction(ctx, actionType, nil)
	if err != nil {
		return nil, err
	}

	execution := &models.StepExecution{
		ID:         uuid.New().String(),
		StepID:     input.CurrentStepID,
		ActionType: actionType,
		StartedAt:  s.clock.Now().UTC(),
	}

	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "step.execute",
		attribute.String(otelhelper.ExecutionIDKey, execution.ID),
		attribute.String(otelhelper.StepIDKey, execution.StepID),
		attribute.String(otelhelper.ActionTypeKey, string(actionType)),
	)
	defer span.End()

	logger := s.logger.With("execution_id", execution.ID, "step_id", execution.StepID, "action_type", actionType)
	logger.DebugContext(ctx, "Executing step")

	output, execErr := action.Execute(ctx, input)

	execution.FinishedAt = s.clock.Now().UTC()
	if execErr != nil {
		otelhelper.SetError(span, execErr)

		execution.Status = models.ExecutionStatusError
		execution.Error = execErr.Error()

		logger.WarnContext(ctx, "Step execution failed", "error", execErr)
	} else {
		otelhelper.SetOK(span)

		execution.Status = models.ExecutionStatusSuccess
		execution.Result = output.Result

		logger.InfoContext(ctx, "Step execution finished", "duration", execution.FinishedAt.Sub(execution.StartedAt))
	}

	if err := s.store.SaveExecution(ctx, execution); err != nil {
		logger.ErrorContext(ctx, "Failed to store execution record", "error", err)
	}

	s.publish(ctx, logger, execution)

	return execution, execErr
}

// Get returns a stored execution record.
func (s *StepExecution) Get(ctx context.Context, id string) (*models.StepExecution, error) {
	return s.store.ExecutionByID(ctx, id)
}

// HealthCheck reports whether the result store is reachable.
func (s *StepExecution) HealthCheck(ctx context.Context) (string, bool) {
	if err := s.store.HealthCheck(ctx); err != nil {
		return "Result store is unhealthy: " + err.Error(), false
	}

	return "Result store is healthy", true
}

func (s *StepExecution) publish(ctx context.Context, logger *slog.Logger, execution *models.StepExecution) {
	if s.publisher == nil {
		return
	}

	duration := execution.FinishedAt.Sub(execution.StartedAt).Milliseconds()

	var event eventbus.Event
	if execution.Status == models.ExecutionStatusSuccess {
		event = events.StepExecutionFinished{
			BaseEvent:   events.NewBaseEvent(events.StepExecutionFinishedEvent),
			ExecutionID: execution.ID,
			StepID:      execution.StepID,
			ActionType:  execution.ActionType,
			Result:      execution.Result,
			DurationMs:  duration,
		}
	} else {
		event = events.StepExecutionFailed{
			BaseEvent:   events.NewBaseEvent(events.StepExecutionFailedEvent),
			ExecutionID: execution.ID,
			StepID:      execution.StepID,
			ActionType:  execution.ActionType,
			Error:       execution.Error,
			DurationMs:  duration,
		}
	}

	if err := s.publisher.Publish(ctx, execution.ID, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish execution event", "error", err, "event_type", event.GetType())
	}
}
