// Package events defines the notifications published when a step execution ends.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/flowcrm/aisummary/pkg/models"
)

type EventType string

// Topic carries every step execution event.
const Topic = "aisummary.step.executions"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	StepExecutionFinishedEvent EventType = "step.execution.finished"
	StepExecutionFailedEvent   EventType = "step.execution.failed"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}

type StepExecutionFinished struct {
	BaseEvent

	ExecutionID string            `json:"execution_id"`
	StepID      string            `json:"step_id"`
	ActionType  models.ActionType `json:"action_type"`
	Result      any               `json:"result,omitempty"`
	DurationMs  int64             `json:"duration_ms"`
}

func (e StepExecutionFinished) GetType() EventType {
	return StepExecutionFinishedEvent
}

type StepExecutionFailed struct {
	BaseEvent

	ExecutionID string            `json:"execution_id"`
	StepID      string            `json:"step_id"`
	ActionType  models.ActionType `json:"action_type"`
	Error       string            `json:"error"`
	DurationMs  int64             `json:"duration_ms"`
}

func (e StepExecutionFailed) GetType() EventType {
	return StepExecutionFailedEvent
}
