// Package eventbus publishes and consumes step execution events over watermill.
package eventbus

import (
	"context"

	"github.com/flowcrm/aisummary/pkg/events"
)

// Event is any payload carried on the bus. The type travels as message metadata.
type Event interface {
	GetType() events.EventType
}

type EventPublisher interface {
	// Publish sends event keyed by key, usually the execution id.
	Publish(ctx context.Context, key string, event Event) error
}

type EventSubscriber interface {
	// Handle registers the handler for one event type. Unhandled types are acknowledged and dropped.
	Handle(eventType events.EventType, handler EventHandler) error
	// Subscribe starts delivering messages to the registered handlers until ctx ends.
	Subscribe(ctx context.Context) error
}

// EventHandler receives a decoded event. A returned error nacks the message.
type EventHandler func(ctx context.Context, event Event) error

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
}
