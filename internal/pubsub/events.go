// Package pubsub provides a generic publish/subscribe event system used to
// carry device samples, control events, console signals and log entries
// between goroutines and the Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	SampledEvent       EventType = "sampled"        // raw input-device sample
	CommandEvent       EventType = "command"        // control event bound for an actuator
	SignalEvent        EventType = "signal"         // console outward signal
	LoggedEvent        EventType = "logged"         // log line
	DeviceAddedEvent   EventType = "device_added"   // device node appeared
	DeviceRemovedEvent EventType = "device_removed" // device node disappeared
)

// Event represents a published event with a typed payload.
// Seq is assigned by the broker and increases monotonically per broker.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Seq       uint64
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
