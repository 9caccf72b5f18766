package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepStart      EventType = "step_start"
	EventStepSkip       EventType = "step_skip"
	EventBindingFailure EventType = "binding_failure"
	EventServiceReturn  EventType = "service_return"
	EventLaunch         EventType = "launch"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent represents the start, skip, or completion of a workflow step.
type StepEvent struct {
	EventBase
	// Service is the registry key of the step's service, or "inline" for
	// direct references.
	Service   string        `json:"service"`
	Nonstrict bool          `json:"nonstrict,omitempty"`
	Valid     bool          `json:"valid,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// BindingEvent represents a required parameter that could not be bound.
type BindingEvent struct {
	EventBase
	Service string `json:"service"`
	Key     string `json:"key"`
}

// LaunchEvent represents a navigator resolution attempt.
type LaunchEvent struct {
	EventBase
	Root  string `json:"root"`
	Found bool   `json:"found"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStepStart      func(context.Context, *StepEvent)
	OnStepSkipped    func(context.Context, *StepEvent)
	OnBindingFailure func(context.Context, *BindingEvent)
	OnServiceReturn  func(context.Context, *StepEvent)
	OnLaunch         func(context.Context, *LaunchEvent)
}
