// Package events defines the lifecycle events emitted during plan dispatch.
// Consumers of the stream read execution outcomes; they never write back.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/plexmo/plexmo/pkg/models"
)

type EventType string

// Topic carries all dispatch lifecycle events.
const Topic = "plexmo.dispatch.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	DispatchStartedEvent  EventType = "plan.dispatch.started"
	DispatchFinishedEvent EventType = "plan.dispatch.finished"

	ActionStartedEvent  EventType = "action.started"
	ActionFinishedEvent EventType = "action.finished"
	ActionFailedEvent   EventType = "action.failed"
	ActionSkippedEvent  EventType = "action.skipped"
)

type BaseEvent struct {
	ID          string         `json:"id"`
	Type        EventType      `json:"type"`
	Timestamp   time.Time      `json:"timestamp"`
	ExecutionID string         `json:"execution_id"`
	PlanName    string         `json:"plan_name"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType, executionID, planName string) BaseEvent {
	return BaseEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		ExecutionID: executionID,
		PlanName:    planName,
	}
}

type DispatchStarted struct {
	BaseEvent

	PlanType    models.PlanType `json:"plan_type"`
	ActionCount int             `json:"action_count"`
}

func (e DispatchStarted) GetType() EventType {
	return DispatchStartedEvent
}

type DispatchFinished struct {
	BaseEvent

	Status   models.PlanStatus `json:"status"`
	Error    string            `json:"error,omitempty"`
	Duration time.Duration     `json:"duration"`
}

func (e DispatchFinished) GetType() EventType {
	return DispatchFinishedEvent
}

type ActionStarted struct {
	BaseEvent

	ActionID string         `json:"action_id"`
	Action   string         `json:"action"`
	Args     map[string]any `json:"args,omitempty"`
}

func (e ActionStarted) GetType() EventType {
	return ActionStartedEvent
}

type ActionFinished struct {
	BaseEvent

	ActionID   string `json:"action_id"`
	Action     string `json:"action"`
	Result     any    `json:"result,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

func (e ActionFinished) GetType() EventType {
	return ActionFinishedEvent
}

type ActionFailed struct {
	BaseEvent

	ActionID    string   `json:"action_id"`
	Action      string   `json:"action"`
	Error       string   `json:"error"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

func (e ActionFailed) GetType() EventType {
	return ActionFailedEvent
}

type ActionSkipped struct {
	BaseEvent

	ActionID    string   `json:"action_id"`
	Action      string   `json:"action"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

func (e ActionSkipped) GetType() EventType {
	return ActionSkippedEvent
}
