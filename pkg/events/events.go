// Package events defines the execution events streamed to the editor while a plan runs.
package events

import (
	"time"

	"github.com/dukex/planeditor/pkg/models"
	"github.com/google/uuid"
)

type EventType string

// Topic carries every execution event.
const Topic = "planeditor.execution.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Token events.
	TokenCreatedEvent   EventType = "token.created"
	TokenMovedEvent     EventType = "token.moved"
	TokenCompletedEvent EventType = "token.completed"
	TokenFailedEvent    EventType = "token.failed"

	// Step events.
	StepStartedEvent   EventType = "step.started"
	StepCompletedEvent EventType = "step.completed"

	// Execution context events.
	ContextUpdatedEvent     EventType = "context.updated"
	ExecutionCompletedEvent EventType = "execution.completed"
	ExecutionFailedEvent    EventType = "execution.failed"
)

// EventTypes lists every execution event type in delivery-independent order.
var EventTypes = []EventType{
	TokenCreatedEvent,
	TokenMovedEvent,
	TokenCompletedEvent,
	TokenFailedEvent,
	StepStartedEvent,
	StepCompletedEvent,
	ContextUpdatedEvent,
	ExecutionCompletedEvent,
	ExecutionFailedEvent,
}

type BaseEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	ExecutionID string    `json:"execution_id"`
	PlanID      string    `json:"plan_id,omitempty"`
}

type TokenCreated struct {
	BaseEvent

	TokenID string `json:"token_id"`
	StepID  string `json:"step_id"`
}

func (e TokenCreated) GetType() EventType {
	return TokenCreatedEvent
}

// TokenMoved moves a token between steps. FromStepID is informational; tokens are matched by id.
type TokenMoved struct {
	BaseEvent

	TokenID    string `json:"token_id"`
	FromStepID string `json:"from_step_id"`
	ToStepID   string `json:"to_step_id"`
}

func (e TokenMoved) GetType() EventType {
	return TokenMovedEvent
}

type TokenCompleted struct {
	BaseEvent

	TokenID string `json:"token_id"`
	StepID  string `json:"step_id"`
}

func (e TokenCompleted) GetType() EventType {
	return TokenCompletedEvent
}

type TokenFailed struct {
	BaseEvent

	TokenID string `json:"token_id"`
	StepID  string `json:"step_id"`
	Error   string `json:"error"`
}

func (e TokenFailed) GetType() EventType {
	return TokenFailedEvent
}

type StepStarted struct {
	BaseEvent

	StepID  string `json:"step_id"`
	TokenID string `json:"token_id"`
}

func (e StepStarted) GetType() EventType {
	return StepStartedEvent
}

type StepCompleted struct {
	BaseEvent

	StepID string            `json:"step_id"`
	Result models.StepResult `json:"result"`
}

func (e StepCompleted) GetType() EventType {
	return StepCompletedEvent
}

// ContextUpdated replaces the blackboard wholesale.
type ContextUpdated struct {
	BaseEvent

	Data map[string]any `json:"data"`
}

func (e ContextUpdated) GetType() EventType {
	return ContextUpdatedEvent
}

type ExecutionCompleted struct {
	BaseEvent

	Status models.ExecutionStatus `json:"status"`
}

func (e ExecutionCompleted) GetType() EventType {
	return ExecutionCompletedEvent
}

type ExecutionFailed struct {
	BaseEvent

	Error string `json:"error"`
}

func (e ExecutionFailed) GetType() EventType {
	return ExecutionFailedEvent
}

// NewBaseEvent stamps a fresh event id and the current UTC time.
func NewBaseEvent(eventType EventType, executionID string) BaseEvent {
	return BaseEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		ExecutionID: executionID,
	}
}

// New allocates an empty event value for the given type, or nil for unknown types.
func New(eventType EventType) any {
	switch eventType {
	case TokenCreatedEvent:
		return &TokenCreated{}
	case TokenMovedEvent:
		return &TokenMoved{}
	case TokenCompletedEvent:
		return &TokenCompleted{}
	case TokenFailedEvent:
		return &TokenFailed{}
	case StepStartedEvent:
		return &StepStarted{}
	case StepCompletedEvent:
		return &StepCompleted{}
	case ContextUpdatedEvent:
		return &ContextUpdated{}
	case ExecutionCompletedEvent:
		return &ExecutionCompleted{}
	case ExecutionFailedEvent:
		return &ExecutionFailed{}
	default:
		return nil
	}
}
