package execution

import (
	"context"
	"fmt"

	"github.com/dukex/planeditor/pkg/eventbus"
	"github.com/dukex/planeditor/pkg/events"
)

// Bind registers one handler per execution event type on the bus, each applying the event to
// the store. Events for another execution than the current one are dropped.
func Bind(bus eventbus.EventSubscriber, store *Store) error {
	handlers := map[events.EventType]func(any){
		events.TokenCreatedEvent: func(event any) {
			e := event.(*events.TokenCreated)
			store.HandleTokenCreated(e.TokenID, e.StepID)
		},
		events.TokenMovedEvent: func(event any) {
			e := event.(*events.TokenMoved)
			store.HandleTokenMoved(e.TokenID, e.FromStepID, e.ToStepID)
		},
		events.TokenCompletedEvent: func(event any) {
			e := event.(*events.TokenCompleted)
			store.HandleTokenCompleted(e.TokenID, e.StepID)
		},
		events.TokenFailedEvent: func(event any) {
			e := event.(*events.TokenFailed)
			store.HandleTokenFailed(e.TokenID, e.StepID, e.Error)
		},
		events.StepStartedEvent: func(event any) {
			e := event.(*events.StepStarted)
			store.HandleStepStarted(e.StepID, e.TokenID)
		},
		events.StepCompletedEvent: func(event any) {
			e := event.(*events.StepCompleted)
			store.HandleStepCompleted(e.StepID, &e.Result)
		},
		events.ContextUpdatedEvent: func(event any) {
			store.HandleContextUpdated(event.(*events.ContextUpdated).Data)
		},
		events.ExecutionCompletedEvent: func(event any) {
			store.HandleExecutionCompleted(event.(*events.ExecutionCompleted).Status)
		},
		events.ExecutionFailedEvent: func(event any) {
			store.HandleExecutionFailed(event.(*events.ExecutionFailed).Error)
		},
	}

	for eventType, apply := range handlers {
		err := bus.Handle(eventType, func(ctx context.Context, event any) error {
			if !store.accepts(executionID(event)) {
				store.logger.DebugContext(ctx, "Dropping event for another execution", "event_type", eventType)

				return nil
			}

			apply(event)
			store.metrics.ExecutionEvent(string(eventType))

			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to register %s handler: %w", eventType, err)
		}
	}

	return nil
}

// accepts reports whether an event for executionID applies to the current context.
// Events without an execution id are always applied.
func (s *Store) accepts(executionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return executionID == "" || s.context == nil || s.context.ID == executionID
}

func executionID(event any) string {
	switch e := event.(type) {
	case *events.TokenCreated:
		return e.ExecutionID
	case *events.TokenMoved:
		return e.ExecutionID
	case *events.TokenCompleted:
		return e.ExecutionID
	case *events.TokenFailed:
		return e.ExecutionID
	case *events.StepStarted:
		return e.ExecutionID
	case *events.StepCompleted:
		return e.ExecutionID
	case *events.ContextUpdated:
		return e.ExecutionID
	case *events.ExecutionCompleted:
		return e.ExecutionID
	case *events.ExecutionFailed:
		return e.ExecutionID
	default:
		return ""
	}
}
