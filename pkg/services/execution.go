package services

import (
	"context"
	"fmt"

	"github.com/dukex/planeditor/pkg/gateway"
	"github.com/dukex/planeditor/pkg/models"
)

const (
	advanceStatusCompleted = "completed"
	advanceStatusFailed    = "failed"
)

// StartExecution creates a backend execution of the loaded plan and switches the mirror to
// mode. Without a bound event stream the response seeds a root token at the current step.
func (e *Editor) StartExecution(ctx context.Context, mode models.EditorMode, initialContext map[string]any) (*models.ExecutionContext, error) {
	plan := e.container.Plan()
	if plan == nil {
		return nil, NewServiceError("StartExecution", "no_plan", ErrNoPlanLoaded)
	}

	if mode == "" || mode == models.EditorModeDesign {
		mode = models.EditorModeRun
	}

	if initialContext == nil {
		initialContext = map[string]any{}
	}

	e.store.SetConnectionStatus(models.ConnectionStatusConnecting)

	resp, err := e.gateway.CreateExecution(ctx, plan.ID, initialContext)
	if err != nil {
		e.store.SetConnectionStatus(models.ConnectionStatusError)

		return nil, NewServiceError("StartExecution", "create_failed", err)
	}

	startedAt := e.now()

	e.store.Reset()
	e.store.SetExecutionContext(&models.ExecutionContext{
		ID:        resp.ExecutionID,
		PlanID:    plan.ID,
		Status:    executionStatus(resp.Status),
		Data:      models.CloneMap(initialContext),
		Tokens:    []*models.Token{},
		StartedAt: &startedAt,
	})
	e.store.SetMode(mode)
	e.store.SetConnectionStatus(models.ConnectionStatusConnected)

	if !e.isStreaming() && resp.CurrentStep != nil {
		token := rootToken(resp.ExecutionID)
		e.store.HandleTokenCreated(token, resp.CurrentStep.ID)
		e.store.HandleStepStarted(resp.CurrentStep.ID, token)
	}

	e.logger.InfoContext(ctx, "Execution started", "execution_id", resp.ExecutionID, "plan_id", plan.ID, "mode", mode)

	return e.store.ExecutionContext(), nil
}

// AdvanceExecution moves the current execution one step forward.
func (e *Editor) AdvanceExecution(ctx context.Context) (*gateway.AdvanceResponse, error) {
	current := e.store.ExecutionContext()
	if current == nil {
		return nil, NewServiceError("AdvanceExecution", "no_execution", ErrNoActiveExecution)
	}

	if current.CompletedAt != nil {
		return nil, NewServiceError("AdvanceExecution", "finished", ErrExecutionFinished)
	}

	resp, err := e.gateway.AdvanceExecution(ctx, current.ID)
	if err != nil {
		return nil, NewServiceError("AdvanceExecution", "advance_failed", err)
	}

	if !e.isStreaming() {
		e.replayAdvance(current.ID, resp)
	}

	return resp, nil
}

// RefreshExecution reloads the execution status from the backend.
func (e *Editor) RefreshExecution(ctx context.Context) (*gateway.ExecutionResponse, error) {
	current := e.store.ExecutionContext()
	if current == nil {
		return nil, NewServiceError("RefreshExecution", "no_execution", ErrNoActiveExecution)
	}

	resp, err := e.gateway.GetExecution(ctx, current.ID)
	if err != nil {
		return nil, NewServiceError("RefreshExecution", "fetch_failed", err)
	}

	status := executionStatus(resp.Status)
	switch status {
	case models.ExecutionStatusCompleted, models.ExecutionStatusCancelled:
		e.store.HandleExecutionCompleted(status)
	case models.ExecutionStatusFailed:
		e.store.HandleExecutionFailed(fmt.Sprintf("execution %s failed", current.ID))
	}

	return resp, nil
}

// StopExecution drops the execution mirror and returns to design mode. The backend execution
// is left as it is.
func (e *Editor) StopExecution() {
	e.store.Reset()
}

func (e *Editor) replayAdvance(executionID string, resp *gateway.AdvanceResponse) {
	token := rootToken(executionID)

	if resp.PreviousStep != nil {
		now := e.now()
		e.store.HandleStepCompleted(resp.PreviousStep.ID, &models.StepResult{
			StepID:      resp.PreviousStep.ID,
			TokenID:     token,
			Status:      models.StepResultStatusCompleted,
			Output:      resultOutput(resp.PreviousStep.Result),
			CompletedAt: now,
		})
	}

	if resp.CurrentStep != nil {
		from := ""
		if resp.PreviousStep != nil {
			from = resp.PreviousStep.ID
		}

		e.store.HandleTokenMoved(token, from, resp.CurrentStep.ID)
		e.store.HandleStepStarted(resp.CurrentStep.ID, token)
	}

	switch resp.Status {
	case advanceStatusCompleted:
		e.store.HandleTokenCompleted(token, "")
		e.store.HandleExecutionCompleted(models.ExecutionStatusCompleted)
	case advanceStatusFailed:
		e.store.HandleTokenFailed(token, "", resp.Message)
		e.store.HandleExecutionFailed(resp.Message)
	}
}

func (e *Editor) isStreaming() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.streaming
}

func rootToken(executionID string) string {
	return executionID + ":root"
}

func executionStatus(raw string) models.ExecutionStatus {
	switch status := models.ExecutionStatus(raw); status {
	case models.ExecutionStatusPending, models.ExecutionStatusRunning, models.ExecutionStatusCompleted,
		models.ExecutionStatusFailed, models.ExecutionStatusCancelled:
		return status
	default:
		return models.ExecutionStatusRunning
	}
}

func resultOutput(result any) map[string]any {
	switch v := result.(type) {
	case nil:
		return nil
	case map[string]any:
		return models.CloneMap(v)
	default:
		return map[string]any{"result": v}
	}
}
