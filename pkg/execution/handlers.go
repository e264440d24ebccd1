package execution

import (
	"github.com/dukex/planeditor/pkg/models"
)

// Event handlers. Each one is a no-op while no execution context is set, except
// HandleStepCompleted which always caches the result.

// HandleTokenCreated appends a pending token at the step.
func (s *Store) HandleTokenCreated(tokenID, stepID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addToken(&models.Token{
		ID:        tokenID,
		StepID:    stepID,
		Status:    models.ExecutionStatePending,
		CreatedAt: s.now(),
	})
}

// HandleTokenMoved moves the token to toStepID and marks it active. Tokens are matched by id,
// so fromStepID is not consulted.
func (s *Store) HandleTokenMoved(tokenID, _, toStepID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateToken(tokenID, models.Token{StepID: toStepID, Status: models.ExecutionStateActive})
}

func (s *Store) HandleTokenCompleted(tokenID, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateToken(tokenID, models.Token{Status: models.ExecutionStateCompleted})
}

func (s *Store) HandleTokenFailed(tokenID, stepID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateToken(tokenID, models.Token{Status: models.ExecutionStateFailed})
	s.logger.Warn("Token failed", "token_id", tokenID, "step_id", stepID, "error", message)
}

// HandleStepStarted marks every token at the step in progress.
func (s *Store) HandleStepStarted(stepID, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, token := range s.stepTokens(stepID) {
		token.Status = models.ExecutionStateInProgress
	}
}

// HandleStepCompleted caches the result and marks every token at the step completed.
func (s *Store) HandleStepCompleted(stepID string, result *models.StepResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[stepID] = result.Clone()

	for _, token := range s.stepTokens(stepID) {
		token.Status = models.ExecutionStateCompleted
	}
}

// HandleContextUpdated replaces the blackboard wholesale.
func (s *Store) HandleContextUpdated(data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.context == nil {
		return
	}

	s.context.Data = models.CloneMap(data)
}

// HandleExecutionCompleted sets the final status and stamps the completion time.
func (s *Store) HandleExecutionCompleted(status models.ExecutionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.context == nil {
		return
	}

	now := s.now()
	s.context.Status = status
	s.context.CompletedAt = &now
}

// HandleExecutionFailed marks the execution failed and stamps the completion time.
func (s *Store) HandleExecutionFailed(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.context == nil {
		return
	}

	now := s.now()
	s.context.Status = models.ExecutionStatusFailed
	s.context.CompletedAt = &now

	s.logger.Warn("Execution failed", "execution_id", s.context.ID, "error", message)
}
