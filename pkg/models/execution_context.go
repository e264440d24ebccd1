package models

import "time"

// ExecutionState is the status of a token and, derived from it, of a step on the canvas.
type ExecutionState string

const (
	ExecutionStatePending    ExecutionState = "pending"
	ExecutionStateActive     ExecutionState = "active"
	ExecutionStateInProgress ExecutionState = "in_progress"
	ExecutionStateCompleted  ExecutionState = "completed"
	ExecutionStateFailed     ExecutionState = "failed"
	ExecutionStateWaiting    ExecutionState = "waiting"
	ExecutionStateBlocked    ExecutionState = "blocked"
)

// ExecutionStatus is the lifecycle of an execution context.
type ExecutionStatus string

const (
	ExecutionStatusPending   ExecutionStatus = "pending"
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
	ExecutionStatusCancelled ExecutionStatus = "cancelled"
)

// StepResultStatus is the outcome of one step run.
type StepResultStatus string

const (
	StepResultStatusCompleted StepResultStatus = "completed"
	StepResultStatusFailed    StepResultStatus = "failed"
)

// EditorMode is the editor's current interaction mode.
type EditorMode string

const (
	EditorModeDesign EditorMode = "design"
	EditorModeRun    EditorMode = "run"
	EditorModeDebug  EditorMode = "debug"
	EditorModeReplay EditorMode = "replay"
)

// ConnectionStatus is the state of the execution event stream.
type ConnectionStatus string

const (
	ConnectionStatusDisconnected ConnectionStatus = "disconnected"
	ConnectionStatusConnecting   ConnectionStatus = "connecting"
	ConnectionStatusConnected    ConnectionStatus = "connected"
	ConnectionStatusError        ConnectionStatus = "error"
)

// Token is one unit of control-flow position inside a running plan.
type Token struct {
	ID        string         `json:"id"`
	StepID    string         `json:"step_id"`
	Status    ExecutionState `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// ExecutionContext is the runtime state of one plan execution.
type ExecutionContext struct {
	ID          string          `json:"id"`
	PlanID      string          `json:"plan_id"`
	Status      ExecutionStatus `json:"status"`
	Data        map[string]any  `json:"data"` // Blackboard
	Tokens      []*Token        `json:"tokens"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// StepError describes a failed step run.
type StepError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// StepResult is the cached outcome of the latest run of a step.
type StepResult struct {
	StepID      string           `json:"step_id"`
	TokenID     string           `json:"token_id"`
	Status      StepResultStatus `json:"status"`
	Input       map[string]any   `json:"input,omitempty"`
	Output      map[string]any   `json:"output,omitempty"`
	Error       *StepError       `json:"error,omitempty"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt time.Time        `json:"completed_at"`
	DurationMs  int64            `json:"duration_ms"`
}

// Clone returns a copy of the token.
func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}

	clone := *t

	return &clone
}

// Clone returns a deep copy of the execution context.
func (c *ExecutionContext) Clone() *ExecutionContext {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Data = CloneMap(c.Data)
	clone.StartedAt = cloneTimePtr(c.StartedAt)
	clone.CompletedAt = cloneTimePtr(c.CompletedAt)

	clone.Tokens = make([]*Token, 0, len(c.Tokens))
	for _, token := range c.Tokens {
		clone.Tokens = append(clone.Tokens, token.Clone())
	}

	return &clone
}

// Clone returns a deep copy of the step result.
func (r *StepResult) Clone() *StepResult {
	if r == nil {
		return nil
	}

	clone := *r
	clone.Input = CloneMap(r.Input)
	clone.Output = CloneMap(r.Output)

	if r.Error != nil {
		stepErr := *r.Error
		clone.Error = &stepErr
	}

	return &clone
}
