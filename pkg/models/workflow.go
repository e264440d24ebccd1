// Package models defines the plan, graph and execution models shared by the editor components.
package models

import (
	"fmt"
	"time"
)

// StepType identifies the behavioural kind of a step.
type StepType string

const (
	StepTypeAction     StepType = "action"
	StepTypeDecision   StepType = "decision"
	StepTypeWait       StepType = "wait"
	StepTypeSubprocess StepType = "subprocess"
	StepTypeJoin       StepType = "join"
	StepTypeTerminal   StepType = "terminal"
)

// TransitionType identifies how control flows along a transition.
type TransitionType string

const (
	TransitionTypeStandard     TransitionType = "standard"
	TransitionTypeParallelFork TransitionType = "parallel_fork"
	TransitionTypeDefault      TransitionType = "default"
)

// Position is a canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Plan is the backend-owned workflow definition and the root aggregate of the editor.
type Plan struct {
	ID          string        `json:"id"                      validate:"required"`
	Name        string        `json:"name"                    validate:"required"`
	Description string        `json:"description,omitempty"`
	StartStepID string        `json:"start_step_id,omitempty"`
	Steps       []*Step       `json:"steps"                   validate:"dive"`
	Transitions []*Transition `json:"transitions"             validate:"dive"`
	Conditions  []*Condition  `json:"conditions"              validate:"dive"`
	Commands    []*Command    `json:"commands"                validate:"dive"`
	Version     *int          `json:"version,omitempty"`
	CreatedAt   *time.Time    `json:"created_at,omitempty"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty"`
}

// Step is one node of a plan graph.
type Step struct {
	ID          string         `json:"id"                    validate:"required"`
	PlanID      string         `json:"plan_id"`
	StepType    StepType       `json:"step_type"             validate:"required,oneof=action decision wait subprocess join terminal"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	CommandID   string         `json:"command_id,omitempty"` // Only meaningful for action steps
	Config      map[string]any `json:"config,omitempty"`
	Position    Position       `json:"position"`
}

// Transition is a directed edge between two steps of the same plan.
type Transition struct {
	ID             string         `json:"id"                     validate:"required"`
	PlanID         string         `json:"plan_id"`
	FromStepID     string         `json:"from_step_id"           validate:"required"`
	ToStepID       string         `json:"to_step_id"             validate:"required"`
	TransitionType TransitionType `json:"transition_type"        validate:"required,oneof=standard parallel_fork default"`
	ConditionID    string         `json:"condition_id,omitempty"` // Only meaningful for decision-originated transitions
}

// Command is a user-configured instance of a CommandType.
type Command struct {
	ID            string         `json:"id"              validate:"required"`
	CommandTypeID string         `json:"command_type_id" validate:"required"`
	Parameters    map[string]any `json:"parameters"`
}

// Condition guards a transition. The expression language is owned by the execution backend.
type Condition struct {
	ID         string `json:"id"                 validate:"required"`
	Name       string `json:"name"`
	Expression string `json:"expression"`
	Priority   *int   `json:"priority,omitempty"`
}

// StepPosition is the element of the position-only save payload.
type StepPosition struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
}

// ParseStepType validates a raw step type string.
func ParseStepType(raw string) (StepType, error) {
	stepType := StepType(raw)
	if _, ok := StepVariants[stepType]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStepType, raw)
	}

	return stepType, nil
}

// ParseTransitionType validates a raw transition type string.
func ParseTransitionType(raw string) (TransitionType, error) {
	switch TransitionType(raw) {
	case TransitionTypeStandard, TransitionTypeParallelFork, TransitionTypeDefault:
		return TransitionType(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTransitionType, raw)
	}
}

// FindCommand returns the command with the given id, or nil.
func (p *Plan) FindCommand(id string) *Command {
	if id == "" {
		return nil
	}

	for _, command := range p.Commands {
		if command != nil && command.ID == id {
			return command
		}
	}

	return nil
}

// FindCondition returns the condition with the given id, or nil.
func (p *Plan) FindCondition(id string) *Condition {
	if id == "" {
		return nil
	}

	for _, condition := range p.Conditions {
		if condition != nil && condition.ID == id {
			return condition
		}
	}

	return nil
}

// Metadata returns a copy of the plan without its child collections.
func (p *Plan) Metadata() *Plan {
	if p == nil {
		return nil
	}

	return &Plan{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartStepID: p.StartStepID,
		Version:     cloneIntPtr(p.Version),
		CreatedAt:   cloneTimePtr(p.CreatedAt),
		UpdatedAt:   cloneTimePtr(p.UpdatedAt),
	}
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}

	clone := p.Metadata()

	clone.Steps = make([]*Step, 0, len(p.Steps))
	for _, step := range p.Steps {
		clone.Steps = append(clone.Steps, step.Clone())
	}

	clone.Transitions = make([]*Transition, 0, len(p.Transitions))
	for _, transition := range p.Transitions {
		clone.Transitions = append(clone.Transitions, transition.Clone())
	}

	clone.Conditions = make([]*Condition, 0, len(p.Conditions))
	for _, condition := range p.Conditions {
		clone.Conditions = append(clone.Conditions, condition.Clone())
	}

	clone.Commands = make([]*Command, 0, len(p.Commands))
	for _, command := range p.Commands {
		clone.Commands = append(clone.Commands, command.Clone())
	}

	return clone
}

// Clone returns a deep copy of the step.
func (s *Step) Clone() *Step {
	if s == nil {
		return nil
	}

	clone := *s
	clone.Config = CloneMap(s.Config)

	return &clone
}

// Clone returns a copy of the transition.
func (t *Transition) Clone() *Transition {
	if t == nil {
		return nil
	}

	clone := *t

	return &clone
}

// Clone returns a deep copy of the command.
func (c *Command) Clone() *Command {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Parameters = CloneMap(c.Parameters)

	return &clone
}

// Clone returns a copy of the condition.
func (c *Condition) Clone() *Condition {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Priority = cloneIntPtr(c.Priority)

	return &clone
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}

	out := *v

	return &out
}

func cloneTimePtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}

	out := *v

	return &out
}
