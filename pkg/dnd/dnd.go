// Package dnd carries palette drags onto the canvas. A drag transfers two string keys: the step
// type, and optionally the id of the command type the step should be bound to.
package dnd

import (
	"errors"

	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/workflow"
)

const (
	TypeKey          = "application/reactflow/type"
	CommandTypeIDKey = "application/reactflow/commandTypeId"
)

// ErrEmptyDrop is returned when the transfer carries no step type; the drop is ignored.
var ErrEmptyDrop = errors.New("drop carries no step type")

// Drop is a decoded drag payload.
type Drop struct {
	StepType      models.StepType `json:"stepType"`
	CommandTypeID string          `json:"commandTypeId,omitempty"`
}

// Encode renders the transfer keys for a drag of stepType. The command type key is only set
// when commandTypeID is not empty.
func Encode(stepType models.StepType, commandTypeID string) map[string]string {
	transfer := map[string]string{TypeKey: string(stepType)}

	if commandTypeID != "" {
		transfer[CommandTypeIDKey] = commandTypeID
	}

	return transfer
}

// Decode reads a drag transfer. Unknown step types are rejected with models.ErrUnknownStepType.
func Decode(transfer map[string]string) (Drop, error) {
	raw := transfer[TypeKey]
	if raw == "" {
		return Drop{}, ErrEmptyDrop
	}

	stepType, err := models.ParseStepType(raw)
	if err != nil {
		return Drop{}, err
	}

	return Drop{StepType: stepType, CommandTypeID: transfer[CommandTypeIDKey]}, nil
}

// Apply adds the dropped step to the container at position, already converted to canvas
// coordinates.
func (d Drop) Apply(container *workflow.Container, position models.Position) (*models.Node, error) {
	return container.AddNode(d.StepType, position, d.CommandTypeID)
}
