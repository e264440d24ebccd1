package services

import (
	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/params"
)

// SetParameter edits one parameter of the node's command. With typed set, raw is read the way a
// form field of the schema type would be; otherwise it must be JSON. A value that does not parse
// leaves the command untouched and reports changed=false.
func (e *Editor) SetParameter(nodeID, key, raw string, typed bool) (map[string]any, bool, error) {
	node, err := e.container.Node(nodeID)
	if err != nil {
		return nil, false, NewServiceError("SetParameter", "node_not_found", err)
	}

	command := node.Data.Command
	if command == nil {
		return nil, false, NewServiceError("SetParameter", "no_command", ErrNoCommand)
	}

	var (
		updated map[string]any
		changed bool
	)

	if typed {
		var parameter *models.ParameterSchema
		if commandType := e.commandTypeOf(node); commandType != nil {
			parameter = commandType.ParameterSchema[key]
		}

		updated, changed = params.ApplyInput(command.Parameters, parameter, key, raw)
	} else {
		updated, changed = params.ApplyRaw(command.Parameters, key, raw)
	}

	if !changed {
		return command.Parameters, false, nil
	}

	_, err = e.container.UpdateNode(nodeID, models.NodePatch{
		Command: &models.Command{
			ID:            command.ID,
			CommandTypeID: command.CommandTypeID,
			Parameters:    updated,
		},
	})
	if err != nil {
		return nil, false, NewServiceError("SetParameter", "update_failed", err)
	}

	return updated, true, nil
}

// ValidateParameters checks the node's command parameters against its command type schema.
// Violations come back as a *params.ValidationError.
func (e *Editor) ValidateParameters(nodeID string) error {
	node, err := e.container.Node(nodeID)
	if err != nil {
		return NewServiceError("ValidateParameters", "node_not_found", err)
	}

	if node.Data.Command == nil {
		return NewServiceError("ValidateParameters", "no_command", ErrNoCommand)
	}

	return params.Validate(e.commandTypeOf(node), node.Data.Command.Parameters)
}

func (e *Editor) commandTypeOf(node *models.Node) *models.CommandType {
	if node.Data.CommandType != nil {
		return node.Data.CommandType
	}

	return e.container.CommandType(node.Data.Command.CommandTypeID)
}
