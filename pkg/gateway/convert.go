package gateway

import (
	"fmt"

	"github.com/dukex/planeditor/pkg/models"
	json "github.com/goccy/go-json"
)

// defaultPositions places the first nine steps without a stored position in a fixed layout.
var defaultPositions = map[int]models.Position{
	0: {X: 100, Y: 100},
	1: {X: 100, Y: 250},
	2: {X: 100, Y: 400},
	3: {X: -150, Y: 550},
	4: {X: 100, Y: 550},
	5: {X: 350, Y: 550},
	6: {X: -150, Y: 700},
	7: {X: 100, Y: 700},
	8: {X: 350, Y: 700},
}

// DefaultPosition returns the layout slot of the index-th step.
func DefaultPosition(index int) models.Position {
	if position, ok := defaultPositions[index]; ok {
		return position
	}

	return models.Position{
		X: 100 + float64(index%3)*250,
		Y: 100 + float64(index/3)*150,
	}
}

// ConvertToPlan maps a full plan response to the editor plan. Steps without a position get a
// default layout slot, and steps without a title or name are called "Step N".
func ConvertToPlan(data *FullPlanResponse) *models.Plan {
	if data == nil {
		return nil
	}

	plan := &models.Plan{
		ID:          data.Plan.ID,
		Name:        data.Plan.Name,
		Description: data.Plan.Description,
		StartStepID: data.Plan.StartStepID,
		Version:     data.Plan.Version,
		Steps:       make([]*models.Step, 0, len(data.Steps)),
		Transitions: make([]*models.Transition, 0, len(data.Transitions)),
		Conditions:  make([]*models.Condition, 0, len(data.Conditions)),
		Commands:    make([]*models.Command, 0, len(data.Commands)),
	}

	for i, step := range data.Steps {
		name := step.Title
		if name == "" {
			name = step.Name
		}

		if name == "" {
			name = fmt.Sprintf("Step %d", i+1)
		}

		position := DefaultPosition(i)
		if step.Position != nil {
			position = *step.Position
		}

		plan.Steps = append(plan.Steps, &models.Step{
			ID:          step.ID,
			PlanID:      step.PlanID,
			StepType:    models.StepType(step.StepType),
			Name:        name,
			Description: step.Description,
			CommandID:   step.CommandID,
			Config:      models.CloneMap(step.Config),
			Position:    position,
		})
	}

	for _, transition := range data.Transitions {
		plan.Transitions = append(plan.Transitions, &models.Transition{
			ID:             transition.ID,
			PlanID:         transition.PlanID,
			FromStepID:     transition.FromStepID,
			ToStepID:       transition.ToStepID,
			TransitionType: models.TransitionType(transition.TransitionType),
			ConditionID:    transition.ConditionID,
		})
	}

	for _, condition := range data.Conditions {
		converted := &models.Condition{
			ID:         condition.ID,
			Name:       condition.Name,
			Expression: condition.Expression,
			Priority:   condition.Priority,
		}
		plan.Conditions = append(plan.Conditions, converted.Clone())
	}

	for _, command := range data.Commands {
		plan.Commands = append(plan.Commands, &models.Command{
			ID:            command.ID,
			CommandTypeID: command.CommandTypeID,
			Parameters:    models.CloneMap(command.Parameters),
		})
	}

	return plan
}

// ConvertCommandTypes maps the catalog of a full plan response. Parameter schemas that do not
// decode as a map of parameter descriptions are dropped.
func ConvertCommandTypes(data *FullPlanResponse) []*models.CommandType {
	if data == nil {
		return []*models.CommandType{}
	}

	out := make([]*models.CommandType, 0, len(data.CommandTypes))

	for _, commandType := range data.CommandTypes {
		out = append(out, &models.CommandType{
			ID:              commandType.ID,
			Name:            commandType.Name,
			Description:     commandType.Description,
			ParameterSchema: decodeSchema(commandType.ParameterSchema),
			ResultSchema:    decodeSchema(commandType.ResultSchema),
			UIMetadata: models.CommandTypeUIMetadata{
				Icon:           commandType.UIMetadata.Icon,
				Category:       commandType.UIMetadata.Category,
				PaletteVisible: commandType.UIMetadata.PaletteVisible,
				Color:          commandType.UIMetadata.Color,
			},
			Status: models.CommandTypeStatus(commandType.Status),
		})
	}

	return out
}

func decodeSchema(raw json.RawMessage) map[string]*models.ParameterSchema {
	if len(raw) == 0 {
		return nil
	}

	var schema map[string]*models.ParameterSchema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil
	}

	return schema
}
