package testutil

import (
	"github.com/dukex/planeditor/pkg/gateway"
	"github.com/dukex/planeditor/pkg/models"
	json "github.com/goccy/go-json"
)

// CreateTestFullPlanResponse renders CreateTestPlan and CreateTestCatalog as the backend would
// return them from the full plan endpoint.
func CreateTestFullPlanResponse() *gateway.FullPlanResponse {
	plan := CreateTestPlan()

	out := &gateway.FullPlanResponse{
		Plan: gateway.PlanResponse{
			ID:          plan.ID,
			Name:        plan.Name,
			Description: plan.Description,
			Status:      "active",
			StartStepID: plan.StartStepID,
			Version:     plan.Version,
		},
	}

	for _, step := range plan.Steps {
		position := step.Position

		out.Steps = append(out.Steps, gateway.StepResponse{
			ID:          step.ID,
			PlanID:      step.PlanID,
			StepType:    string(step.StepType),
			Title:       step.Name,
			Description: step.Description,
			CommandID:   step.CommandID,
			Config:      models.CloneMap(step.Config),
			Position:    &position,
		})
	}

	for _, transition := range plan.Transitions {
		out.Transitions = append(out.Transitions, gateway.TransitionResponse{
			ID:             transition.ID,
			PlanID:         transition.PlanID,
			FromStepID:     transition.FromStepID,
			ToStepID:       transition.ToStepID,
			TransitionType: string(transition.TransitionType),
			ConditionID:    transition.ConditionID,
		})
	}

	for _, condition := range plan.Conditions {
		out.Conditions = append(out.Conditions, gateway.ConditionResponse{
			ID:             condition.ID,
			Name:           condition.Name,
			Expression:     condition.Expression,
			ExpressionType: "expr",
			Priority:       condition.Priority,
		})
	}

	for _, command := range plan.Commands {
		out.Commands = append(out.Commands, gateway.CommandResponse{
			ID:            command.ID,
			CommandTypeID: command.CommandTypeID,
			Parameters:    models.CloneMap(command.Parameters),
		})
	}

	for _, commandType := range CreateTestCatalog() {
		schema, _ := json.Marshal(commandType.ParameterSchema)

		out.CommandTypes = append(out.CommandTypes, gateway.CommandTypeResponse{
			ID:              commandType.ID,
			Name:            commandType.Name,
			Description:     commandType.Description,
			ParameterSchema: schema,
			UIMetadata: gateway.UIMetadataResponse{
				Category:       commandType.UIMetadata.Category,
				Icon:           commandType.UIMetadata.Icon,
				PaletteVisible: commandType.UIMetadata.PaletteVisible,
				Color:          commandType.UIMetadata.Color,
			},
			Status: string(commandType.Status),
		})
	}

	return out
}
