// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"github.com/dukex/planeditor/pkg/models"
	"github.com/google/uuid"
)

// CreateTestPlan creates a small reminder plan: send -> decide -> done, with a guarded
// transition and a default loop back to send.
func CreateTestPlan(overrides ...func(*models.Plan)) *models.Plan {
	version := 3
	priority := 1

	plan := &models.Plan{
		ID:          "plan-reminder",
		Name:        "appointment_reminder",
		Description: "Remind a patient about an appointment",
		StartStepID: "step-send",
		Version:     &version,
		Steps: []*models.Step{
			{
				ID:        "step-send",
				PlanID:    "plan-reminder",
				StepType:  models.StepTypeAction,
				Name:      "Send reminder",
				CommandID: "cmd-send",
				Position:  models.Position{X: 100, Y: 100},
			},
			{
				ID:       "step-decide",
				PlanID:   "plan-reminder",
				StepType: models.StepTypeDecision,
				Name:     "Confirmed?",
				Config:   map[string]any{"timeout": "24h"},
				Position: models.Position{X: 100, Y: 250},
			},
			{
				ID:       "step-done",
				PlanID:   "plan-reminder",
				StepType: models.StepTypeTerminal,
				Name:     "Done",
				Position: models.Position{X: 100, Y: 400},
			},
		},
		Transitions: []*models.Transition{
			{
				ID:             "t-send-decide",
				PlanID:         "plan-reminder",
				FromStepID:     "step-send",
				ToStepID:       "step-decide",
				TransitionType: models.TransitionTypeStandard,
			},
			{
				ID:             "t-decide-done",
				PlanID:         "plan-reminder",
				FromStepID:     "step-decide",
				ToStepID:       "step-done",
				TransitionType: models.TransitionTypeStandard,
				ConditionID:    "cond-confirmed",
			},
			{
				ID:             "t-decide-send",
				PlanID:         "plan-reminder",
				FromStepID:     "step-decide",
				ToStepID:       "step-send",
				TransitionType: models.TransitionTypeDefault,
			},
		},
		Conditions: []*models.Condition{
			{ID: "cond-confirmed", Name: "confirmed", Expression: "patient.confirmed == true", Priority: &priority},
		},
		Commands: []*models.Command{
			{
				ID:            "cmd-send",
				CommandTypeID: "send_sms",
				Parameters:    map[string]any{"to": "{{patient.phone}}", "message": "See you tomorrow"},
			},
		},
	}

	for _, override := range overrides {
		override(plan)
	}

	return plan
}

// CreateTestCatalog creates a command type catalog matching CreateTestPlan.
func CreateTestCatalog() []*models.CommandType {
	return []*models.CommandType{
		{
			ID:          "send_sms",
			Name:        "Send SMS",
			Description: "Send a text message",
			ParameterSchema: map[string]*models.ParameterSchema{
				"to":      {Type: "string", Required: true, Description: "Recipient phone number"},
				"message": {Type: "string", Required: true},
				"retries": {Type: "number", Default: float64(3)},
			},
			UIMetadata: models.CommandTypeUIMetadata{Category: "messaging", Icon: "message-square", PaletteVisible: true},
			Status:     models.CommandTypeStatusActive,
		},
		{
			ID:          "wait_timer",
			Name:        "Wait Timer",
			Description: "Pause for a duration",
			ParameterSchema: map[string]*models.ParameterSchema{
				"duration": {Type: "string", Default: "1h", Enum: []string{"1h", "24h"}},
			},
			UIMetadata: models.CommandTypeUIMetadata{Category: "timing", PaletteVisible: true},
			Status:     models.CommandTypeStatusActive,
		},
	}
}

// CreateTestNode creates a test Node with default values that can be overridden.
func CreateTestNode(overrides ...func(*models.Node)) *models.Node {
	id := "step-" + uuid.New().String()

	node := &models.Node{
		ID:       id,
		Type:     models.StepTypeWait,
		Position: models.Position{X: 100, Y: 200},
		Data: models.NodeData{
			Step: &models.Step{
				ID:       id,
				StepType: models.StepTypeWait,
				Name:     "Test Node",
				Position: models.Position{X: 100, Y: 200},
			},
		},
	}

	for _, override := range overrides {
		override(node)
	}

	return node
}

// WithPosition places the node.
func WithPosition(x, y float64) func(*models.Node) {
	return func(n *models.Node) {
		n.Position = models.Position{X: x, Y: y}
	}
}

// WithSize sets measured dimensions.
func WithSize(width, height float64) func(*models.Node) {
	return func(n *models.Node) {
		n.Width = &width
		n.Height = &height
	}
}

// WithSelected marks the node as part of the canvas multi-selection.
func WithSelected() func(*models.Node) {
	return func(n *models.Node) {
		n.Selected = true
	}
}
