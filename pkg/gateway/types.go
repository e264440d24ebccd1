package gateway

import (
	"github.com/dukex/planeditor/pkg/models"
	json "github.com/goccy/go-json"
)

// DefaultBaseURL is the backend API root used when none is configured.
const DefaultBaseURL = "http://localhost:4000/api"

type StepResponse struct {
	ID          string           `json:"id"`
	PlanID      string           `json:"plan_id"`
	StepType    string           `json:"step_type"`
	Title       string           `json:"title"`
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	CommandID   string           `json:"command_id,omitempty"`
	Config      map[string]any   `json:"config,omitempty"`
	Position    *models.Position `json:"position,omitempty"`
}

type TransitionResponse struct {
	ID             string `json:"id"`
	PlanID         string `json:"plan_id"`
	FromStepID     string `json:"from_step_id"`
	ToStepID       string `json:"to_step_id"`
	TransitionType string `json:"transition_type"`
	ConditionID    string `json:"condition_id,omitempty"`
}

type ConditionResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Expression     string `json:"expression"`
	ExpressionType string `json:"expression_type"`
	Priority       *int   `json:"priority,omitempty"`
}

type CommandResponse struct {
	ID            string         `json:"id"`
	CommandTypeID string         `json:"command_type_id"`
	Parameters    map[string]any `json:"parameters"`
}

type UIMetadataResponse struct {
	Category       string `json:"category"`
	Icon           string `json:"icon,omitempty"`
	PaletteVisible bool   `json:"palette_visible"`
	Color          string `json:"color,omitempty"`
}

// CommandTypeResponse keeps the parameter schema raw; its shape is owned by the backend.
type CommandTypeResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	ParameterSchema json.RawMessage    `json:"parameter_schema"`
	ResultSchema    json.RawMessage    `json:"result_schema,omitempty"`
	UIMetadata      UIMetadataResponse `json:"ui_metadata"`
	Status          string             `json:"status"`
}

type PlanResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	StartStepID string `json:"start_step_id"`
	Version     *int   `json:"version,omitempty"`
}

type FullPlanResponse struct {
	Plan         PlanResponse          `json:"plan"`
	Steps        []StepResponse        `json:"steps"`
	Transitions  []TransitionResponse  `json:"transitions"`
	Conditions   []ConditionResponse   `json:"conditions"`
	Commands     []CommandResponse     `json:"commands"`
	CommandTypes []CommandTypeResponse `json:"command_types"`
}

type StepRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Result any    `json:"result,omitempty"`
}

type ExecutionResponse struct {
	ExecutionID string   `json:"execution_id"`
	PlanID      string   `json:"plan_id"`
	Status      string   `json:"status"`
	CurrentStep *StepRef `json:"current_step"`
}

type AdvanceResponse struct {
	Status       string   `json:"status"`
	PreviousStep *StepRef `json:"previous_step,omitempty"`
	CurrentStep  *StepRef `json:"current_step,omitempty"`
	Message      string   `json:"message,omitempty"`
}

type createExecutionRequest struct {
	PlanID         string         `json:"plan_id"`
	InitialContext map[string]any `json:"initial_context"`
}

type savePositionsRequest struct {
	Steps []models.StepPosition `json:"steps"`
}

type errorResponse struct {
	Error string `json:"error"`
}
