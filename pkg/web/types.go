// Package web provides HTTP request and response types for the editor API.
package web

import (
	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/workflow"
)

// PositionRequest is a canvas coordinate in a request body.
type PositionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p PositionRequest) toModel() models.Position {
	return models.Position{X: p.X, Y: p.Y}
}

// AddNodeRequest represents the request body for adding a step from the palette.
type AddNodeRequest struct {
	StepType      string          `json:"step_type"                 validate:"required,oneof=action decision wait subprocess join terminal"`
	Position      PositionRequest `json:"position"`
	CommandTypeID string          `json:"command_type_id,omitempty"`
}

// DropRequest carries a raw drag transfer and the drop point in canvas coordinates.
type DropRequest struct {
	Transfer map[string]string `json:"transfer" validate:"required"`
	Position PositionRequest   `json:"position"`
}

// UpdateNodeRequest represents a partial update of a node data bag. Absent parts are left as they
// are; a supplied step or command replaces the current one whole.
type UpdateNodeRequest struct {
	Step    *models.Step    `json:"step,omitempty"`
	Command *models.Command `json:"command,omitempty"`
}

// DimensionsRequest is a node size measured by the canvas.
type DimensionsRequest struct {
	Width  float64 `json:"width"  validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// LayoutRequest applies canvas drag and resize feedback without recording history.
type LayoutRequest struct {
	Positions  map[string]PositionRequest   `json:"positions"`
	Dimensions map[string]DimensionsRequest `json:"dimensions" validate:"dive"`
}

// ConnectRequest represents the request body for connecting two steps.
type ConnectRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// UpdateEdgeRequest represents a partial update of an edge data bag. An empty label clears it.
type UpdateEdgeRequest struct {
	Transition     *models.Transition `json:"transition,omitempty"`
	Condition      *models.Condition  `json:"condition,omitempty"       validate:"excluded_with=ClearCondition"`
	ClearCondition bool               `json:"clear_condition,omitempty"`
	Label          *string            `json:"label,omitempty"`
	PathType       *string            `json:"path_type,omitempty"       validate:"omitempty,oneof=bezier smoothstep"`
}

func (r UpdateEdgeRequest) toPatch() models.EdgePatch {
	patch := models.EdgePatch{
		Transition:     r.Transition,
		Condition:      r.Condition,
		ClearCondition: r.ClearCondition,
		Label:          r.Label,
	}

	if r.PathType != nil {
		pathType := models.EdgePathType(*r.PathType)
		patch.PathType = &pathType
	}

	return patch
}

// SelectionRequest selects one node, one edge or a set of nodes. An empty body clears the selection.
type SelectionRequest struct {
	NodeID  string   `json:"node_id,omitempty"`
	EdgeID  string   `json:"edge_id,omitempty"  validate:"excluded_with=NodeID"`
	NodeIDs []string `json:"node_ids,omitempty"`
}

// PreferencesRequest updates editor preferences.
type PreferencesRequest struct {
	DefaultEdgePathType string `json:"default_edge_path_type,omitempty" validate:"omitempty,oneof=bezier smoothstep"`
	PaletteCollapsed    *bool  `json:"palette_collapsed,omitempty"`
}

// ParameterRequest edits one command parameter. Raw mode parses Value as JSON; input mode
// interprets it by the parameter type from the command type schema.
type ParameterRequest struct {
	Key   string `json:"key"            validate:"required"`
	Value string `json:"value"`
	Mode  string `json:"mode,omitempty" validate:"omitempty,oneof=raw input"`
}

// StartExecutionRequest represents the request body for starting an execution.
type StartExecutionRequest struct {
	Mode           string         `json:"mode,omitempty"            validate:"omitempty,oneof=run debug replay"`
	InitialContext map[string]any `json:"initial_context,omitempty"`
}

// EvaluateRequest previews a condition expression against the execution blackboard.
type EvaluateRequest struct {
	Expression string `json:"expression" validate:"required"`
}

// GraphResponse is the full canvas view: the graph annotated with execution state plus the
// selection, history and save indicators.
type GraphResponse struct {
	Plan                *models.Plan        `json:"plan"`
	Nodes               []*models.Node      `json:"nodes"`
	Edges               []*models.Edge      `json:"edges"`
	SelectedNodeID      string              `json:"selected_node_id,omitempty"`
	SelectedEdgeID      string              `json:"selected_edge_id,omitempty"`
	CanUndo             bool                `json:"can_undo"`
	CanRedo             bool                `json:"can_redo"`
	Dirty               bool                `json:"dirty"`
	SaveStatus          workflow.SaveStatus `json:"save_status"`
	SaveError           string              `json:"save_error,omitempty"`
	Mode                models.EditorMode   `json:"mode"`
	DefaultEdgePathType models.EdgePathType `json:"default_edge_path_type"`
	PaletteCollapsed    bool                `json:"palette_collapsed"`
}

// HistoryResponse reports the outcome of undo, redo and align requests.
type HistoryResponse struct {
	Changed bool `json:"changed"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

// ParameterResponse reports a parameter edit. Changed is false when the value did not parse.
type ParameterResponse struct {
	Changed    bool           `json:"changed"`
	Parameters map[string]any `json:"parameters"`
}

// ValidationResponse lists the schema violations of a node's parameters.
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ExecutionStateResponse is the execution mirror as seen by the canvas.
type ExecutionStateResponse struct {
	Mode             models.EditorMode        `json:"mode"`
	ConnectionStatus models.ConnectionStatus  `json:"connection_status"`
	Context          *models.ExecutionContext `json:"context"`
}
