// Package web provides HTTP handlers and REST API endpoints for the plan editor.
package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/dukex/planeditor/pkg/dnd"
	"github.com/dukex/planeditor/pkg/execution"
	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/params"
	"github.com/dukex/planeditor/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	editor    *services.Editor
	validator *validator.Validate
}

func NewAPIHandlers(editor *services.Editor, validator *validator.Validate) *APIHandlers {
	return &APIHandlers{
		editor:    editor,
		validator: validator,
	}
}

// bind decodes and validates a JSON body. It writes the problem response itself and reports
// whether the handler may continue.
func (h *APIHandlers) bind(c fiber.Ctx, req any) (bool, error) {
	if err := c.Bind().JSON(req); err != nil {
		return false, badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return false, badRequest(c, err.Error())
	}

	return true, nil
}

func (h *APIHandlers) graph() GraphResponse {
	container := h.editor.Container()
	now := time.Now()

	return GraphResponse{
		Plan:                container.Plan(),
		Nodes:               h.editor.Execution().Annotate(container.Nodes()),
		Edges:               container.Edges(),
		SelectedNodeID:      container.SelectedNodeID(),
		SelectedEdgeID:      container.SelectedEdgeID(),
		CanUndo:             container.CanUndo(),
		CanRedo:             container.CanRedo(),
		Dirty:               h.editor.Dirty(),
		SaveStatus:          container.SaveStatus(now),
		SaveError:           container.SaveError(),
		Mode:                h.editor.Execution().Mode(),
		DefaultEdgePathType: container.DefaultEdgePathType(),
		PaletteCollapsed:    container.PaletteCollapsed(),
	}
}

func (h *APIHandlers) history(changed bool) HistoryResponse {
	return HistoryResponse{
		Changed: changed,
		CanUndo: h.editor.Container().CanUndo(),
		CanRedo: h.editor.Container().CanRedo(),
	}
}

func (h *APIHandlers) GetGraph(c fiber.Ctx) error {
	return c.JSON(h.graph())
}

func (h *APIHandlers) GetPlan(c fiber.Ctx) error {
	if h.editor.Container().Plan() == nil {
		return handleServiceError(c, services.ErrNoPlanLoaded)
	}

	return c.JSON(h.editor.Container().ToPlan())
}

func (h *APIHandlers) LoadPlan(c fiber.Ctx) error {
	nameOrID := c.Params("nameOrId")
	if nameOrID == "" {
		return badRequest(c, "Plan name or ID is required")
	}

	if _, err := h.editor.LoadPlan(c.Context(), nameOrID); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(h.graph())
}

func (h *APIHandlers) GetPalette(c fiber.Ctx) error {
	return c.JSON(dnd.BuildPalette(h.editor.Container().CommandTypes(), c.Query("q")))
}

func (h *APIHandlers) AddNode(c fiber.Ctx) error {
	var req AddNodeRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	node, err := h.editor.Container().AddNode(models.StepType(req.StepType), req.Position.toModel(), req.CommandTypeID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(node)
}

func (h *APIHandlers) Drop(c fiber.Ctx) error {
	var req DropRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	drop, err := dnd.Decode(req.Transfer)
	if err != nil {
		return handleServiceError(c, err)
	}

	node, err := drop.Apply(h.editor.Container(), req.Position.toModel())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(node)
}

func (h *APIHandlers) UpdateNode(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Node ID is required")
	}

	var req UpdateNodeRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	if req.Step == nil && req.Command == nil {
		return badRequest(c, "Nothing to update")
	}

	if req.Step != nil {
		if _, err := models.ParseStepType(string(req.Step.StepType)); err != nil {
			return badRequest(c, err.Error())
		}
	}

	node, err := h.editor.Container().UpdateNode(id, models.NodePatch{Step: req.Step, Command: req.Command})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(node)
}

func (h *APIHandlers) DeleteNode(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Node ID is required")
	}

	if err := h.editor.Container().DeleteNode(id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) UpdateLayout(c fiber.Ctx) error {
	var req LayoutRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	container := h.editor.Container()

	for id, dimensions := range req.Dimensions {
		if err := container.SetNodeDimensions(id, dimensions.Width, dimensions.Height); err != nil {
			return handleServiceError(c, err)
		}
	}

	positions := make(map[string]models.Position, len(req.Positions))
	for id, position := range req.Positions {
		positions[id] = position.toModel()
	}

	container.MoveNodes(positions)

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) Connect(c fiber.Ctx) error {
	var req ConnectRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	edge := h.editor.Container().Connect(req.Source, req.Target)

	return c.Status(fiber.StatusCreated).JSON(edge)
}

func (h *APIHandlers) UpdateEdge(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Edge ID is required")
	}

	var req UpdateEdgeRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	if req.Transition != nil {
		if _, err := models.ParseTransitionType(string(req.Transition.TransitionType)); err != nil {
			return badRequest(c, err.Error())
		}
	}

	if req.Condition != nil && req.Condition.Expression != "" {
		if err := execution.CompileCondition(req.Condition.Expression); err != nil {
			return badRequest(c, err.Error())
		}
	}

	patch := req.toPatch()
	if patch.IsEmpty() {
		return badRequest(c, "Nothing to update")
	}

	edge, err := h.editor.Container().UpdateEdge(id, patch)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(edge)
}

func (h *APIHandlers) DeleteEdge(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Edge ID is required")
	}

	if err := h.editor.Container().DeleteEdge(id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) Select(c fiber.Ctx) error {
	var req SelectionRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	container := h.editor.Container()

	switch {
	case len(req.NodeIDs) > 0:
		container.SetNodeSelection(req.NodeIDs)
	case req.EdgeID != "":
		container.SelectEdge(req.EdgeID)
	default:
		container.SelectNode(req.NodeID)
	}

	return c.JSON(fiber.Map{
		"selected_node_id": container.SelectedNodeID(),
		"selected_edge_id": container.SelectedEdgeID(),
	})
}

func (h *APIHandlers) DeleteSelection(c fiber.Ctx) error {
	deleted, err := h.editor.Container().DeleteSelected()
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(h.history(deleted))
}

func (h *APIHandlers) Align(c fiber.Ctx) error {
	var changed bool

	switch c.Params("axis") {
	case "vertical":
		changed = h.editor.Container().AlignNodesVertical()
	case "horizontal":
		changed = h.editor.Container().AlignNodesHorizontal()
	default:
		return badRequest(c, "Axis must be vertical or horizontal")
	}

	return c.JSON(h.history(changed))
}

func (h *APIHandlers) Undo(c fiber.Ctx) error {
	return c.JSON(h.history(h.editor.Container().Undo()))
}

func (h *APIHandlers) Redo(c fiber.Ctx) error {
	return c.JSON(h.history(h.editor.Container().Redo()))
}

func (h *APIHandlers) Save(c fiber.Ctx) error {
	if h.editor.Container().Plan() == nil {
		return handleServiceError(c, services.ErrNoPlanLoaded)
	}

	result := h.editor.Save(c.Context())
	if !result.Success {
		return c.Status(fiber.StatusBadGateway).JSON(result)
	}

	return c.JSON(result)
}

func (h *APIHandlers) UpdatePreferences(c fiber.Ctx) error {
	var req PreferencesRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	container := h.editor.Container()

	if req.DefaultEdgePathType != "" {
		if err := container.SetDefaultEdgePathType(models.EdgePathType(req.DefaultEdgePathType)); err != nil {
			return handleServiceError(c, err)
		}
	}

	if req.PaletteCollapsed != nil {
		container.SetPaletteCollapsed(*req.PaletteCollapsed)
	}

	if err := h.editor.Persist(c.Context()); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"default_edge_path_type": container.DefaultEdgePathType(),
		"palette_collapsed":      container.PaletteCollapsed(),
	})
}

func (h *APIHandlers) SetParameter(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Node ID is required")
	}

	var req ParameterRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	parameters, changed, err := h.editor.SetParameter(id, req.Key, req.Value, req.Mode == "input")
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(ParameterResponse{Changed: changed, Parameters: parameters})
}

func (h *APIHandlers) ValidateParameters(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Node ID is required")
	}

	err := h.editor.ValidateParameters(id)
	if err == nil {
		return c.JSON(ValidationResponse{Valid: true, Errors: []string{}})
	}

	var violations *params.ValidationError
	if errors.As(err, &violations) {
		return c.JSON(ValidationResponse{Valid: false, Errors: violations.Errors})
	}

	return handleServiceError(c, err)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	stateCheck, ok := h.editor.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Plan editor is unhealthy"
	httpStatus := http.StatusInternalServerError

	if ok {
		status = "healthy"
		message = "Plan editor is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"state": stateCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
