package web

import (
	"github.com/dukex/planeditor/pkg/models"
	"github.com/gofiber/fiber/v3"
)

func (h *APIHandlers) GetExecution(c fiber.Ctx) error {
	store := h.editor.Execution()

	return c.JSON(ExecutionStateResponse{
		Mode:             store.Mode(),
		ConnectionStatus: store.ConnectionStatus(),
		Context:          store.ExecutionContext(),
	})
}

func (h *APIHandlers) StartExecution(c fiber.Ctx) error {
	var req StartExecutionRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	executionContext, err := h.editor.StartExecution(c.Context(), models.EditorMode(req.Mode), req.InitialContext)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(executionContext)
}

func (h *APIHandlers) AdvanceExecution(c fiber.Ctx) error {
	resp, err := h.editor.AdvanceExecution(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(resp)
}

func (h *APIHandlers) RefreshExecution(c fiber.Ctx) error {
	resp, err := h.editor.RefreshExecution(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(resp)
}

func (h *APIHandlers) StopExecution(c fiber.Ctx) error {
	h.editor.StopExecution()

	return c.SendStatus(fiber.StatusNoContent)
}

// EvaluateCondition previews a condition against the current blackboard.
func (h *APIHandlers) EvaluateCondition(c fiber.Ctx) error {
	var req EvaluateRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	result, err := h.editor.Execution().EvaluateCondition(req.Expression)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(fiber.Map{
		"expression": req.Expression,
		"result":     result,
	})
}
