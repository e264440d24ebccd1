package web

import (
	"errors"

	"github.com/dukex/planeditor/pkg/gateway"
	"github.com/dukex/planeditor/pkg/services"
	"github.com/dukex/planeditor/pkg/workflow"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, kind, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType(kind).
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func conflict(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(409).
		WithInstance(c.Path()).
		WithType("conflict").
		WithDetail(detail)

	return c.Status(fiber.StatusConflict).JSON(problem)
}

func badGateway(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(502).
		WithInstance(c.Path()).
		WithType("backend_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadGateway).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleServiceError provides typed error handling for service layer errors.
func handleServiceError(c fiber.Ctx, err error) error {
	var apiErr *gateway.APIError

	switch {
	case services.IsValidationError(err):
		return badRequest(c, err.Error())

	case errors.Is(err, workflow.ErrNodeNotFound):
		return notFound(c, "node_not_found", "node not found")

	case errors.Is(err, workflow.ErrEdgeNotFound):
		return notFound(c, "edge_not_found", "edge not found")

	case errors.Is(err, services.ErrPlanNotFound):
		return notFound(c, "plan_not_found", "plan not found")

	case errors.Is(err, services.ErrExecutionNotFound):
		return notFound(c, "execution_not_found", "execution not found")

	case services.IsConflictError(err):
		return conflict(c, err.Error())

	case errors.As(err, &apiErr):
		// Backend failures keep the server provided message
		return badGateway(c, apiErr.Message)

	default:
		return internalError(c, err)
	}
}
