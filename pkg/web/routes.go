package web

import "github.com/gofiber/fiber/v3"

// Register mounts the editor and execution endpoints on router.
func (h *APIHandlers) Register(router fiber.Router) {
	e := router.Group("/editor")
	e.Get("/graph", h.GetGraph)
	e.Get("/plan", h.GetPlan)
	e.Post("/plans/:nameOrId/load", h.LoadPlan)
	e.Get("/palette", h.GetPalette)
	e.Post("/nodes", h.AddNode)
	e.Post("/drop", h.Drop)
	e.Patch("/nodes/:id", h.UpdateNode)
	e.Delete("/nodes/:id", h.DeleteNode)
	e.Patch("/nodes/:id/parameters", h.SetParameter)
	e.Get("/nodes/:id/parameters/validate", h.ValidateParameters)
	e.Put("/layout", h.UpdateLayout)
	e.Post("/edges", h.Connect)
	e.Patch("/edges/:id", h.UpdateEdge)
	e.Delete("/edges/:id", h.DeleteEdge)
	e.Post("/selection", h.Select)
	e.Post("/delete-selection", h.DeleteSelection)
	e.Post("/align/:axis", h.Align)
	e.Post("/undo", h.Undo)
	e.Post("/redo", h.Redo)
	e.Post("/save", h.Save)
	e.Put("/preferences", h.UpdatePreferences)

	x := router.Group("/execution")
	x.Get("/", h.GetExecution)
	x.Post("/start", h.StartExecution)
	x.Post("/advance", h.AdvanceExecution)
	x.Post("/refresh", h.RefreshExecution)
	x.Post("/stop", h.StopExecution)
	x.Post("/evaluate", h.EvaluateCondition)

	router.Get("/health", h.HealthCheck)
}
