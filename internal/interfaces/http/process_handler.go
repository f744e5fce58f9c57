package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/application/maquila"
)

// ProcessHandler sub-procesos de tostión y producción de una maquila.
type ProcessHandler struct {
	toasting   *maquila.ToastingUseCase
	production *maquila.ProductionUseCase
}

// NewProcessHandler construye el handler.
func NewProcessHandler(toasting *maquila.ToastingUseCase, production *maquila.ProductionUseCase) *ProcessHandler {
	return &ProcessHandler{toasting: toasting, production: production}
}

// ToastingStep ejecuta un paso del formulario de tostión.
// POST /api/orders/:id/toasting/:step (reception, setup, monitoring, completion)
func (h *ProcessHandler) ToastingStep(c *fiber.Ctx) error {
	var in dto.ToastingStepRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.toasting.CreateStep(requestContext(c), GetUserID(c), c.Params("id"), c.Params("step"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewToastingResponse(p))
}

// GetToasting GET /api/orders/:id/toasting
func (h *ProcessHandler) GetToasting(c *fiber.Ctx) error {
	p, err := h.toasting.Get(requestContext(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewToastingResponse(p))
}

// CreateProduction registra la producción y deja la maquila lista para facturar.
// POST /api/orders/:id/production
func (h *ProcessHandler) CreateProduction(c *fiber.Ctx) error {
	var in dto.ProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.production.Create(requestContext(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductionResponse(p))
}

// GetProduction GET /api/orders/:id/production
func (h *ProcessHandler) GetProduction(c *fiber.Ctx) error {
	p, err := h.production.Get(requestContext(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductionResponse(p))
}
