package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/application/maquila"
)

// InvoiceHandler maneja las facturas de maquila (protegido).
type InvoiceHandler struct {
	uc *maquila.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *maquila.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create factura una maquila en ready_for_billing; la maquila pasa a billed.
// POST /api/orders/:id/invoice
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	inv, err := h.uc.Create(requestContext(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInvoiceResponse(inv))
}

// GetByID obtiene el detalle de una factura.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.uc.Get(requestContext(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// ChangeStatus marca la factura como pagada, vencida o anulada.
// POST /api/invoices/:id/status
func (h *InvoiceHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.InvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	inv, err := h.uc.ChangeStatus(requestContext(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// PDF descarga la representación gráfica.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.PDF(requestContext(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
