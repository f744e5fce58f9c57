package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/application/maquila"
)

// ClientHandler CRUD de clientes del tenant.
type ClientHandler struct {
	uc *maquila.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *maquila.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	client, err := h.uc.Create(requestContext(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewClientResponse(client))
}

// List GET /api/clients?company_id=&limit=&offset=
func (h *ClientHandler) List(c *fiber.Ctx) error {
	page := pageFrom(c)
	list, err := h.uc.List(requestContext(c), GetUserID(c), c.Query("company_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]*dto.ClientResponse, 0, len(list))
	for _, cl := range list {
		items = append(items, dto.NewClientResponse(cl))
	}
	return c.JSON(fiber.Map{
		"items": items,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.Get(requestContext(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewClientResponse(client))
}

// Update PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	client, err := h.uc.Update(requestContext(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewClientResponse(client))
}

// Delete DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(requestContext(c), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
