package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/application/maquila"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/workflow"
)

// OrderHandler maneja las maquilas y sus transiciones de estado.
type OrderHandler struct {
	uc *maquila.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *maquila.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) response(o *entity.Order) *dto.OrderResponse {
	return dto.NewOrderResponse(o, workflow.AllowedTargets(o.State), h.uc.Now())
}

// Create godoc
// @Summary      Registrar maquila
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Datos de la maquila"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	o, err := h.uc.Create(requestContext(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.response(o))
}

// List godoc
// @Summary      Listar maquilas
// @Tags         orders
// @Produce      json
// @Param        state      query  string  false  "Estado"
// @Param        client_id  query  string  false  "Cliente"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Security     BearerAuth
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	in := dto.OrderListRequest{
		PageRequest: pageFrom(c),
		CompanyID:   c.Query("company_id"),
		State:       c.Query("state"),
		ClientID:    c.Query("client_id"),
	}
	list, err := h.uc.List(requestContext(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *h.response(o))
	}
	return c.JSON(dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	})
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	o, err := h.uc.Get(requestContext(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.response(o))
}

// Update PUT /api/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	o, err := h.uc.Update(requestContext(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.response(o))
}

// Delete DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(requestContext(c), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transition godoc
// @Summary      Cambiar estado de la maquila
// @Description  El rol del usuario debe corresponder al estado actual de la maquila.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la maquila"
// @Param        body  body  dto.TransitionRequest  true  "Estado destino"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/orders/{id}/transition [post]
func (h *OrderHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	o, err := h.uc.RequestTransition(requestContext(c), GetUserID(c), c.Params("id"), entity.OrderState(in.Target))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.response(o))
}
