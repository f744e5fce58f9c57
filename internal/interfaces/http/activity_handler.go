package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/application/maquila"
)

// ActivityHandler consulta de la bitácora.
type ActivityHandler struct {
	uc *maquila.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *maquila.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List GET /api/activity?order_id=&action=&company_id=
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	in := dto.ActivityListRequest{
		PageRequest: pageFrom(c),
		CompanyID:   c.Query("company_id"),
		OrderID:     c.Query("order_id"),
		Action:      c.Query("action"),
	}
	logs, err := h.uc.List(requestContext(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.ActivityResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.NewActivityResponse(l))
	}
	return c.JSON(fiber.Map{
		"items": items,
		"page":  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	})
}
