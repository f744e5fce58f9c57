package dto

import (
	"time"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// ActivityListRequest filtros de la bitácora. CompanyID solo para super_admin.
type ActivityListRequest struct {
	PageRequest
	CompanyID string `query:"company_id"`
	OrderID   string `query:"order_id"`
	Action    string `query:"action"`
}

// ActivityResponse entrada de la bitácora.
type ActivityResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	CompanyID   string    `json:"company_id,omitempty"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	OrderID     string    `json:"order_id,omitempty"`
	InvoiceID   string    `json:"invoice_id,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewActivityResponse mapea una entrada de la bitácora.
func NewActivityResponse(l *entity.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:          l.ID,
		UserID:      l.UserID,
		CompanyID:   l.CompanyID,
		Action:      l.Action,
		Description: l.Description,
		OrderID:     l.OrderID,
		InvoiceID:   l.InvoiceID,
		IPAddress:   l.IPAddress,
		CreatedAt:   l.CreatedAt,
	}
}
