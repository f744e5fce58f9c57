package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// CreateOrderRequest entrada para registrar una maquila. CommittedDate en formato YYYY-MM-DD.
type CreateOrderRequest struct {
	ClientID         string          `json:"client_id"`
	QuantityKg       decimal.Decimal `json:"quantity_kg"`
	CoffeeType       string          `json:"coffee_type"`
	PackagingType    string          `json:"packaging_type"`
	PackagingDetails string          `json:"packaging_details"`
	DeliveryMethod   string          `json:"delivery_method"`
	DeliveryAddress  string          `json:"delivery_address"`
	CommittedDate    string          `json:"committed_date"`
	Notes            string          `json:"notes"`
	InternalNotes    string          `json:"internal_notes"`
}

// UpdateOrderRequest cambios parciales; nil = sin cambio.
type UpdateOrderRequest struct {
	CoffeeType       *string          `json:"coffee_type"`
	KgAfterHulling   *decimal.Decimal `json:"kg_after_hulling"`
	PackagingType    *string          `json:"packaging_type"`
	PackagingDetails *string          `json:"packaging_details"`
	DeliveryMethod   *string          `json:"delivery_method"`
	DeliveryAddress  *string          `json:"delivery_address"`
	CommittedDate    *string          `json:"committed_date"`
	Notes            *string          `json:"notes"`
	InternalNotes    *string          `json:"internal_notes"`
}

// TransitionRequest estado destino solicitado.
type TransitionRequest struct {
	Target string `json:"target"`
}

// OrderListRequest filtros del listado. CompanyID solo para super_admin.
type OrderListRequest struct {
	PageRequest
	CompanyID string `query:"company_id"`
	State     string `query:"state"`
	ClientID  string `query:"client_id"`
}

// OrderResponse salida de una maquila con campos calculados.
type OrderResponse struct {
	ID                 string           `json:"id"`
	CompanyID          string           `json:"company_id"`
	ClientID           string           `json:"client_id"`
	Number             string           `json:"number"`
	QuantityKg         decimal.Decimal  `json:"quantity_kg"`
	CoffeeType         string           `json:"coffee_type"`
	OriginalCoffeeType string           `json:"original_coffee_type"`
	KgAfterHulling     *decimal.Decimal `json:"kg_after_hulling,omitempty"`
	ShrinkPct          *decimal.Decimal `json:"shrink_pct,omitempty"`
	PackagingType      string           `json:"packaging_type"`
	PackagingDetails   string           `json:"packaging_details,omitempty"`
	DeliveryMethod     string           `json:"delivery_method"`
	DeliveryAddress    string           `json:"delivery_address,omitempty"`
	CommittedDate      string           `json:"committed_date"`
	Notes              string           `json:"notes,omitempty"`
	InternalNotes      string           `json:"internal_notes,omitempty"`
	State              string           `json:"state"`
	AllowedTargets     []string         `json:"allowed_targets"`
	IsOverdue          bool             `json:"is_overdue"`
	DaysToDelivery     int              `json:"days_to_delivery"`

	RegisteredAt          time.Time  `json:"registered_at"`
	ToastingStartedAt     *time.Time `json:"toasting_started_at,omitempty"`
	ToastingCompletedAt   *time.Time `json:"toasting_completed_at,omitempty"`
	ProductionStartedAt   *time.Time `json:"production_started_at,omitempty"`
	ProductionCompletedAt *time.Time `json:"production_completed_at,omitempty"`
	BilledAt              *time.Time `json:"billed_at,omitempty"`
	DeliveredAt           *time.Time `json:"delivered_at,omitempty"`

	CreatedBy           string `json:"created_by,omitempty"`
	ToastingStartedBy   string `json:"toasting_started_by,omitempty"`
	ToastedBy           string `json:"toasted_by,omitempty"`
	ProductionStartedBy string `json:"production_started_by,omitempty"`
	ProducedBy          string `json:"produced_by,omitempty"`
	BilledBy            string `json:"billed_by,omitempty"`
	DeliveredBy         string `json:"delivered_by,omitempty"`
	CancelledBy         string `json:"cancelled_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderListResponse listado paginado.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// NewOrderResponse mapea la maquila; allowed son los destinos válidos desde su estado.
func NewOrderResponse(o *entity.Order, allowed []entity.OrderState, now time.Time) *OrderResponse {
	if o == nil {
		return nil
	}
	targets := make([]string, 0, len(allowed))
	for _, s := range allowed {
		targets = append(targets, string(s))
	}
	return &OrderResponse{
		ID:                    o.ID,
		CompanyID:             o.CompanyID,
		ClientID:              o.ClientID,
		Number:                o.Number,
		QuantityKg:            o.QuantityKg,
		CoffeeType:            o.CoffeeType,
		OriginalCoffeeType:    o.OriginalCoffeeType,
		KgAfterHulling:        o.KgAfterHulling,
		ShrinkPct:             o.ShrinkPct,
		PackagingType:         o.PackagingType,
		PackagingDetails:      o.PackagingDetails,
		DeliveryMethod:        o.DeliveryMethod,
		DeliveryAddress:       o.DeliveryAddress,
		CommittedDate:         o.CommittedDate.Format("2006-01-02"),
		Notes:                 o.Notes,
		InternalNotes:         o.InternalNotes,
		State:                 string(o.State),
		AllowedTargets:        targets,
		IsOverdue:             o.IsOverdue(now),
		DaysToDelivery:        o.DaysToDelivery(now),
		RegisteredAt:          o.RegisteredAt,
		ToastingStartedAt:     o.ToastingStartedAt,
		ToastingCompletedAt:   o.ToastingCompletedAt,
		ProductionStartedAt:   o.ProductionStartedAt,
		ProductionCompletedAt: o.ProductionCompletedAt,
		BilledAt:              o.BilledAt,
		DeliveredAt:           o.DeliveredAt,
		CreatedBy:             o.CreatedBy,
		ToastingStartedBy:     o.ToastingStartedBy,
		ToastedBy:             o.ToastedBy,
		ProductionStartedBy:   o.ProductionStartedBy,
		ProducedBy:            o.ProducedBy,
		BilledBy:              o.BilledBy,
		DeliveredBy:           o.DeliveredBy,
		CancelledBy:           o.CancelledBy,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}
