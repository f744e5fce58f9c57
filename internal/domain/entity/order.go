package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderState estado del ciclo de vida de una maquila.
type OrderState string

// Estados de la maquila. Terminales: delivered y cancelled.
const (
	StateRegistered       OrderState = "registered"
	StateInToasting       OrderState = "in_toasting"
	StateToastingComplete OrderState = "toasting_complete"
	StateInProduction     OrderState = "in_production"
	StateReadyForBilling  OrderState = "ready_for_billing"
	StateBilled           OrderState = "billed"
	StateDelivered        OrderState = "delivered"
	StateCancelled        OrderState = "cancelled"
)

// Formas del café.
const (
	CoffeeTypeCPS     = "cps"     // pergamino seco
	CoffeeTypeExcelso = "excelso" // trillado
)

// Métodos de entrega.
const (
	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"
	DeliveryShipping = "shipping"
)

// Order maquila: trabajo de transformación de café de un cliente.
// Los campos *By guardan el ID del usuario responsable ("" = sin asignar).
type Order struct {
	ID        string
	CompanyID string
	ClientID  string
	Number    string // asignado una sola vez al crear

	QuantityKg         decimal.Decimal
	CoffeeType         string
	OriginalCoffeeType string
	KgAfterHulling     *decimal.Decimal // kg después de trilla
	ShrinkPct          *decimal.Decimal

	PackagingType    string
	PackagingDetails string
	DeliveryMethod   string
	DeliveryAddress  string
	CommittedDate    time.Time
	Notes            string
	InternalNotes    string

	State OrderState

	RegisteredAt          time.Time
	ToastingStartedAt     *time.Time
	ToastingCompletedAt   *time.Time
	ProductionStartedAt   *time.Time
	ProductionCompletedAt *time.Time
	BilledAt              *time.Time
	DeliveredAt           *time.Time

	CreatedBy           string
	ToastingStartedBy   string
	ToastedBy           string
	ProductionStartedBy string
	ProducedBy          string
	BilledBy            string
	DeliveredBy         string
	CancelledBy         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOverdue la fecha comprometida pasó y la maquila no fue entregada ni cancelada.
func (o *Order) IsOverdue(now time.Time) bool {
	if o.State == StateDelivered || o.State == StateCancelled {
		return false
	}
	return truncateDay(now).After(truncateDay(o.CommittedDate))
}

// DaysToDelivery días calendario hasta la fecha comprometida (negativo si vencida).
func (o *Order) DaysToDelivery(now time.Time) int {
	d := truncateDay(o.CommittedDate).Sub(truncateDay(now))
	return int(d.Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// OrderFilter filtros para listar maquilas de un tenant.
type OrderFilter struct {
	State    OrderState
	ClientID string
	Limit    int
	Offset   int
}
