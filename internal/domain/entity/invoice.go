package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura de maquila.
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice factura 1:1 con la maquila. TaxAmount y TotalAmount se recalculan en cada guardado.
type Invoice struct {
	ID        string
	CompanyID string
	OrderID   string
	ClientID  string
	Number    string // asignado una sola vez al crear

	IssueDate   time.Time
	DueDate     time.Time
	PaymentDate *time.Time

	Subtotal    decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
	Status      string

	DeliveryPerson    string
	DeliveryRecipient string
	Notes             string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
