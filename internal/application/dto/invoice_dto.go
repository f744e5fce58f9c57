package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// CreateInvoiceRequest entrada para facturar una maquila. Fechas YYYY-MM-DD.
// TaxRate nil = tasa por defecto de la configuración; IssueDate vacío = hoy.
type CreateInvoiceRequest struct {
	Subtotal          decimal.Decimal  `json:"subtotal"`
	TaxRate           *decimal.Decimal `json:"tax_rate"`
	IssueDate         string           `json:"issue_date"`
	DueDate           string           `json:"due_date"`
	DeliveryPerson    string           `json:"delivery_person"`
	DeliveryRecipient string           `json:"delivery_recipient"`
	Notes             string           `json:"notes"`
}

// InvoiceStatusRequest acción sobre la factura: pay, overdue, cancel.
type InvoiceStatusRequest struct {
	Action      string `json:"action"`
	PaymentDate string `json:"payment_date"`
}

// InvoiceResponse salida de la factura.
type InvoiceResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	OrderID           string          `json:"order_id"`
	ClientID          string          `json:"client_id"`
	Number            string          `json:"number"`
	IssueDate         string          `json:"issue_date"`
	DueDate           string          `json:"due_date"`
	PaymentDate       *time.Time      `json:"payment_date,omitempty"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Status            string          `json:"status"`
	DeliveryPerson    string          `json:"delivery_person,omitempty"`
	DeliveryRecipient string          `json:"delivery_recipient,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedBy         string          `json:"created_by"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewInvoiceResponse mapea la factura.
func NewInvoiceResponse(inv *entity.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		ID:                inv.ID,
		CompanyID:         inv.CompanyID,
		OrderID:           inv.OrderID,
		ClientID:          inv.ClientID,
		Number:            inv.Number,
		IssueDate:         inv.IssueDate.Format("2006-01-02"),
		DueDate:           inv.DueDate.Format("2006-01-02"),
		PaymentDate:       inv.PaymentDate,
		Subtotal:          inv.Subtotal,
		TaxRate:           inv.TaxRate,
		TaxAmount:         inv.TaxAmount,
		TotalAmount:       inv.TotalAmount,
		Status:            inv.Status,
		DeliveryPerson:    inv.DeliveryPerson,
		DeliveryRecipient: inv.DeliveryRecipient,
		Notes:             inv.Notes,
		CreatedBy:         inv.CreatedBy,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
}
