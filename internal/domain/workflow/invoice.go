package workflow

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// Acciones sobre el estado de la factura.
const (
	InvoicePay     = "pay"
	InvoiceOverdue = "overdue"
	InvoiceCancel  = "cancel"
)

// ComputeInvoiceTotals recalcula impuesto y total (redondeo a 2 decimales). Idempotente.
func ComputeInvoiceTotals(inv *entity.Invoice) {
	inv.TaxAmount = inv.Subtotal.Mul(inv.TaxRate).Div(hundred).Round(2)
	inv.TotalAmount = inv.Subtotal.Add(inv.TaxAmount).Round(2)
}

// ValidateInvoice valida montos y fechas.
func ValidateInvoice(inv *entity.Invoice) error {
	if inv.Subtotal.IsNegative() {
		return domain.Invalid("el subtotal no puede ser negativo")
	}
	if inv.TaxRate.IsNegative() || inv.TaxRate.GreaterThan(hundred) {
		return domain.Invalid("la tasa de impuesto debe estar entre 0 y 100")
	}
	if inv.IssueDate.IsZero() || inv.DueDate.IsZero() {
		return domain.Invalid("fechas de emisión y vencimiento obligatorias")
	}
	if inv.DueDate.Before(inv.IssueDate) {
		return domain.Invalid("la fecha de vencimiento no puede ser anterior a la de emisión")
	}
	return nil
}

// ApplyInvoiceAction mueve el estado de la factura. paymentDate se usa solo al pagar.
func ApplyInvoiceAction(inv *entity.Invoice, action string, paymentDate, now time.Time) error {
	from := inv.Status
	var to string
	switch action {
	case InvoicePay:
		if from == entity.InvoiceStatusPending || from == entity.InvoiceStatusOverdue {
			to = entity.InvoiceStatusPaid
		}
	case InvoiceOverdue:
		if from == entity.InvoiceStatusPending {
			to = entity.InvoiceStatusOverdue
		}
	case InvoiceCancel:
		if from == entity.InvoiceStatusPending || from == entity.InvoiceStatusOverdue {
			to = entity.InvoiceStatusCancelled
		}
	default:
		return domain.Invalid("acción de factura desconocida: %q", action)
	}
	if to == "" {
		return fmt.Errorf("%w: factura %s no admite %s", domain.ErrIllegalTransition, from, action)
	}
	if to == entity.InvoiceStatusPaid {
		if paymentDate.IsZero() {
			paymentDate = now
		}
		pd := paymentDate
		inv.PaymentDate = &pd
	}
	inv.Status = to
	inv.UpdatedAt = now
	return nil
}

// DefaultTaxRate parsea la tasa configurada; 19 si es inválida.
func DefaultTaxRate(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NewFromInt(19)
	}
	return d
}
