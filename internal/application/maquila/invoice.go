package maquila

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/application/ports"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/policy"
	"github.com/jhoicas/Maquila-api/internal/domain/workflow"
)

var invoiceAudit = map[string]string{
	workflow.InvoicePay:     entity.ActionInvoicePayment,
	workflow.InvoiceOverdue: entity.ActionInvoiceOverdue,
	workflow.InvoiceCancel:  entity.ActionInvoiceCancel,
}

// InvoiceUseCase facturación de maquilas.
type InvoiceUseCase struct {
	core      *Core
	generator ports.InvoicePDFGenerator
}

// NewInvoiceUseCase construye el caso de uso. generator puede ser nil si no se exponen PDFs.
func NewInvoiceUseCase(core *Core, generator ports.InvoicePDFGenerator) *InvoiceUseCase {
	return &InvoiceUseCase{core: core, generator: generator}
}

// Create factura una maquila en ready_for_billing: asigna FAC-NIT-YYYYMMDD-NNN, calcula
// impuesto y total y mueve la maquila a billed en la misma transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, principalID, orderID string, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}

	now := c.now()
	issue := workflow.SequenceDay(now, c.settings.Location)
	if in.IssueDate != "" {
		if issue, err = parseDate("issue_date", in.IssueDate, c.settings.Location); err != nil {
			return nil, err
		}
	}
	due, err := parseDate("due_date", in.DueDate, c.settings.Location)
	if err != nil {
		return nil, err
	}
	rate := c.settings.DefaultTaxRate
	if in.TaxRate != nil {
		rate = *in.TaxRate
	}

	var (
		invoice *entity.Invoice
		order   *entity.Order
	)
	err = c.tx.RunMaquila(ctx, func(r Repos) error {
		o, err := r.Orders.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if err := policy.CheckIn(s, o.CompanyID, policy.EntityInvoice, policy.ActionCreate); err != nil {
			return err
		}
		if o.State != entity.StateReadyForBilling {
			return fmt.Errorf("%w: la maquila %s está en %s, no lista para facturar", domain.ErrIllegalTransition, o.Number, o.State)
		}
		existing, err := r.Invoices.GetByOrder(ctx, o.CompanyID, o.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: la maquila %s ya tiene factura %s", domain.ErrDuplicate, o.Number, existing.Number)
		}

		inv := &entity.Invoice{
			ID:                c.newID(),
			CompanyID:         o.CompanyID,
			OrderID:           o.ID,
			ClientID:          o.ClientID,
			IssueDate:         issue,
			DueDate:           due,
			Subtotal:          in.Subtotal,
			TaxRate:           rate,
			Status:            entity.InvoiceStatusPending,
			DeliveryPerson:    in.DeliveryPerson,
			DeliveryRecipient: in.DeliveryRecipient,
			Notes:             in.Notes,
			CreatedBy:         s.UserID(),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := workflow.ValidateInvoice(inv); err != nil {
			return err
		}
		workflow.ComputeInvoiceTotals(inv)

		number, err := c.nextNumber(ctx, r, o.CompanyID, workflow.SequenceInvoice, c.settings.InvoicePrefix, now)
		if err != nil {
			return err
		}
		inv.Number = number
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		if err := c.transitionInTx(ctx, r, s, o, entity.StateBilled); err != nil {
			return err
		}
		invoice, order = inv, o
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.afterTransition(ctx, s, order, entity.StateReadyForBilling, invoice.ID)
	return invoice, nil
}

// ChangeStatus registra pago, mora o anulación de la factura.
func (uc *InvoiceUseCase) ChangeStatus(ctx context.Context, principalID, invoiceID string, in dto.InvoiceStatusRequest) (*entity.Invoice, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	var paymentDate time.Time
	if in.PaymentDate != "" {
		if paymentDate, err = parseDate("payment_date", in.PaymentDate, c.settings.Location); err != nil {
			return nil, err
		}
	}

	var invoice *entity.Invoice
	err = c.tx.RunMaquila(ctx, func(r Repos) error {
		inv, err := r.Invoices.GetByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := policy.CheckIn(s, inv.CompanyID, policy.EntityInvoice, policy.ActionChange); err != nil {
			return err
		}
		if err := workflow.ApplyInvoiceAction(inv, in.Action, paymentDate, c.now()); err != nil {
			return err
		}
		workflow.ComputeInvoiceTotals(inv)
		if err := r.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.record(ctx, s, invoice.CompanyID, invoiceAudit[in.Action],
		fmt.Sprintf("Factura %s: %s", invoice.Number, invoice.Status), invoice.OrderID, invoice.ID)
	if invoice.Status == entity.InvoiceStatusPaid {
		c.notify(ctx, ports.Notification{
			Event:     ports.EventInvoicePaid,
			CompanyID: invoice.CompanyID,
			OrderID:   invoice.OrderID,
			InvoiceID: invoice.ID,
			Audience:  ports.AudienceClient,
		})
	}
	return invoice, nil
}

// Get obtiene una factura del tenant del principal.
func (uc *InvoiceUseCase) Get(ctx context.Context, principalID, invoiceID string) (*entity.Invoice, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	inv, err := c.repos.Invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.Require(inv.CompanyID); err != nil {
		return nil, err
	}
	return inv, nil
}

// PDF genera la representación gráfica de la factura y el nombre de archivo sugerido.
func (uc *InvoiceUseCase) PDF(ctx context.Context, principalID, invoiceID string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	inv, err := uc.Get(ctx, principalID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	repos := uc.core.repos
	order, err := repos.Orders.GetByID(ctx, inv.OrderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener maquila: %w", err)
	}
	company, err := repos.Companies.GetByID(ctx, inv.CompanyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	client, err := repos.Clients.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if order == nil || company == nil || client == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.generator.GenerateInvoicePDF(ctx, inv, order, company, client)
	if err != nil {
		return nil, "", err
	}
	return pdf, inv.Number + ".pdf", nil
}
