package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, company_id, order_id, client_id, number, issue_date, due_date, payment_date,
	subtotal, tax_rate, tax_amount, total_amount, status, delivery_person, delivery_recipient, notes,
	created_by, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la factura con número y montos ya calculados.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO maquila_invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.OrderID, inv.ClientID, inv.Number, inv.IssueDate, inv.DueDate, inv.PaymentDate,
		inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.TotalAmount, inv.Status,
		inv.DeliveryPerson, inv.DeliveryRecipient, inv.Notes,
		nullIfEmpty(inv.CreatedBy), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, inv.Number)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM maquila_invoices WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la factura bloqueando la fila.
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM maquila_invoices WHERE id = $1 FOR UPDATE`, id)
}

// GetByOrder factura de la maquila, si existe.
func (r *InvoiceRepo) GetByOrder(ctx context.Context, companyID, orderID string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM maquila_invoices WHERE company_id = $1 AND order_id = $2`,
		companyID, orderID)
}

// Update persiste estado, fecha de pago y montos. El número no se modifica.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE maquila_invoices
		SET status        = $2,
		    payment_date  = $3,
		    subtotal      = $4,
		    tax_rate      = $5,
		    tax_amount    = $6,
		    total_amount  = $7,
		    notes         = $8,
		    updated_at    = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		inv.ID, inv.Status, inv.PaymentDate, inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.TotalAmount,
		inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv       entity.Invoice
		createdBy *string
	)
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.OrderID, &inv.ClientID, &inv.Number, &inv.IssueDate, &inv.DueDate, &inv.PaymentDate,
		&inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.TotalAmount, &inv.Status,
		&inv.DeliveryPerson, &inv.DeliveryRecipient, &inv.Notes,
		&createdBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.CreatedBy = deref(createdBy)
	return &inv, nil
}
