package repository

import (
	"context"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia de facturas de maquila.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	GetByOrder(ctx context.Context, companyID, orderID string) (*entity.Invoice, error)
	// Update persiste estado, fecha de pago y montos recalculados. Nunca modifica el número.
	Update(ctx context.Context, invoice *entity.Invoice) error
}
