package ports

import (
	"context"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación gráfica de la factura de maquila.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		order *entity.Order,
		company *entity.Company,
		client *entity.Client,
	) ([]byte, error)
}
