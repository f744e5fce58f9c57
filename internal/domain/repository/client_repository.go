package repository

import (
	"context"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// ClientRepository puerto de persistencia de clientes. Las consultas de conjunto exigen companyID.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByDocument(ctx context.Context, companyID, documentNumber string) (*entity.Client, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, companyID, id string) error
}
