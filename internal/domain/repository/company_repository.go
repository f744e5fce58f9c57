package repository

import (
	"context"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// Los métodos de lectura devuelven (nil, nil) cuando no existe el registro.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error)
	GetByNIT(ctx context.Context, nit string) (*entity.Company, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	UpdateStatus(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}
