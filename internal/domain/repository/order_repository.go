package repository

import (
	"context"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia de maquilas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetByIDForUpdate bloquea la maquila (SELECT ... FOR UPDATE) dentro de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// Update persiste los campos editables y los sellos de estado si el estado
	// almacenado sigue siendo prevState. Devuelve domain.ErrConflict si otro lo cambió.
	// Nunca modifica el número.
	Update(ctx context.Context, order *entity.Order, prevState entity.OrderState) error
	List(ctx context.Context, companyID string, filter entity.OrderFilter) ([]*entity.Order, error)
	Delete(ctx context.Context, companyID, id string) error
}

// ToastingRepository puerto del proceso de tostión (1:1 con la maquila).
type ToastingRepository interface {
	Create(ctx context.Context, p *entity.ToastingProcess) error
	GetByOrder(ctx context.Context, companyID, orderID string) (*entity.ToastingProcess, error)
	Update(ctx context.Context, p *entity.ToastingProcess) error
}

// ProductionRepository puerto del proceso de producción (1:1 con la maquila).
type ProductionRepository interface {
	Create(ctx context.Context, p *entity.ProductionProcess) error
	GetByOrder(ctx context.Context, companyID, orderID string) (*entity.ProductionProcess, error)
}
