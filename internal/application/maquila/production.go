package maquila

import (
	"context"
	"fmt"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/policy"
	"github.com/jhoicas/Maquila-api/internal/domain/workflow"
)

// ProductionUseCase registro del proceso de producción.
type ProductionUseCase struct {
	core *Core
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(core *Core) *ProductionUseCase {
	return &ProductionUseCase{core: core}
}

// Create registra la producción de una maquila en in_production y la mueve a
// ready_for_billing en la misma transacción. Los controles de calidad solo bloquean
// cuando la configuración lo exige.
func (uc *ProductionUseCase) Create(ctx context.Context, principalID, orderID string, in dto.ProductionRequest) (*entity.ProductionProcess, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}

	var (
		process *entity.ProductionProcess
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
		if err := policy.CheckIn(s, o.CompanyID, policy.EntityProduction, policy.ActionCreate); err != nil {
			return err
		}
		if o.State != entity.StateInProduction {
			return fmt.Errorf("%w: la maquila %s está en %s, no en producción", domain.ErrIllegalTransition, o.Number, o.State)
		}
		existing, err := r.Production.GetByOrder(ctx, o.CompanyID, o.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: la maquila %s ya tiene producción", domain.ErrDuplicate, o.Number)
		}

		now := c.now()
		p := &entity.ProductionProcess{
			ID:               c.newID(),
			CompanyID:        o.CompanyID,
			OrderID:          o.ID,
			ProcessType:      in.ProcessType,
			GrindingType:     in.GrindingType,
			PackagingDetails: in.PackagingDetails,
			FinalWeightKg:    in.FinalWeightKg,
			UnitsProduced:    in.UnitsProduced,
			WeightVerified:   in.WeightVerified,
			PackagingIntact:  in.PackagingIntact,
			LabelingCorrect:  in.LabelingCorrect,
			ProductionNotes:  in.ProductionNotes,
			ProducedBy:       s.UserID(),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := workflow.ValidateProduction(p, c.settings.RequireProductionQuality); err != nil {
			return err
		}
		if err := r.Production.Create(ctx, p); err != nil {
			return err
		}
		if err := c.transitionInTx(ctx, r, s, o, entity.StateReadyForBilling); err != nil {
			return err
		}
		process, order = p, o
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.afterTransition(ctx, s, order, entity.StateInProduction, "")
	return process, nil
}

// Get devuelve el proceso de producción de la maquila.
func (uc *ProductionUseCase) Get(ctx context.Context, principalID, orderID string) (*entity.ProductionProcess, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	o, err := c.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.Require(o.CompanyID); err != nil {
		return nil, err
	}
	p, err := c.repos.Production.GetByOrder(ctx, o.CompanyID, o.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
