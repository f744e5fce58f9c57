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

// Pasos del formulario de tostión.
const (
	StepReception  = "reception"
	StepSetup      = "setup"
	StepMonitoring = "monitoring"
	StepCompletion = "completion"
)

var stepLabels = map[string]string{
	StepReception:  "recepción",
	StepSetup:      "inicio de tostión",
	StepMonitoring: "monitoreo",
	StepCompletion: "cierre de tostión",
}

// ToastingUseCase pasos del proceso de tostión de una maquila en in_toasting.
type ToastingUseCase struct {
	core *Core
}

// NewToastingUseCase construye el caso de uso.
func NewToastingUseCase(core *Core) *ToastingUseCase {
	return &ToastingUseCase{core: core}
}

// CreateStep ejecuta un paso de tostión. El paso completion cierra el sub-proceso y
// mueve la maquila a toasting_complete en la misma transacción.
func (uc *ToastingUseCase) CreateStep(ctx context.Context, principalID, orderID, step string, in dto.ToastingStepRequest) (*entity.ToastingProcess, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	label, ok := stepLabels[step]
	if !ok {
		return nil, domain.Invalid("paso de tostión desconocido: %q", step)
	}

	var (
		process *entity.ToastingProcess
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
		if err := s.Require(o.CompanyID); err != nil {
			return err
		}
		if o.State != entity.StateInToasting {
			return fmt.Errorf("%w: la maquila %s está en %s, no en tostión", domain.ErrIllegalTransition, o.Number, o.State)
		}
		p, err := r.Toasting.GetByOrder(ctx, o.CompanyID, o.ID)
		if err != nil {
			return err
		}
		action := policy.ActionChange
		if p == nil {
			action = policy.ActionCreate
		}
		if err := policy.Check(s, policy.EntityToasting, action); err != nil {
			return err
		}

		now := c.now()
		if p == nil {
			if step != StepReception {
				return fmt.Errorf("%w: falta la recepción del café", domain.ErrIllegalTransition)
			}
			received := o.QuantityKg
			if in.ReceivedKg != nil {
				received = *in.ReceivedKg
			}
			p, err = workflow.NewToasting(c.newID(), o, received, s.UserID(), now)
			if err != nil {
				return err
			}
			if err := r.Toasting.Create(ctx, p); err != nil {
				return err
			}
			process, order = p, o
			return nil
		}

		switch step {
		case StepReception:
			if in.ReceivedKg == nil {
				return domain.Invalid("received_kg obligatorio")
			}
			err = workflow.UpdateReceived(p, *in.ReceivedKg, now)
		case StepSetup:
			err = workflow.Start(p, workflow.StartParams{
				Equipment:            in.Equipment,
				RoastType:            in.RoastType,
				InitialTemperature:   in.InitialTemperature,
				TargetTemperature:    in.TargetTemperature,
				EstimatedTimeMinutes: in.EstimatedTimeMinutes,
			}, s.UserID(), now)
		case StepMonitoring:
			err = workflow.UpdateMonitoring(p, workflow.MonitoringReading{
				Temperature: in.CurrentTemperature,
				Humidity:    in.Humidity,
				Notes:       in.Notes,
			}, s.UserID(), now)
		case StepCompletion:
			err = workflow.Complete(p, workflow.CompleteParams{
				ProcessedKg:  in.ProcessedKg,
				QualityGrade: in.QualityGrade,
				QualityNotes: in.QualityNotes,
			}, s.UserID(), now)
		}
		if err != nil {
			return err
		}
		if err := r.Toasting.Update(ctx, p); err != nil {
			return err
		}
		if step == StepCompletion {
			if err := c.transitionInTx(ctx, r, s, o, entity.StateToastingComplete); err != nil {
				return err
			}
		}
		process, order = p, o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if step == StepCompletion {
		c.afterTransition(ctx, s, order, entity.StateInToasting, "")
	} else {
		c.record(ctx, s, order.CompanyID, entity.ActionToastingStep,
			fmt.Sprintf("Maquila %s: %s (%s)", order.Number, label, process.State), order.ID, "")
	}
	return process, nil
}

// Get devuelve el proceso de tostión de la maquila.
func (uc *ToastingUseCase) Get(ctx context.Context, principalID, orderID string) (*entity.ToastingProcess, error) {
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
	p, err := c.repos.Toasting.GetByOrder(ctx, o.CompanyID, o.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
