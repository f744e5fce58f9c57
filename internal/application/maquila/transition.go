package maquila

import (
	"context"
	"fmt"

	"github.com/jhoicas/Maquila-api/internal/application/ports"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/policy"
	"github.com/jhoicas/Maquila-api/internal/domain/tenant"
	"github.com/jhoicas/Maquila-api/internal/domain/workflow"
)

// transitionAudit acción de bitácora según el estado destino.
var transitionAudit = map[entity.OrderState]string{
	entity.StateInToasting:       entity.ActionToastingStart,
	entity.StateToastingComplete: entity.ActionToastingComplete,
	entity.StateInProduction:     entity.ActionProductionStart,
	entity.StateReadyForBilling:  entity.ActionProductionComplete,
	entity.StateBilled:           entity.ActionInvoiceCreate,
	entity.StateDelivered:        entity.ActionOrderDelivered,
	entity.StateCancelled:        entity.ActionMaquilaCancel,
}

// RequestTransition mueve la maquila a target.
// Orden de verificación: alcance del tenant, estado terminal, rol según el estado actual,
// tabla de transiciones. Todo dentro de una transacción con la fila bloqueada.
func (uc *OrderUseCase) RequestTransition(ctx context.Context, principalID, orderID string, target entity.OrderState) (*entity.Order, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if !workflow.ValidState(target) {
		return nil, domain.Invalid("estado destino desconocido: %q", target)
	}

	var (
		order *entity.Order
		from  entity.OrderState
	)
	err = c.tx.RunMaquila(ctx, func(r Repos) error {
		o, err := r.Orders.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		from = o.State
		if err := c.transitionInTx(ctx, r, s, o, target); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.afterTransition(ctx, s, order, from, "")
	return order, nil
}

// transitionInTx aplica la transición sobre una maquila ya bloqueada por el llamador.
func (c *Core) transitionInTx(ctx context.Context, r Repos, s tenant.Scope, o *entity.Order, target entity.OrderState) error {
	if err := s.Require(o.CompanyID); err != nil {
		return err
	}
	if workflow.IsTerminal(o.State) {
		return fmt.Errorf("%w: maquila %s en estado terminal %s", domain.ErrIllegalTransition, o.Number, o.State)
	}
	if err := policy.CanTransition(s, o); err != nil {
		return err
	}
	if !workflow.CanTransition(o.State, target) {
		return fmt.Errorf("%w: %s → %s", domain.ErrIllegalTransition, o.State, target)
	}
	if err := c.guard(ctx, r, o, target); err != nil {
		return err
	}

	prev := o.State
	if err := workflow.Transition(o, target, s.UserID(), c.now()); err != nil {
		return err
	}
	workflow.ApplyDerivedFields(o)
	return r.Orders.Update(ctx, o, prev)
}

// guard condiciones de sub-procesos para avanzar.
func (c *Core) guard(ctx context.Context, r Repos, o *entity.Order, target entity.OrderState) error {
	if target != entity.StateToastingComplete {
		return nil
	}
	p, err := r.Toasting.GetByOrder(ctx, o.CompanyID, o.ID)
	if err != nil {
		return err
	}
	if p == nil || p.State != entity.ToastingCompleted {
		return domain.Invalid("la tostión de la maquila %s no está completada", o.Number)
	}
	return nil
}

// afterTransition auditoría y notificación posteriores al commit.
func (c *Core) afterTransition(ctx context.Context, s tenant.Scope, o *entity.Order, from entity.OrderState, invoiceID string) {
	c.record(ctx, s, o.CompanyID, transitionAudit[o.State],
		fmt.Sprintf("Maquila %s: %s → %s", o.Number, from, o.State), o.ID, invoiceID)

	n := ports.Notification{CompanyID: o.CompanyID, OrderID: o.ID, InvoiceID: invoiceID}
	switch o.State {
	case entity.StateReadyForBilling:
		n.Event, n.Audience = ports.EventReadyForBilling, ports.AudienceBillingTeam
	case entity.StateBilled:
		n.Event, n.Audience = ports.EventOrderBilled, ports.AudienceClient
		if invoiceID != "" {
			n.Event = ports.EventInvoiceCreated
		}
	case entity.StateDelivered:
		n.Event, n.Audience = ports.EventOrderDelivered, ports.AudienceClient
	default:
		return
	}
	c.notify(ctx, n)
}
