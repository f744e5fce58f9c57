// Package workflow contiene las máquinas de estado y los cálculos derivados del flujo de maquila.
package workflow

import (
	"fmt"
	"time"

	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// transitions tabla exhaustiva de transiciones de la maquila.
var transitions = map[entity.OrderState][]entity.OrderState{
	entity.StateRegistered:       {entity.StateInToasting, entity.StateCancelled},
	entity.StateInToasting:       {entity.StateToastingComplete, entity.StateCancelled},
	entity.StateToastingComplete: {entity.StateInProduction, entity.StateCancelled},
	entity.StateInProduction:     {entity.StateReadyForBilling, entity.StateCancelled},
	entity.StateReadyForBilling:  {entity.StateBilled, entity.StateCancelled},
	entity.StateBilled:           {entity.StateDelivered, entity.StateCancelled},
	entity.StateDelivered:        nil,
	entity.StateCancelled:        nil,
}

// ValidState indica si s es un estado conocido.
func ValidState(s entity.OrderState) bool {
	_, ok := transitions[s]
	return ok
}

// AllowedTargets estados alcanzables desde from.
func AllowedTargets(from entity.OrderState) []entity.OrderState {
	out := make([]entity.OrderState, len(transitions[from]))
	copy(out, transitions[from])
	return out
}

// CanTransition indica si from → to está en la tabla.
func CanTransition(from, to entity.OrderState) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// IsTerminal delivered y cancelled no admiten más transiciones ni ediciones.
func IsTerminal(s entity.OrderState) bool {
	return s == entity.StateDelivered || s == entity.StateCancelled
}

// Transition mueve la maquila a target, sella la marca de tiempo y el responsable del destino.
// Los sellos anteriores no se modifican. cancelled no tiene marca de tiempo.
func Transition(o *entity.Order, target entity.OrderState, actorID string, now time.Time) error {
	if !CanTransition(o.State, target) {
		return fmt.Errorf("%w: %s → %s", domain.ErrIllegalTransition, o.State, target)
	}
	ts := now
	switch target {
	case entity.StateInToasting:
		o.ToastingStartedAt, o.ToastingStartedBy = &ts, actorID
	case entity.StateToastingComplete:
		o.ToastingCompletedAt, o.ToastedBy = &ts, actorID
	case entity.StateInProduction:
		o.ProductionStartedAt, o.ProductionStartedBy = &ts, actorID
	case entity.StateReadyForBilling:
		o.ProductionCompletedAt, o.ProducedBy = &ts, actorID
	case entity.StateBilled:
		o.BilledAt, o.BilledBy = &ts, actorID
	case entity.StateDelivered:
		o.DeliveredAt, o.DeliveredBy = &ts, actorID
	case entity.StateCancelled:
		o.CancelledBy = actorID
	}
	o.State = target
	o.UpdatedAt = now
	return nil
}
