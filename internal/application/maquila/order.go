package maquila

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/application/ports"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/policy"
	"github.com/jhoicas/Maquila-api/internal/domain/workflow"
)

// OrderUseCase registro, edición, consulta y transiciones de maquilas.
type OrderUseCase struct {
	core *Core
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(core *Core) *OrderUseCase {
	return &OrderUseCase{core: core}
}

// Create registra una maquila en estado registered con número MAQ-NIT-YYYYMMDD-NNN.
// La empresa de la maquila es la del cliente, que debe coincidir con la del principal.
func (uc *OrderUseCase) Create(ctx context.Context, principalID string, in dto.CreateOrderRequest) (*entity.Order, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	client, err := c.repos.Clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.CheckIn(s, client.CompanyID, policy.EntityOrder, policy.ActionCreate); err != nil {
		return nil, err
	}
	if !client.IsActive {
		return nil, domain.Invalid("el cliente está inactivo")
	}

	now := c.now()
	if !in.QuantityKg.IsPositive() {
		return nil, domain.Invalid("la cantidad debe ser mayor que cero")
	}
	if err := validateCoffeeType(in.CoffeeType); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.PackagingType) == "" {
		return nil, domain.Invalid("tipo de empaque obligatorio")
	}
	if err := validateDelivery(in.DeliveryMethod, in.DeliveryAddress); err != nil {
		return nil, err
	}
	committed, err := c.committedDate(in.CommittedDate, now)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:                 c.newID(),
		CompanyID:          client.CompanyID,
		ClientID:           client.ID,
		QuantityKg:         in.QuantityKg,
		CoffeeType:         in.CoffeeType,
		OriginalCoffeeType: in.CoffeeType,
		PackagingType:      strings.TrimSpace(in.PackagingType),
		PackagingDetails:   in.PackagingDetails,
		DeliveryMethod:     in.DeliveryMethod,
		DeliveryAddress:    in.DeliveryAddress,
		CommittedDate:      committed,
		Notes:              in.Notes,
		InternalNotes:      in.InternalNotes,
		State:              entity.StateRegistered,
		RegisteredAt:       now,
		CreatedBy:          s.UserID(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	workflow.ApplyDerivedFields(order)

	err = c.tx.RunMaquila(ctx, func(r Repos) error {
		number, err := c.nextNumber(ctx, r, order.CompanyID, workflow.SequenceOrder, c.settings.OrderPrefix, now)
		if err != nil {
			return err
		}
		order.Number = number
		return r.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	c.record(ctx, s, order.CompanyID, entity.ActionMaquilaCreate,
		fmt.Sprintf("Maquila %s registrada para %s (%s kg)", order.Number, client.Name, order.QuantityKg), order.ID, "")
	c.notify(ctx, ports.Notification{
		Event:     ports.EventOrderCreated,
		CompanyID: order.CompanyID,
		OrderID:   order.ID,
		Audience:  ports.AudienceClient,
	})
	return order, nil
}

// Update edita los campos operativos. La edición sigue la misma tabla de roles que las
// transiciones; las maquilas en estado terminal son de solo lectura. El número no cambia.
func (uc *OrderUseCase) Update(ctx context.Context, principalID, orderID string, in dto.UpdateOrderRequest) (*entity.Order, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}

	var order *entity.Order
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
		if workflow.IsTerminal(o.State) {
			return fmt.Errorf("%w: maquila %s en estado %s", domain.ErrIllegalTransition, o.Number, o.State)
		}
		if err := policy.CanTransition(s, o); err != nil {
			return err
		}
		if err := c.applyUpdate(o, in); err != nil {
			return err
		}
		o.UpdatedAt = c.now()
		workflow.ApplyDerivedFields(o)
		if err := r.Orders.Update(ctx, o, o.State); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.record(ctx, s, order.CompanyID, entity.ActionMaquilaUpdate,
		fmt.Sprintf("Maquila %s actualizada", order.Number), order.ID, "")
	return order, nil
}

func (c *Core) applyUpdate(o *entity.Order, in dto.UpdateOrderRequest) error {
	if in.CoffeeType != nil {
		if err := validateCoffeeType(*in.CoffeeType); err != nil {
			return err
		}
		o.CoffeeType = *in.CoffeeType
	}
	if in.KgAfterHulling != nil {
		kg := *in.KgAfterHulling
		if kg.IsNegative() || kg.GreaterThan(o.QuantityKg) {
			return domain.Invalid("kg después de trilla debe estar entre 0 y la cantidad recibida")
		}
		o.KgAfterHulling = &kg
	}
	if in.PackagingType != nil {
		if strings.TrimSpace(*in.PackagingType) == "" {
			return domain.Invalid("tipo de empaque obligatorio")
		}
		o.PackagingType = strings.TrimSpace(*in.PackagingType)
	}
	if in.PackagingDetails != nil {
		o.PackagingDetails = *in.PackagingDetails
	}
	method, address := o.DeliveryMethod, o.DeliveryAddress
	if in.DeliveryMethod != nil {
		method = *in.DeliveryMethod
	}
	if in.DeliveryAddress != nil {
		address = *in.DeliveryAddress
	}
	if err := validateDelivery(method, address); err != nil {
		return err
	}
	o.DeliveryMethod, o.DeliveryAddress = method, address
	if in.CommittedDate != nil {
		d, err := c.committedDate(*in.CommittedDate, c.now())
		if err != nil {
			return err
		}
		o.CommittedDate = d
	}
	if in.Notes != nil {
		o.Notes = *in.Notes
	}
	if in.InternalNotes != nil {
		o.InternalNotes = *in.InternalNotes
	}
	return nil
}

// Delete elimina la maquila (solo admin_company del tenant o super_admin).
func (uc *OrderUseCase) Delete(ctx context.Context, principalID, orderID string) error {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return err
	}
	o, err := c.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	if err := policy.CheckIn(s, o.CompanyID, policy.EntityOrder, policy.ActionDelete); err != nil {
		return err
	}
	if err := c.tx.RunMaquila(ctx, func(r Repos) error {
		return r.Orders.Delete(ctx, o.CompanyID, o.ID)
	}); err != nil {
		return err
	}
	c.record(ctx, s, o.CompanyID, entity.ActionMaquilaDelete,
		fmt.Sprintf("Maquila %s eliminada (estado %s)", o.Number, o.State), "", "")
	return nil
}

// Get obtiene una maquila del tenant del principal.
func (uc *OrderUseCase) Get(ctx context.Context, principalID, orderID string) (*entity.Order, error) {
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
	return o, nil
}

// List lista maquilas del tenant con filtros de estado y cliente.
func (uc *OrderUseCase) List(ctx context.Context, principalID string, in dto.OrderListRequest) ([]*entity.Order, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	companyID, err := targetCompany(s, in.CompanyID)
	if err != nil {
		return nil, err
	}
	state := entity.OrderState(in.State)
	if state != "" && !workflow.ValidState(state) {
		return nil, domain.Invalid("estado desconocido: %q", in.State)
	}
	in.DefaultPage()
	return c.repos.Orders.List(ctx, companyID, entity.OrderFilter{
		State:    state,
		ClientID: in.ClientID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
}

// Now reloj del núcleo (para calcular vencimientos en las respuestas).
func (uc *OrderUseCase) Now() time.Time {
	return uc.core.now()
}

func validateCoffeeType(t string) error {
	switch t {
	case entity.CoffeeTypeCPS, entity.CoffeeTypeExcelso:
		return nil
	}
	return domain.Invalid("tipo de café inválido: %q", t)
}

func validateDelivery(method, address string) error {
	switch method {
	case entity.DeliveryPickup:
		return nil
	case entity.DeliveryDelivery, entity.DeliveryShipping:
		if strings.TrimSpace(address) == "" {
			return domain.Invalid("dirección de entrega obligatoria para %s", method)
		}
		return nil
	}
	return domain.Invalid("método de entrega inválido: %q", method)
}

// committedDate parsea la fecha comprometida y exige que no esté en el pasado.
func (c *Core) committedDate(value string, now time.Time) (time.Time, error) {
	d, err := parseDate("committed_date", value, c.settings.Location)
	if err != nil {
		return time.Time{}, err
	}
	if d.Before(workflow.SequenceDay(now, c.settings.Location)) {
		return time.Time{}, domain.Invalid("la fecha comprometida no puede estar en el pasado")
	}
	return d, nil
}
