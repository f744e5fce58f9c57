// Package policy decide qué rol puede ejecutar cada acción del flujo de maquila.
package policy

import (
	"fmt"

	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/tenant"
)

// Entity recurso protegido.
type Entity string

const (
	EntityClient     Entity = "client"
	EntityOrder      Entity = "order"
	EntityToasting   Entity = "toasting_process"
	EntityProduction Entity = "production_process"
	EntityInvoice    Entity = "invoice"
	EntityUser       Entity = "user"
	EntityCompany    Entity = "company"
)

// Action operación sobre un recurso.
type Action string

const (
	ActionCreate Action = "create"
	ActionChange Action = "change"
	ActionDelete Action = "delete"
)

// transitionRoles roles que pueden mover una maquila según su estado ACTUAL.
// admin_company pasa siempre.
var transitionRoles = map[entity.OrderState][]string{
	entity.StateRegistered:       {entity.RoleAuxRegistro},
	entity.StateInToasting:       {entity.RoleAuxTostion},
	entity.StateToastingComplete: {entity.RoleAuxProduccion},
	entity.StateInProduction:     {entity.RoleAuxProduccion},
	entity.StateReadyForBilling:  {entity.RoleAuxFacturacion},
	entity.StateBilled:           nil,
	entity.StateDelivered:        nil,
	entity.StateCancelled:        nil,
}

type grant struct {
	entity Entity
	action Action
}

// entityRoles listas estáticas por recurso y acción (además de admin_company).
var entityRoles = map[grant][]string{
	{EntityClient, ActionCreate}:     {entity.RoleAuxRegistro},
	{EntityClient, ActionChange}:     {entity.RoleAuxRegistro},
	{EntityClient, ActionDelete}:     nil,
	{EntityOrder, ActionCreate}:      {entity.RoleAuxRegistro},
	{EntityOrder, ActionDelete}:      nil,
	{EntityToasting, ActionCreate}:   {entity.RoleAuxTostion},
	{EntityToasting, ActionChange}:   {entity.RoleAuxTostion},
	{EntityToasting, ActionDelete}:   nil,
	{EntityProduction, ActionCreate}: {entity.RoleAuxProduccion},
	{EntityProduction, ActionChange}: {entity.RoleAuxProduccion},
	{EntityProduction, ActionDelete}: nil,
	{EntityInvoice, ActionCreate}:    {entity.RoleAuxFacturacion},
	{EntityInvoice, ActionChange}:    {entity.RoleAuxFacturacion},
	{EntityInvoice, ActionDelete}:    nil,
	{EntityUser, ActionCreate}:       nil,
	{EntityUser, ActionChange}:       nil,
	{EntityUser, ActionDelete}:       nil,
}

// CanTransition autoriza mover la maquila desde su estado actual.
// Un principal de otro tenant recibe ErrScope; un rol sin permiso, ErrForbidden.
func CanTransition(s tenant.Scope, order *entity.Order) error {
	if s.IsSuperAdmin() {
		return nil
	}
	if err := s.Require(order.CompanyID); err != nil {
		return err
	}
	if s.Role() == entity.RoleAdminCompany {
		return nil
	}
	if contains(transitionRoles[order.State], s.Role()) {
		return nil
	}
	return fmt.Errorf("%w: rol %s no puede mover maquilas en estado %s", domain.ErrForbidden, s.Role(), order.State)
}

// Check autoriza una acción estática sobre un recurso.
// La edición de maquilas usa la tabla de estados (CanTransition).
func Check(s tenant.Scope, e Entity, a Action) error {
	if s.IsSuperAdmin() {
		return nil
	}
	if e == EntityCompany {
		return fmt.Errorf("%w: solo super_admin administra empresas", domain.ErrForbidden)
	}
	if s.Role() == entity.RoleAdminCompany {
		return nil
	}
	roles, ok := entityRoles[grant{e, a}]
	if ok && contains(roles, s.Role()) {
		return nil
	}
	return fmt.Errorf("%w: rol %s no puede %s %s", domain.ErrForbidden, s.Role(), a, e)
}

// CheckIn igual que Check pero además exige que el registro pertenezca al tenant del principal.
func CheckIn(s tenant.Scope, companyID string, e Entity, a Action) error {
	if err := s.Require(companyID); err != nil {
		return err
	}
	return Check(s, e, a)
}

func contains(list []string, role string) bool {
	for _, r := range list {
		if r == role {
			return true
		}
	}
	return false
}
