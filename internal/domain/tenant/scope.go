// Package tenant resuelve el alcance (empresa activa) del principal que ejecuta una operación.
package tenant

import (
	"fmt"

	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// Scope valor inmutable con la identidad y el tenant del principal.
// Se construye con Resolve y se pasa explícitamente a cada operación.
type Scope struct {
	userID    string
	role      string
	companyID string
}

// UserID del principal.
func (s Scope) UserID() string { return s.userID }

// Role del principal.
func (s Scope) Role() string { return s.role }

// CompanyID del tenant del principal; vacío para super_admin sin empresa.
func (s Scope) CompanyID() string { return s.companyID }

// IsSuperAdmin indica si el principal opera sobre todos los tenants.
func (s Scope) IsSuperAdmin() bool { return s.role == entity.RoleSuperAdmin }

// Require verifica que un registro del tenant companyID sea accesible.
func (s Scope) Require(companyID string) error {
	if s.IsSuperAdmin() {
		return nil
	}
	if companyID == "" || companyID != s.companyID {
		return fmt.Errorf("%w: registro de otra empresa", domain.ErrScope)
	}
	return nil
}

// Resolve construye el Scope. company puede ser nil cuando el usuario no tiene empresa.
// Falla con ErrScope si el usuario está inactivo, si no es super_admin y no tiene empresa
// o si su empresa no está activa. No tiene efectos secundarios.
func Resolve(user *entity.User, company *entity.Company) (Scope, error) {
	if user == nil || !user.IsActive() {
		return Scope{}, fmt.Errorf("%w: usuario inactivo", domain.ErrScope)
	}
	if user.CompanyID == "" {
		if user.Role != entity.RoleSuperAdmin {
			return Scope{}, fmt.Errorf("%w: usuario sin empresa", domain.ErrScope)
		}
		return Scope{userID: user.ID, role: user.Role}, nil
	}
	if company == nil || company.ID != user.CompanyID {
		return Scope{}, fmt.Errorf("%w: empresa del usuario no encontrada", domain.ErrScope)
	}
	if !company.IsActive() {
		return Scope{}, fmt.Errorf("%w: empresa %s", domain.ErrScope, company.Status)
	}
	return Scope{userID: user.ID, role: user.Role, companyID: company.ID}, nil
}

// System scope de procesos internos sin principal (semillas, tareas programadas).
func System() Scope {
	return Scope{role: entity.RoleSuperAdmin}
}
