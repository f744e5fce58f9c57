package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin     = "super_admin"
	RoleAdminCompany   = "admin_company"
	RoleAuxRegistro    = "aux_registro"
	RoleAuxTostion     = "aux_tostion"
	RoleAuxProduccion  = "aux_produccion"
	RoleAuxFacturacion = "aux_facturacion"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// ValidRole indica si el rol pertenece al catálogo.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdminCompany, RoleAuxRegistro, RoleAuxTostion, RoleAuxProduccion, RoleAuxFacturacion:
		return true
	}
	return false
}

// User representa un principal del sistema. CompanyID vacío solo para super_admin.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede autenticarse y operar.
func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}
