package entity

import "time"

// Estados de una empresa (tenant).
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusCancelled = "cancelled"
)

// Company representa una empresa maquiladora (tenant del sistema).
type Company struct {
	ID               string
	Name             string
	NIT              string // único global; forma parte de los consecutivos MAQ/FAC
	Slug             string // único global
	Address          string
	Phone            string
	Email            string
	Status           string // active, suspended, cancelled
	SuspensionReason string
	SuspendedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive indica si los usuarios de la empresa pueden operar.
func (c *Company) IsActive() bool {
	return c != nil && c.Status == CompanyStatusActive
}
