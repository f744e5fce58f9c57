package workflow

import (
	"fmt"
	"time"

	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// Acciones sobre el estado de una empresa.
const (
	CompanySuspend  = "suspend"
	CompanyActivate = "activate"
	CompanyCancel   = "cancel"
)

// ApplyCompanyAction aplica la acción y devuelve si hubo cambio.
// cancelled es terminal; activar una empresa activa no cambia nada.
func ApplyCompanyAction(c *entity.Company, action, reason string, now time.Time) (bool, error) {
	switch action {
	case CompanySuspend:
		if c.Status != entity.CompanyStatusActive {
			return false, fmt.Errorf("%w: no se puede suspender una empresa %s", domain.ErrIllegalTransition, c.Status)
		}
		ts := now
		c.Status = entity.CompanyStatusSuspended
		c.SuspensionReason = reason
		c.SuspendedAt = &ts
	case CompanyActivate:
		switch c.Status {
		case entity.CompanyStatusActive:
			return false, nil
		case entity.CompanyStatusCancelled:
			return false, fmt.Errorf("%w: una empresa cancelada no se reactiva", domain.ErrIllegalTransition)
		}
		c.Status = entity.CompanyStatusActive
		c.SuspensionReason = ""
		c.SuspendedAt = nil
	case CompanyCancel:
		if c.Status == entity.CompanyStatusCancelled {
			return false, fmt.Errorf("%w: la empresa ya está cancelada", domain.ErrIllegalTransition)
		}
		c.Status = entity.CompanyStatusCancelled
	default:
		return false, domain.Invalid("acción de empresa desconocida: %q", action)
	}
	c.UpdatedAt = now
	return true, nil
}
