package maquila

import (
	"context"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// ActivityUseCase consulta de la bitácora.
type ActivityUseCase struct {
	core *Core
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(core *Core) *ActivityUseCase {
	return &ActivityUseCase{core: core}
}

// List devuelve la bitácora del tenant. super_admin puede omitir la empresa para ver todo.
// Solo admin_company y super_admin consultan la bitácora.
func (uc *ActivityUseCase) List(ctx context.Context, principalID string, in dto.ActivityListRequest) ([]*entity.ActivityLog, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	companyID := s.CompanyID()
	switch {
	case s.IsSuperAdmin():
		companyID = in.CompanyID
	case s.Role() != entity.RoleAdminCompany:
		return nil, domain.ErrForbidden
	}
	in.DefaultPage()
	return c.repos.Activity.List(ctx, entity.ActivityFilter{
		CompanyID: companyID,
		OrderID:   in.OrderID,
		Action:    in.Action,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
}
