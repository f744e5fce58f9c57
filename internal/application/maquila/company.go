package maquila

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/policy"
	"github.com/jhoicas/Maquila-api/internal/domain/workflow"
	"github.com/jhoicas/Maquila-api/pkg/nit"
	"github.com/jhoicas/Maquila-api/pkg/slug"
)

// maxSlugAttempts intentos de sufijo (-2, -3, ...) antes de rendirse.
const maxSlugAttempts = 50

var companyAudit = map[string]string{
	workflow.CompanySuspend:  entity.ActionCompanySuspend,
	workflow.CompanyActivate: entity.ActionCompanyActivate,
	workflow.CompanyCancel:   entity.ActionCompanyCancel,
}

// CompanyUseCase administración de empresas (solo super_admin).
type CompanyUseCase struct {
	core *Core
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(core *Core) *CompanyUseCase {
	return &CompanyUseCase{core: core}
}

// Create crea una empresa activa. NIT y slug son únicos; el slug se deriva del nombre.
func (uc *CompanyUseCase) Create(ctx context.Context, principalID string, in dto.CreateCompanyRequest) (*entity.Company, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(s, policy.EntityCompany, policy.ActionCreate); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.NIT) == "" {
		return nil, domain.Invalid("nombre y NIT obligatorios")
	}
	taxID, err := nit.Normalize(in.NIT)
	if err != nil {
		return nil, domain.Invalid("%v", err)
	}
	base := slug.Make(name)
	if base == "" {
		return nil, domain.Invalid("el nombre no genera un identificador válido")
	}

	now := c.now()
	company := &entity.Company{
		ID:        c.newID(),
		Name:      name,
		NIT:       taxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     strings.TrimSpace(in.Email),
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = c.tx.RunMaquila(ctx, func(r Repos) error {
		existing, err := r.Companies.GetByNIT(ctx, taxID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: NIT %s ya registrado", domain.ErrDuplicate, taxID)
		}
		if company.Slug, err = uniqueSlug(ctx, r, base); err != nil {
			return err
		}
		return r.Companies.Create(ctx, company)
	})
	if err != nil {
		return nil, err
	}
	c.record(ctx, s, company.ID, entity.ActionCompanyCreate, "Empresa creada: "+company.Name, "", "")
	return company, nil
}

func uniqueSlug(ctx context.Context, r Repos, base string) (string, error) {
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		exists, err := r.Companies.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("%w: slug %s agotado", domain.ErrDuplicate, base)
}

// SetStatus suspende, activa o cancela una empresa.
func (uc *CompanyUseCase) SetStatus(ctx context.Context, principalID, companyID string, in dto.CompanyStatusRequest) (*entity.Company, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(s, policy.EntityCompany, policy.ActionChange); err != nil {
		return nil, err
	}

	var (
		company *entity.Company
		changed bool
	)
	err = c.tx.RunMaquila(ctx, func(r Repos) error {
		co, err := r.Companies.GetByIDForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if co == nil {
			return domain.ErrNotFound
		}
		if changed, err = workflow.ApplyCompanyAction(co, in.Action, strings.TrimSpace(in.Reason), c.now()); err != nil {
			return err
		}
		if changed {
			if err := r.Companies.UpdateStatus(ctx, co); err != nil {
				return err
			}
		}
		company = co
		return nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		desc := fmt.Sprintf("Empresa %s: %s", company.Name, company.Status)
		if company.SuspensionReason != "" {
			desc += " (" + company.SuspensionReason + ")"
		}
		c.record(ctx, s, company.ID, companyAudit[in.Action], desc, "", "")
	}
	return company, nil
}

// List lista empresas.
func (uc *CompanyUseCase) List(ctx context.Context, principalID string, page dto.PageRequest) ([]*entity.Company, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(s, policy.EntityCompany, policy.ActionChange); err != nil {
		return nil, err
	}
	page.DefaultPage()
	return c.repos.Companies.List(ctx, page.Limit, page.Offset)
}
