package maquila

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/policy"
)

const minPasswordLength = 8

// UserUseCase alta de usuarios.
type UserUseCase struct {
	core *Core
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(core *Core) *UserUseCase {
	return &UserUseCase{core: core}
}

// Create crea un usuario. admin_company solo crea en su empresa y nunca super_admin.
func (uc *UserUseCase) Create(ctx context.Context, principalID string, in dto.CreateUserRequest) (*entity.User, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(s, policy.EntityUser, policy.ActionCreate); err != nil {
		return nil, err
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.Invalid("rol inválido: %q", in.Role)
	}
	if in.Role == entity.RoleSuperAdmin && !s.IsSuperAdmin() {
		return nil, fmt.Errorf("%w: solo super_admin crea super_admin", domain.ErrForbidden)
	}
	companyID := ""
	if in.Role != entity.RoleSuperAdmin {
		if companyID, err = targetCompany(s, in.CompanyID); err != nil {
			return nil, err
		}
		company, err := c.repos.Companies.GetByID(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrNotFound
		}
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Invalid("email inválido")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.Invalid("la contraseña debe tener al menos %d caracteres", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := c.now()
	user := &entity.User{
		ID:           c.newID(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.tx.RunMaquila(ctx, func(r Repos) error {
		existing, err := r.Users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: email %s ya registrado", domain.ErrDuplicate, email)
		}
		return r.Users.Create(ctx, user)
	}); err != nil {
		return nil, err
	}
	c.record(ctx, s, companyID, entity.ActionUserCreate, fmt.Sprintf("Usuario %s (%s) creado", email, user.Role), "", "")
	return user, nil
}
