package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Maquila-api/internal/application/audit"
	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/repository"
	"github.com/jhoicas/Maquila-api/internal/domain/tenant"
	"github.com/jhoicas/Maquila-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Auditor registra el login en la bitácora.
type Auditor interface {
	Record(ctx context.Context, ev audit.Event)
}

// AuthUseCase login con email y contraseña.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	auditor     Auditor
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, auditor Auditor, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, auditor: auditor, jwtCfg: jwtCfg}
}

// Login verifica credenciales y el alcance del tenant, genera el JWT y registra el acceso.
// Credenciales incorrectas: ErrUnauthorized. Usuario o empresa inactivos: ErrScope.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("email y contraseña obligatorios")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	var company *entity.Company
	if user.CompanyID != "" {
		if company, err = uc.companyRepo.GetByID(ctx, user.CompanyID); err != nil {
			return nil, err
		}
	}
	if _, err := tenant.Resolve(user, company); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if uc.auditor != nil {
		uc.auditor.Record(ctx, audit.Event{
			UserID:      user.ID,
			CompanyID:   user.CompanyID,
			Action:      entity.ActionLogin,
			Description: "Inicio de sesión: " + user.Email,
		})
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *dto.NewUserResponse(user),
	}, nil
}
