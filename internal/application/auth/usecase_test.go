package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Maquila-api/internal/application/audit"
	"github.com/jhoicas/Maquila-api/internal/application/auth"
	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/repository"
	"github.com/jhoicas/Maquila-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsers struct {
	repository.UserRepository
	byEmail map[string]*entity.User
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

type fakeCompanies struct {
	repository.CompanyRepository
	byID map[string]*entity.Company
}

func (f fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.byID[id], nil
}

type spyAuditor struct{ events []audit.Event }

func (s *spyAuditor) Record(_ context.Context, ev audit.Event) { s.events = append(s.events, ev) }

const secret = "secreto-de-pruebas"

func setup(t *testing.T, companyStatus string) (*auth.AuthUseCase, *spyAuditor) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("tostion123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := fakeUsers{byEmail: map[string]*entity.User{
		"ana@andina.co": {ID: "u-1", CompanyID: "co-a", Email: "ana@andina.co", PasswordHash: string(hash),
			Role: entity.RoleAuxTostion, Status: entity.UserStatusActive},
		"root@maquila.co": {ID: "u-root", Email: "root@maquila.co", PasswordHash: string(hash),
			Role: entity.RoleSuperAdmin, Status: entity.UserStatusActive},
	}}
	companies := fakeCompanies{byID: map[string]*entity.Company{
		"co-a": {ID: "co-a", Name: "Tostadora Andina", Status: companyStatus},
	}}
	spy := &spyAuditor{}
	uc := auth.NewAuthUseCase(users, companies, spy, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
	return uc, spy
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteTokenConRolYEmpresa(t *testing.T) {
	uc, spy := setup(t, entity.CompanyStatusActive)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  ANA@andina.co ", Password: "tostion123"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", out.User.ID)

	id, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{UserID: "u-1", CompanyID: "co-a", Role: entity.RoleAuxTostion}, id)

	require.Len(t, spy.events, 1)
	assert.Equal(t, entity.ActionLogin, spy.events[0].Action)
	assert.Equal(t, "co-a", spy.events[0].CompanyID)
}

func TestLogin_SuperAdminSinEmpresa(t *testing.T) {
	uc, _ := setup(t, entity.CompanyStatusActive)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "root@maquila.co", Password: "tostion123"})
	require.NoError(t, err)
	assert.Empty(t, out.User.CompanyID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, spy := setup(t, entity.CompanyStatusActive)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@andina.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@andina.co", Password: "tostion123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, spy.events, "los intentos fallidos no se auditan como login")
}

func TestLogin_EmpresaSuspendida_ErrScope(t *testing.T) {
	uc, _ := setup(t, entity.CompanyStatusSuspended)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@andina.co", Password: "tostion123"})
	assert.ErrorIs(t, err, domain.ErrScope)
}
