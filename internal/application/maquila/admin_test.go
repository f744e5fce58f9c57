package maquila_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/workflow"
)

// ─────────────────────────────────────────────────────────────────────────────
// Clientes
// ─────────────────────────────────────────────────────────────────────────────

func clientRequest(doc string) dto.ClientRequest {
	return dto.ClientRequest{
		Name:           "  Cooperativa El Pital ",
		DocumentType:   entity.DocumentTypeNIT,
		DocumentNumber: doc,
		City:           "Pitalito",
	}
}

func TestClientCreate_DocumentoDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.clients.Create(ctx, regA, clientRequest("800555"))
	require.NoError(t, err)
	assert.Equal(t, "Cooperativa El Pital", c.Name)
	assert.Equal(t, entity.ClientTypeNew, c.ClientType)
	assert.True(t, c.IsActive)
	assert.Equal(t, companyA, c.CompanyID)

	_, err = f.clients.Create(ctx, regA, clientRequest("800555"))
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// el mismo documento en otra empresa es válido
	_, err = f.clients.Create(ctx, rootID, dto.ClientRequest{
		CompanyID: companyB, Name: "Otro", DocumentType: entity.DocumentTypeNIT, DocumentNumber: "800555",
	})
	assert.NoError(t, err)
}

func TestClient_PermisosYAlcance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.clients.Create(ctx, tosA, clientRequest("1"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.clients.Create(ctx, rootID, clientRequest("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "super_admin debe indicar empresa")

	_, err = f.clients.Get(ctx, tosB, clientA)
	assert.ErrorIs(t, err, domain.ErrScope)

	assert.ErrorIs(t, f.clients.Delete(ctx, regA, clientA), domain.ErrForbidden)
	require.NoError(t, f.clients.Delete(ctx, admA, clientA))
	_, err = f.clients.Get(ctx, admA, clientA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientUpdate_Desactivar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inactive := false
	in := dto.ClientRequest{
		Name: "Finca La Esperanza", DocumentType: entity.DocumentTypeCC, DocumentNumber: "10203040",
		ClientType: entity.ClientTypeFrequent, IsActive: &inactive,
	}

	c, err := f.clients.Update(ctx, regA, clientA, in)
	require.NoError(t, err)
	assert.False(t, c.IsActive)
	assert.Equal(t, entity.ClientTypeFrequent, c.ClientType)

	_, err = f.orders.Create(ctx, regA, orderRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cliente inactivo")

	list, err := f.clients.List(ctx, regA, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// ─────────────────────────────────────────────────────────────────────────────
// Empresas
// ─────────────────────────────────────────────────────────────────────────────

func TestCompanyCreate_SlugUnico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.companies.Create(ctx, rootID, dto.CreateCompanyRequest{Name: "Tostadora Andina", NIT: "900333"})
	require.NoError(t, err)
	assert.Equal(t, "tostadora-andina-2", c.Slug)
	assert.Equal(t, entity.CompanyStatusActive, c.Status)

	_, err = f.companies.Create(ctx, rootID, dto.CreateCompanyRequest{Name: "Otra", NIT: "900333"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.companies.Create(ctx, admA, dto.CreateCompanyRequest{Name: "Mía", NIT: "1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCompanyCreate_NormalizaNIT(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.companies.Create(ctx, rootID, dto.CreateCompanyRequest{Name: "Trilladora Sur", NIT: "900.123.456-8"})
	require.NoError(t, err)
	assert.Equal(t, "900123456", c.NIT)

	_, err = f.companies.Create(ctx, rootID, dto.CreateCompanyRequest{Name: "Copia", NIT: "900123456"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "mismo NIT con otro formato")

	_, err = f.companies.Create(ctx, rootID, dto.CreateCompanyRequest{Name: "Mal DV", NIT: "900123456-5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
}

func TestCompanySetStatus_Ciclo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.companies.SetStatus(ctx, admA, companyA, dto.CompanyStatusRequest{Action: workflow.CompanySuspend})
	require.ErrorIs(t, err, domain.ErrForbidden)

	c, err := f.companies.SetStatus(ctx, rootID, companyB, dto.CompanyStatusRequest{Action: workflow.CompanySuspend, Reason: "mora"})
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyStatusSuspended, c.Status)
	assert.Equal(t, "mora", c.SuspensionReason)
	require.NotNil(t, c.SuspendedAt)

	_, err = f.toasting.Get(ctx, tosB, "cualquiera")
	assert.ErrorIs(t, err, domain.ErrScope)

	c, err = f.companies.SetStatus(ctx, rootID, companyB, dto.CompanyStatusRequest{Action: workflow.CompanyActivate})
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyStatusActive, c.Status)
	assert.Nil(t, c.SuspendedAt)

	_, err = f.companies.SetStatus(ctx, rootID, companyB, dto.CompanyStatusRequest{Action: workflow.CompanyCancel})
	require.NoError(t, err)
	_, err = f.companies.SetStatus(ctx, rootID, companyB, dto.CompanyStatusRequest{Action: workflow.CompanyActivate})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	actions := f.store.activityActions()
	assert.Contains(t, actions, entity.ActionCompanySuspend)
	assert.Contains(t, actions, entity.ActionCompanyCancel)

	list, err := f.companies.List(ctx, rootID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// ─────────────────────────────────────────────────────────────────────────────
// Usuarios y bitácora
// ─────────────────────────────────────────────────────────────────────────────

func TestUserCreate_ReglasDeRol(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.Create(ctx, admA, dto.CreateUserRequest{
		Email: " Nuevo@Maquila.test ", Password: "secreto-123", Role: entity.RoleAuxTostion,
	})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@maquila.test", u.Email)
	assert.Equal(t, companyA, u.CompanyID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto-123")))

	_, err = f.users.Create(ctx, admA, dto.CreateUserRequest{Email: "x@maquila.test", Password: "secreto-123", Role: entity.RoleSuperAdmin})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.users.Create(ctx, regA, dto.CreateUserRequest{Email: "y@maquila.test", Password: "secreto-123", Role: entity.RoleAuxTostion})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.users.Create(ctx, admA, dto.CreateUserRequest{Email: "nuevo@maquila.test", Password: "secreto-123", Role: entity.RoleAuxTostion})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.users.Create(ctx, admA, dto.CreateUserRequest{Email: "z@maquila.test", Password: "corta", Role: entity.RoleAuxTostion})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.users.Create(ctx, admA, dto.CreateUserRequest{Email: "w@maquila.test", Password: "secreto-123", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestActivityList_SoloAdministradores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.newOrder(t)

	_, err := f.activity.List(ctx, regA, dto.ActivityListRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	logs, err := f.activity.List(ctx, admA, dto.ActivityListRequest{OrderID: o.ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionMaquilaCreate, logs[0].Action)
	assert.Equal(t, regA, logs[0].UserID)

	other, err := f.activity.List(ctx, rootID, dto.ActivityListRequest{CompanyID: companyB})
	require.NoError(t, err)
	assert.Empty(t, other)
}
