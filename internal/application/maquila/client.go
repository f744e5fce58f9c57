package maquila

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/policy"
)

// ClientUseCase gestión de clientes del tenant.
type ClientUseCase struct {
	core *Core
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(core *Core) *ClientUseCase {
	return &ClientUseCase{core: core}
}

// Create registra un cliente. Devuelve domain.ErrDuplicate si el documento ya existe en la empresa.
func (uc *ClientUseCase) Create(ctx context.Context, principalID string, in dto.ClientRequest) (*entity.Client, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	companyID, err := targetCompany(s, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(s, policy.EntityClient, policy.ActionCreate); err != nil {
		return nil, err
	}
	now := c.now()
	client := &entity.Client{
		ID:        c.newID(),
		CompanyID: companyID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyClient(client, in); err != nil {
		return nil, err
	}

	err = c.tx.RunMaquila(ctx, func(r Repos) error {
		existing, err := r.Clients.GetByDocument(ctx, companyID, client.DocumentNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: documento %s ya registrado", domain.ErrDuplicate, client.DocumentNumber)
		}
		return r.Clients.Create(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	c.record(ctx, s, companyID, entity.ActionClientCreate, "Cliente creado: "+client.Name, "", "")
	return client, nil
}

// Update modifica los datos del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, principalID, clientID string, in dto.ClientRequest) (*entity.Client, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	client, err := c.repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if err := policy.CheckIn(s, client.CompanyID, policy.EntityClient, policy.ActionChange); err != nil {
		return nil, err
	}
	if err := applyClient(client, in); err != nil {
		return nil, err
	}
	if in.IsActive != nil {
		client.IsActive = *in.IsActive
	}
	client.UpdatedAt = c.now()
	if err := c.tx.RunMaquila(ctx, func(r Repos) error {
		return r.Clients.Update(ctx, client)
	}); err != nil {
		return nil, err
	}
	c.record(ctx, s, client.CompanyID, entity.ActionClientUpdate, "Cliente actualizado: "+client.Name, "", "")
	return client, nil
}

// Delete elimina el cliente (solo admin_company o super_admin).
func (uc *ClientUseCase) Delete(ctx context.Context, principalID, clientID string) error {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return err
	}
	client, err := c.repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	if err := policy.CheckIn(s, client.CompanyID, policy.EntityClient, policy.ActionDelete); err != nil {
		return err
	}
	if err := c.tx.RunMaquila(ctx, func(r Repos) error {
		return r.Clients.Delete(ctx, client.CompanyID, client.ID)
	}); err != nil {
		return err
	}
	c.record(ctx, s, client.CompanyID, entity.ActionClientDelete, "Cliente eliminado: "+client.Name, "", "")
	return nil
}

// Get obtiene un cliente del tenant.
func (uc *ClientUseCase) Get(ctx context.Context, principalID, clientID string) (*entity.Client, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	client, err := c.repos.Clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.Require(client.CompanyID); err != nil {
		return nil, err
	}
	return client, nil
}

// List lista clientes del tenant.
func (uc *ClientUseCase) List(ctx context.Context, principalID, companyID string, page dto.PageRequest) ([]*entity.Client, error) {
	c := uc.core
	s, err := c.Scope(ctx, principalID)
	if err != nil {
		return nil, err
	}
	target, err := targetCompany(s, companyID)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	return c.repos.Clients.ListByCompany(ctx, target, page.Limit, page.Offset)
}

func applyClient(client *entity.Client, in dto.ClientRequest) error {
	name := strings.TrimSpace(in.Name)
	doc := strings.TrimSpace(in.DocumentNumber)
	if name == "" || doc == "" {
		return domain.Invalid("nombre y número de documento obligatorios")
	}
	switch in.DocumentType {
	case entity.DocumentTypeCC, entity.DocumentTypeNIT:
	default:
		return domain.Invalid("tipo de documento inválido: %q", in.DocumentType)
	}
	clientType := in.ClientType
	if clientType == "" {
		clientType = entity.ClientTypeNew
	}
	switch clientType {
	case entity.ClientTypeNew, entity.ClientTypeFrequent, entity.ClientTypeVIP:
	default:
		return domain.Invalid("tipo de cliente inválido: %q", in.ClientType)
	}
	client.Name = name
	client.DocumentType = in.DocumentType
	client.DocumentNumber = doc
	client.Email = strings.TrimSpace(in.Email)
	client.Phone = in.Phone
	client.Address = in.Address
	client.City = in.City
	client.ClientType = clientType
	client.Notes = in.Notes
	return nil
}
