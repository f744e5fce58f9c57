package dto

import (
	"time"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// ClientRequest entrada para crear o actualizar un cliente.
// CompanyID solo lo usa super_admin al crear.
type ClientRequest struct {
	CompanyID      string `json:"company_id"`
	Name           string `json:"name"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	ClientType     string `json:"client_type"`
	Notes          string `json:"notes"`
	IsActive       *bool  `json:"is_active"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	Name           string    `json:"name"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	ClientType     string    `json:"client_type"`
	Notes          string    `json:"notes,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewClientResponse mapea la entidad a su DTO.
func NewClientResponse(c *entity.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:             c.ID,
		CompanyID:      c.CompanyID,
		Name:           c.Name,
		DocumentType:   c.DocumentType,
		DocumentNumber: c.DocumentNumber,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		City:           c.City,
		ClientType:     c.ClientType,
		Notes:          c.Notes,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
