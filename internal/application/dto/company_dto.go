package dto

import (
	"time"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// CreateCompanyRequest entrada para crear una empresa maquiladora.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	NIT     string `json:"nit"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// CompanyStatusRequest acción sobre el estado: suspend, activate, cancel.
type CompanyStatusRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	NIT              string     `json:"nit"`
	Slug             string     `json:"slug"`
	Address          string     `json:"address,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Email            string     `json:"email,omitempty"`
	Status           string     `json:"status"`
	SuspensionReason string     `json:"suspension_reason,omitempty"`
	SuspendedAt      *time.Time `json:"suspended_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CompanyListResponse listado paginado.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// NewCompanyResponse mapea la entidad a su DTO.
func NewCompanyResponse(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:               c.ID,
		Name:             c.Name,
		NIT:              c.NIT,
		Slug:             c.Slug,
		Address:          c.Address,
		Phone:            c.Phone,
		Email:            c.Email,
		Status:           c.Status,
		SuspensionReason: c.SuspensionReason,
		SuspendedAt:      c.SuspendedAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
