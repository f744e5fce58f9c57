package entity

import "time"

// Tipos de documento del cliente.
const (
	DocumentTypeCC  = "cc"
	DocumentTypeNIT = "nit"
)

// Clasificación comercial del cliente.
const (
	ClientTypeNew      = "new"
	ClientTypeFrequent = "frequent"
	ClientTypeVIP      = "vip"
)

// Client caficultor o comercializador que entrega café para maquilar.
// Único por (CompanyID, DocumentNumber).
type Client struct {
	ID             string
	CompanyID      string
	Name           string
	DocumentType   string // cc, nit
	DocumentNumber string
	Email          string
	Phone          string
	Address        string
	City           string
	ClientType     string // new, frequent, vip
	Notes          string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
