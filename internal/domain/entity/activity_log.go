package entity

import "time"

// Acciones registradas en la bitácora.
const (
	ActionLogin              = "login"
	ActionClientCreate       = "client_create"
	ActionClientUpdate       = "client_update"
	ActionClientDelete       = "client_delete"
	ActionMaquilaCreate      = "maquila_create"
	ActionMaquilaUpdate      = "maquila_update"
	ActionMaquilaDelete      = "maquila_delete"
	ActionMaquilaCancel      = "maquila_cancel"
	ActionToastingStart      = "toasting_start"
	ActionToastingStep       = "toasting_step"
	ActionToastingComplete   = "toasting_complete"
	ActionProductionStart    = "production_start"
	ActionProductionComplete = "production_complete"
	ActionInvoiceCreate      = "invoice_create"
	ActionInvoicePayment     = "invoice_payment"
	ActionInvoiceOverdue     = "invoice_overdue"
	ActionInvoiceCancel      = "invoice_cancel"
	ActionOrderDelivered     = "order_delivered"
	ActionCompanyCreate      = "company_create"
	ActionCompanySuspend     = "company_suspend"
	ActionCompanyActivate    = "company_activate"
	ActionCompanyCancel      = "company_cancel"
	ActionUserCreate         = "user_create"
)

// ActivityLog registro inmutable de auditoría (solo inserción).
// UserID y CompanyID vacíos = evento del sistema o sin tenant.
type ActivityLog struct {
	ID          string
	UserID      string
	CompanyID   string
	Action      string
	Description string
	OrderID     string
	InvoiceID   string
	IPAddress   string
	UserAgent   string
	CreatedAt   time.Time
}

// ActivityFilter filtros de consulta de la bitácora.
type ActivityFilter struct {
	CompanyID string // vacío solo para super_admin (todas)
	OrderID   string
	Action    string
	Limit     int
	Offset    int
}
