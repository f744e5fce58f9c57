package ports

import (
	"context"
	"time"
)

// Eventos que generan una solicitud de notificación (correo al cliente o al equipo de facturación).
const (
	EventOrderCreated    = "order_created"
	EventReadyForBilling = "ready_for_billing"
	EventInvoiceCreated  = "invoice_created"
	EventOrderBilled     = "order_billed"
	EventOrderDelivered  = "order_delivered"
	EventInvoicePaid     = "invoice_paid"
)

// Destinatarios.
const (
	AudienceClient      = "client"
	AudienceBillingTeam = "billing_team"
)

// Notification solicitud "notificar a X del evento E de la maquila O".
// El contenido y la entrega del correo son responsabilidad del consumidor.
type Notification struct {
	Event      string    `json:"event"`
	CompanyID  string    `json:"company_id"`
	OrderID    string    `json:"order_id,omitempty"`
	InvoiceID  string    `json:"invoice_id,omitempty"`
	Audience   string    `json:"audience"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier puerto de salida para publicar solicitudes de notificación.
// Las implementaciones (Redis, RabbitMQ, log) no deben bloquear más allá del ctx recibido.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
