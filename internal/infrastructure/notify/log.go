package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Maquila-api/internal/application/ports"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier solo registra la solicitud (desarrollo y entornos sin broker).
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier construye el notificador sobre el logger.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify escribe la solicitud en el log.
func (l *LogNotifier) Notify(_ context.Context, n ports.Notification) error {
	l.log.Info().
		Str("event", n.Event).
		Str("audience", n.Audience).
		Str("company_id", n.CompanyID).
		Str("order_id", n.OrderID).
		Str("invoice_id", n.InvoiceID).
		Time("occurred_at", n.OccurredAt).
		Msg("notificación solicitada")
	return nil
}

// Close no hace nada.
func (l *LogNotifier) Close() error { return nil }
