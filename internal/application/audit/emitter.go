// Package audit registra la bitácora de actividad fuera de la transacción de negocio.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/repository"
)

const defaultTimeout = 3 * time.Second

// Event datos de un cambio de estado a registrar. Campos vacíos = null.
type Event struct {
	UserID      string
	CompanyID   string
	Action      string
	Description string
	OrderID     string
	InvoiceID   string
}

type clientKey struct{}

type clientInfo struct {
	ip        string
	userAgent string
}

// WithClient adjunta IP y user agent de la petición para la bitácora.
func WithClient(ctx context.Context, ip, userAgent string) context.Context {
	return context.WithValue(ctx, clientKey{}, clientInfo{ip: ip, userAgent: userAgent})
}

// Emitter escribe eventos de auditoría con esfuerzo máximo: nunca devuelve error.
type Emitter struct {
	repo    repository.ActivityLogRepository
	log     zerolog.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewEmitter construye el emisor sobre el repositorio de bitácora.
func NewEmitter(repo repository.ActivityLogRepository, log zerolog.Logger) *Emitter {
	return &Emitter{repo: repo, log: log, timeout: defaultTimeout, now: time.Now}
}

// Record agrega el evento. Usa un contexto desligado de la petición (con timeout propio)
// para que la cancelación del cliente no descarte el registro. Los fallos se registran y se descartan.
func (e *Emitter) Record(ctx context.Context, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			e.warn(ev, fmt.Errorf("%w: panic: %v", domain.ErrAudit, r))
		}
	}()

	entry := &entity.ActivityLog{
		ID:          uuid.New().String(),
		UserID:      ev.UserID,
		CompanyID:   ev.CompanyID,
		Action:      ev.Action,
		Description: ev.Description,
		OrderID:     ev.OrderID,
		InvoiceID:   ev.InvoiceID,
		CreatedAt:   e.now(),
	}
	if info, ok := ctx.Value(clientKey{}).(clientInfo); ok {
		entry.IPAddress = info.ip
		entry.UserAgent = info.userAgent
	}

	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()
	if err := e.repo.Append(actx, entry); err != nil {
		e.warn(ev, fmt.Errorf("%w: %v", domain.ErrAudit, err))
	}
}

func (e *Emitter) warn(ev Event, err error) {
	e.log.Warn().Err(err).
		Str("action", ev.Action).
		Str("company_id", ev.CompanyID).
		Str("order_id", ev.OrderID).
		Msg("auditoría descartada")
}
