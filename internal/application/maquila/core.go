// Package maquila implementa los casos de uso del flujo de maquila:
// alcance del tenant, autorización, máquina de estados y efectos posteriores (auditoría y notificaciones).
package maquila

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Maquila-api/internal/application/audit"
	"github.com/jhoicas/Maquila-api/internal/application/ports"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/repository"
	"github.com/jhoicas/Maquila-api/internal/domain/tenant"
	"github.com/jhoicas/Maquila-api/internal/domain/workflow"
)

// notifyTimeout límite para publicar una notificación después del commit.
const notifyTimeout = 2 * time.Second

// Repos repositorios usados por los casos de uso. TxRunner entrega la misma
// estructura con repositorios atados a la transacción.
type Repos struct {
	Users      repository.UserRepository
	Companies  repository.CompanyRepository
	Clients    repository.ClientRepository
	Orders     repository.OrderRepository
	Toasting   repository.ToastingRepository
	Production repository.ProductionRepository
	Invoices   repository.InvoiceRepository
	Sequences  repository.SequenceRepository
	Activity   repository.ActivityLogRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se revierte todo.
type TxRunner interface {
	RunMaquila(ctx context.Context, fn func(r Repos) error) error
}

// Auditor registra eventos con esfuerzo máximo (nunca falla).
type Auditor interface {
	Record(ctx context.Context, ev audit.Event)
}

// Settings parámetros de negocio.
type Settings struct {
	OrderPrefix              string
	InvoicePrefix            string
	DefaultTaxRate           decimal.Decimal
	RequireProductionQuality bool
	Location                 *time.Location // zona para fechas de consecutivos y fechas comprometidas
}

// Core dependencias compartidas por todos los casos de uso.
type Core struct {
	repos    Repos
	tx       TxRunner
	audit    Auditor
	notifier ports.Notifier
	settings Settings
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// NewCore construye el núcleo de casos de uso.
func NewCore(repos Repos, tx TxRunner, auditor Auditor, notifier ports.Notifier, settings Settings, log zerolog.Logger) *Core {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.OrderPrefix == "" {
		settings.OrderPrefix = "MAQ"
	}
	if settings.InvoicePrefix == "" {
		settings.InvoicePrefix = "FAC"
	}
	return &Core{
		repos:    repos,
		tx:       tx,
		audit:    auditor,
		notifier: notifier,
		settings: settings,
		log:      log,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// WithClock reemplaza el reloj (tests).
func (c *Core) WithClock(now func() time.Time) *Core {
	c.now = now
	return c
}

// Scope resuelve el alcance del principal. Es la primera verificación de toda operación.
func (c *Core) Scope(ctx context.Context, principalID string) (tenant.Scope, error) {
	user, err := c.repos.Users.GetByID(ctx, principalID)
	if err != nil {
		return tenant.Scope{}, err
	}
	var company *entity.Company
	if user != nil && user.CompanyID != "" {
		company, err = c.repos.Companies.GetByID(ctx, user.CompanyID)
		if err != nil {
			return tenant.Scope{}, err
		}
	}
	return tenant.Resolve(user, company)
}

// targetCompany devuelve la empresa sobre la que actúa el principal:
// la propia, o la indicada si es super_admin.
func targetCompany(s tenant.Scope, requested string) (string, error) {
	if !s.IsSuperAdmin() {
		return s.CompanyID(), nil
	}
	if requested == "" {
		return "", domain.Invalid("company_id es obligatorio para super_admin")
	}
	return requested, nil
}

// nextNumber asigna PREFIJO-NIT-YYYYMMDD-NNN dentro de la transacción del llamador.
func (c *Core) nextNumber(ctx context.Context, r Repos, companyID, kind, prefix string, at time.Time) (string, error) {
	company, err := r.Companies.GetByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", domain.ErrNotFound
	}
	day := workflow.SequenceDay(at, c.settings.Location)
	seq, err := r.Sequences.Next(ctx, companyID, kind, day)
	if err != nil {
		return "", fmt.Errorf("consecutivo %s: %w", kind, err)
	}
	return workflow.FormatNumber(prefix, company.NIT, day, seq), nil
}

// record emite la auditoría después del commit.
func (c *Core) record(ctx context.Context, s tenant.Scope, companyID, action, description, orderID, invoiceID string) {
	if c.audit == nil {
		return
	}
	c.audit.Record(ctx, audit.Event{
		UserID:      s.UserID(),
		CompanyID:   companyID,
		Action:      action,
		Description: description,
		OrderID:     orderID,
		InvoiceID:   invoiceID,
	})
}

// notify publica la solicitud de notificación después del commit; los fallos solo se registran.
func (c *Core) notify(ctx context.Context, n ports.Notification) {
	if c.notifier == nil {
		return
	}
	n.OccurredAt = c.now()
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := c.notifier.Notify(nctx, n); err != nil {
		c.log.Warn().Err(err).
			Str("event", n.Event).
			Str("company_id", n.CompanyID).
			Str("order_id", n.OrderID).
			Msg("notificación descartada")
	}
}

func parseDate(field, value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, domain.Invalid("%s debe tener formato YYYY-MM-DD", field)
	}
	return t, nil
}
