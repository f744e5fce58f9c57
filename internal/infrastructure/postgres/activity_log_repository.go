package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo bitácora de actividad (solo inserción).
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Se usa con el pool: la bitácora
// se escribe fuera de la transacción de negocio.
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Append inserta una entrada.
func (r *ActivityLogRepo) Append(ctx context.Context, l *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, user_id, company_id, action, description, order_id, invoice_id, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		l.ID, nullIfEmpty(l.UserID), nullIfEmpty(l.CompanyID), l.Action, l.Description,
		nullIfEmpty(l.OrderID), nullIfEmpty(l.InvoiceID), nullIfEmpty(l.IPAddress), nullIfEmpty(l.UserAgent), l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List entradas más recientes primero. CompanyID vacío = todas (solo super_admin).
func (r *ActivityLogRepo) List(ctx context.Context, f entity.ActivityFilter) ([]*entity.ActivityLog, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.CompanyID != "" {
		add("company_id = $%d", f.CompanyID)
	}
	if f.OrderID != "" {
		add("order_id = $%d", f.OrderID)
	}
	if f.Action != "" {
		add("action = $%d", f.Action)
	}
	query := `SELECT id, user_id, company_id, action, description, order_id, invoice_id, ip_address, user_agent, created_at
		FROM activity_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var list []*entity.ActivityLog
	for rows.Next() {
		var (
			l                         entity.ActivityLog
			user, company, order, inv *string
			ip, ua                    *string
		)
		if err := rows.Scan(&l.ID, &user, &company, &l.Action, &l.Description, &order, &inv, &ip, &ua, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		l.UserID, l.CompanyID, l.OrderID, l.InvoiceID = deref(user), deref(company), deref(order), deref(inv)
		l.IPAddress, l.UserAgent = deref(ip), deref(ua)
		list = append(list, &l)
	}
	return list, rows.Err()
}
