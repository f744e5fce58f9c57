package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, company_id, client_id, number,
	quantity_kg, coffee_type, original_coffee_type, kg_after_hulling, shrink_pct,
	packaging_type, packaging_details, delivery_method, delivery_address, committed_date, notes, internal_notes,
	state, registered_at, toasting_started_at, toasting_completed_at, production_started_at, production_completed_at,
	billed_at, delivered_at,
	created_by, toasting_started_by, toasted_by, production_started_by, produced_by, billed_by, delivered_by, cancelled_by,
	created_at, updated_at`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la maquila con su número ya asignado.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO maquila_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.ClientID, o.Number,
		o.QuantityKg, o.CoffeeType, o.OriginalCoffeeType, o.KgAfterHulling, o.ShrinkPct,
		o.PackagingType, o.PackagingDetails, o.DeliveryMethod, o.DeliveryAddress, o.CommittedDate, o.Notes, o.InternalNotes,
		string(o.State), o.RegisteredAt, o.ToastingStartedAt, o.ToastingCompletedAt, o.ProductionStartedAt, o.ProductionCompletedAt,
		o.BilledAt, o.DeliveredAt,
		nullIfEmpty(o.CreatedBy), nullIfEmpty(o.ToastingStartedBy), nullIfEmpty(o.ToastedBy), nullIfEmpty(o.ProductionStartedBy),
		nullIfEmpty(o.ProducedBy), nullIfEmpty(o.BilledBy), nullIfEmpty(o.DeliveredBy), nullIfEmpty(o.CancelledBy),
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: maquila %s", domain.ErrDuplicate, o.Number)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene una maquila por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM maquila_orders WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la maquila bloqueando la fila hasta el fin de la transacción.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM maquila_orders WHERE id = $1 FOR UPDATE`, id)
}

// Update compara y reemplaza: solo escribe si el estado almacenado sigue siendo prevState.
// number, company_id y client_id no se tocan.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order, prevState entity.OrderState) error {
	query := `
		UPDATE maquila_orders
		SET quantity_kg = $3, coffee_type = $4, kg_after_hulling = $5, shrink_pct = $6,
		    packaging_type = $7, packaging_details = $8, delivery_method = $9, delivery_address = $10,
		    committed_date = $11, notes = $12, internal_notes = $13,
		    state = $14, toasting_started_at = $15, toasting_completed_at = $16, production_started_at = $17,
		    production_completed_at = $18, billed_at = $19, delivered_at = $20,
		    toasting_started_by = $21, toasted_by = $22, production_started_by = $23, produced_by = $24,
		    billed_by = $25, delivered_by = $26, cancelled_by = $27, updated_at = $28
		WHERE id = $1 AND state = $2`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, string(prevState),
		o.QuantityKg, o.CoffeeType, o.KgAfterHulling, o.ShrinkPct,
		o.PackagingType, o.PackagingDetails, o.DeliveryMethod, o.DeliveryAddress,
		o.CommittedDate, o.Notes, o.InternalNotes,
		string(o.State), o.ToastingStartedAt, o.ToastingCompletedAt, o.ProductionStartedAt,
		o.ProductionCompletedAt, o.BilledAt, o.DeliveredAt,
		nullIfEmpty(o.ToastingStartedBy), nullIfEmpty(o.ToastedBy), nullIfEmpty(o.ProductionStartedBy), nullIfEmpty(o.ProducedBy),
		nullIfEmpty(o.BilledBy), nullIfEmpty(o.DeliveredBy), nullIfEmpty(o.CancelledBy), o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: la maquila %s cambió de estado", domain.ErrConflict, o.Number)
	}
	return nil
}

// List maquilas de la empresa, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, companyID string, f entity.OrderFilter) ([]*entity.Order, error) {
	var (
		where = []string{"company_id = $1"}
		args  = []any{companyID}
	)
	if f.State != "" {
		args = append(args, string(f.State))
		where = append(where, fmt.Sprintf("state = $%d", len(args)))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		where = append(where, fmt.Sprintf("client_id = $%d", len(args)))
	}
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM maquila_orders WHERE %s ORDER BY registered_at DESC, number DESC LIMIT $%d OFFSET $%d`,
		orderColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Delete elimina la maquila; tostión y producción caen en cascada, la factura lo impide.
func (r *OrderRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM maquila_orders WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la maquila tiene factura", domain.ErrConflict)
		}
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) getOne(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o     entity.Order
		state string
		by    [8]*string
	)
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.ClientID, &o.Number,
		&o.QuantityKg, &o.CoffeeType, &o.OriginalCoffeeType, &o.KgAfterHulling, &o.ShrinkPct,
		&o.PackagingType, &o.PackagingDetails, &o.DeliveryMethod, &o.DeliveryAddress, &o.CommittedDate, &o.Notes, &o.InternalNotes,
		&state, &o.RegisteredAt, &o.ToastingStartedAt, &o.ToastingCompletedAt, &o.ProductionStartedAt, &o.ProductionCompletedAt,
		&o.BilledAt, &o.DeliveredAt,
		&by[0], &by[1], &by[2], &by[3], &by[4], &by[5], &by[6], &by[7],
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.State = entity.OrderState(state)
	o.CreatedBy, o.ToastingStartedBy, o.ToastedBy, o.ProductionStartedBy = deref(by[0]), deref(by[1]), deref(by[2]), deref(by[3])
	o.ProducedBy, o.BilledBy, o.DeliveredBy, o.CancelledBy = deref(by[4]), deref(by[5]), deref(by[6]), deref(by[7])
	return &o, nil
}
