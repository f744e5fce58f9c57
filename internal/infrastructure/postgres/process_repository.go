package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/repository"
)

var (
	_ repository.ToastingRepository   = (*ToastingRepo)(nil)
	_ repository.ProductionRepository = (*ProductionRepo)(nil)
)

const toastingColumns = `id, company_id, order_id, state, received_kg, processed_kg, yield_pct,
	equipment, equipment_capacity_kg, roast_type, initial_temperature, target_temperature, estimated_time_minutes,
	current_temperature, current_humidity, samples, quality_grade, quality_notes,
	received_by, started_by, completed_by, received_at, started_at, completed_at, created_at, updated_at`

// ToastingRepo proceso de tostión; las muestras de monitoreo viajan como JSONB.
type ToastingRepo struct {
	q Querier
}

// NewToastingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewToastingRepository(q Querier) *ToastingRepo {
	return &ToastingRepo{q: q}
}

// Create persiste el proceso. Un segundo proceso para la misma maquila devuelve domain.ErrDuplicate.
func (r *ToastingRepo) Create(ctx context.Context, p *entity.ToastingProcess) error {
	query := `
		INSERT INTO toasting_processes (` + toastingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.OrderID, string(p.State), p.ReceivedKg, p.ProcessedKg, p.YieldPct,
		p.Equipment, p.EquipmentCapacityKg, p.RoastType, p.InitialTemperature, p.TargetTemperature, p.EstimatedTimeMinutes,
		p.CurrentTemperature, p.CurrentHumidity, samplesOf(p), p.QualityGrade, p.QualityNotes,
		nullIfEmpty(p.ReceivedBy), nullIfEmpty(p.StartedBy), nullIfEmpty(p.CompletedBy),
		p.ReceivedAt, p.StartedAt, p.CompletedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tostión de la maquila %s", domain.ErrDuplicate, p.OrderID)
		}
		return fmt.Errorf("insert toasting process: %w", err)
	}
	return nil
}

// GetByOrder proceso de tostión de la maquila.
func (r *ToastingRepo) GetByOrder(ctx context.Context, companyID, orderID string) (*entity.ToastingProcess, error) {
	query := `SELECT ` + toastingColumns + ` FROM toasting_processes WHERE company_id = $1 AND order_id = $2`
	var (
		p     entity.ToastingProcess
		state string
		by    [3]*string
	)
	err := r.q.QueryRow(ctx, query, companyID, orderID).Scan(
		&p.ID, &p.CompanyID, &p.OrderID, &state, &p.ReceivedKg, &p.ProcessedKg, &p.YieldPct,
		&p.Equipment, &p.EquipmentCapacityKg, &p.RoastType, &p.InitialTemperature, &p.TargetTemperature, &p.EstimatedTimeMinutes,
		&p.CurrentTemperature, &p.CurrentHumidity, &p.Samples, &p.QualityGrade, &p.QualityNotes,
		&by[0], &by[1], &by[2], &p.ReceivedAt, &p.StartedAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get toasting process: %w", err)
	}
	p.State = entity.ToastingState(state)
	p.ReceivedBy, p.StartedBy, p.CompletedBy = deref(by[0]), deref(by[1]), deref(by[2])
	return &p, nil
}

// Update reemplaza los campos mutables del proceso.
func (r *ToastingRepo) Update(ctx context.Context, p *entity.ToastingProcess) error {
	query := `
		UPDATE toasting_processes
		SET state = $2, received_kg = $3, processed_kg = $4, yield_pct = $5,
		    equipment = $6, equipment_capacity_kg = $7, roast_type = $8, initial_temperature = $9,
		    target_temperature = $10, estimated_time_minutes = $11, current_temperature = $12,
		    current_humidity = $13, samples = $14, quality_grade = $15, quality_notes = $16,
		    started_by = $17, completed_by = $18, started_at = $19, completed_at = $20, updated_at = $21
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, string(p.State), p.ReceivedKg, p.ProcessedKg, p.YieldPct,
		p.Equipment, p.EquipmentCapacityKg, p.RoastType, p.InitialTemperature,
		p.TargetTemperature, p.EstimatedTimeMinutes, p.CurrentTemperature,
		p.CurrentHumidity, samplesOf(p), p.QualityGrade, p.QualityNotes,
		nullIfEmpty(p.StartedBy), nullIfEmpty(p.CompletedBy), p.StartedAt, p.CompletedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update toasting process: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// samplesOf nunca devuelve nil: la columna es un arreglo JSONB no nulo.
func samplesOf(p *entity.ToastingProcess) []entity.MonitoringSample {
	if p.Samples == nil {
		return []entity.MonitoringSample{}
	}
	return p.Samples
}

const productionColumns = `id, company_id, order_id, process_type, grinding_type, packaging_details,
	final_weight_kg, units_produced, weight_verified, packaging_intact, labeling_correct, production_notes,
	produced_by, created_at, updated_at`

// ProductionRepo proceso de producción.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// Create persiste el proceso (uno por maquila).
func (r *ProductionRepo) Create(ctx context.Context, p *entity.ProductionProcess) error {
	query := `
		INSERT INTO production_processes (` + productionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.OrderID, p.ProcessType, p.GrindingType, p.PackagingDetails,
		p.FinalWeightKg, p.UnitsProduced, p.WeightVerified, p.PackagingIntact, p.LabelingCorrect, p.ProductionNotes,
		nullIfEmpty(p.ProducedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: producción de la maquila %s", domain.ErrDuplicate, p.OrderID)
		}
		return fmt.Errorf("insert production process: %w", err)
	}
	return nil
}

// GetByOrder proceso de producción de la maquila.
func (r *ProductionRepo) GetByOrder(ctx context.Context, companyID, orderID string) (*entity.ProductionProcess, error) {
	query := `SELECT ` + productionColumns + ` FROM production_processes WHERE company_id = $1 AND order_id = $2`
	p, err := scanProduction(r.q.QueryRow(ctx, query, companyID, orderID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production process: %w", err)
	}
	return p, nil
}

func scanProduction(row pgx.Row) (*entity.ProductionProcess, error) {
	var (
		p          entity.ProductionProcess
		producedBy *string
	)
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.OrderID, &p.ProcessType, &p.GrindingType, &p.PackagingDetails,
		&p.FinalWeightKg, &p.UnitsProduced, &p.WeightVerified, &p.PackagingIntact, &p.LabelingCorrect, &p.ProductionNotes,
		&producedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ProducedBy = deref(producedBy)
	return &p, nil
}
