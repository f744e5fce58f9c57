package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Maquila-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo consecutivos por empresa, tipo y día.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Debe recibir la tx del llamador
// para que el número se libere si la transacción se revierte.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo. El upsert toma el bloqueo de la fila,
// así dos transacciones concurrentes nunca obtienen el mismo valor.
func (r *SequenceRepo) Next(ctx context.Context, companyID, kind string, day time.Time) (int, error) {
	query := `
		INSERT INTO document_sequences (company_id, kind, day, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, kind, day)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var n int
	if err := r.q.QueryRow(ctx, query, companyID, kind, day).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", kind, err)
	}
	return n, nil
}
