package repository

import (
	"context"
	"time"
)

// SequenceRepository contador por empresa, tipo y día.
// Next incrementa de forma atómica dentro de la transacción del llamador:
// si la transacción se revierte, el número se libera.
type SequenceRepository interface {
	Next(ctx context.Context, companyID, kind string, day time.Time) (int, error)
}
