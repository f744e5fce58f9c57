package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Maquila-api/internal/application/maquila"
)

var _ maquila.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunMaquila inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La bitácora queda atada al pool: se escribe después del commit.
func (r *TxRunner) RunMaquila(ctx context.Context, fn func(repos maquila.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx, r.pool)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos arma los repositorios sobre q; activity usa su propio Querier.
func NewRepos(q, activity Querier) maquila.Repos {
	return maquila.Repos{
		Users:      NewUserRepository(q),
		Companies:  NewCompanyRepository(q),
		Clients:    NewClientRepository(q),
		Orders:     NewOrderRepository(q),
		Toasting:   NewToastingRepository(q),
		Production: NewProductionRepository(q),
		Invoices:   NewInvoiceRepository(q),
		Sequences:  NewSequenceRepository(q),
		Activity:   NewActivityLogRepository(activity),
	}
}
