package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/toa-ordenes-api/internal/application/historia"
	"github.com/jhoicas/toa-ordenes-api/internal/domain/repository"
)

// Ensure TxRunner implements historia.TxRunner.
var _ historia.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo de historia atado a la tx
// y hace Commit o Rollback. Un error de fn descarta todo el lote.
func (r *TxRunner) Run(ctx context.Context, fn func(historiaRepo repository.HistoriaOTRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	historiaRepo := NewHistoriaOTRepository(tx)

	if err := fn(historiaRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
