package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los saldos se actualizan con un upsert incremental, por eso basta READ COMMITTED;
// un deadlock o fallo de serialización sale como domain.ErrConcurrentUpdate.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.LedgerRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return classify("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.LedgerRepos{
		Movements: NewStockMovementRepository(tx),
		Stock:     NewCurrentStockRepository(tx),
		Receipts:  NewGoodsReceiptRepository(tx),
		Issues:    NewGoodsIssueRepository(tx),
		Transfers: NewStockTransferRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return classify("commit transaction", err)
	}
	return nil
}

// Repos repositorios del libro sobre el pool (fuera de transacción).
func Repos(pool *pgxpool.Pool) inventory.LedgerRepos {
	return inventory.LedgerRepos{
		Movements: NewStockMovementRepository(pool),
		Stock:     NewCurrentStockRepository(pool),
		Receipts:  NewGoodsReceiptRepository(pool),
		Issues:    NewGoodsIssueRepository(pool),
		Transfers: NewStockTransferRepository(pool),
	}
}
