package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// LedgerRepos repositorios atados a una misma transacción de contabilización.
type LedgerRepos struct {
	Movements repository.StockMovementRepository
	Stock     repository.CurrentStockRepository
	Receipts  repository.GoodsReceiptRepository
	Issues    repository.GoodsIssueRepository
	Transfers repository.StockTransferRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda nada escrito (Rollback).
// Los conflictos de concurrencia se devuelven envueltos en domain.ErrConcurrentUpdate.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos LedgerRepos) error) error
}

// ReferenceResolver colaborador externo que entrega los datos maestros que se estampan
// en movimientos y saldos. Devuelve domain.ErrMaterialNotFound / domain.ErrLocationNotFound.
type ReferenceResolver interface {
	ResolveMaterial(ctx context.Context, materialID string) (*entity.Material, error)
	ResolveLocation(ctx context.Context, locationID string) (*entity.Location, error)
}

// SlipGenerator genera el comprobante imprimible de un documento de material.
type SlipGenerator interface {
	GenerateSlip(ctx context.Context, slip DocumentSlip) ([]byte, error)
}
