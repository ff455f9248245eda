package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// GoodsReceiptRepository documentos de entrada (cabecera + líneas). Solo inserción.
type GoodsReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.GoodsReceipt) error
	GetByID(ctx context.Context, id string) (*entity.GoodsReceipt, error)
	List(ctx context.Context, limit int) ([]*entity.GoodsReceipt, error)
	Count(ctx context.Context) (int, error)
}

// GoodsIssueRepository documentos de salida. Solo inserción.
type GoodsIssueRepository interface {
	Create(ctx context.Context, issue *entity.GoodsIssue) error
	GetByID(ctx context.Context, id string) (*entity.GoodsIssue, error)
	List(ctx context.Context, limit int) ([]*entity.GoodsIssue, error)
	Count(ctx context.Context) (int, error)
}

// StockTransferRepository documentos de traslado. Solo inserción.
type StockTransferRepository interface {
	Create(ctx context.Context, transfer *entity.StockTransfer) error
	GetByID(ctx context.Context, id string) (*entity.StockTransfer, error)
	List(ctx context.Context, limit int) ([]*entity.StockTransfer, error)
	Count(ctx context.Context) (int, error)
}
