package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia de facturas de proveedor.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context, limit int) ([]*entity.Invoice, error)
	// UpdateStatus y SetFilePath devuelven domain.ErrNotFound si la factura no existe.
	UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error
	SetFilePath(ctx context.Context, id, path string) error
	CountByStatus(ctx context.Context, status entity.InvoiceStatus) (int, error)
}
