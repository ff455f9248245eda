package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MaterialRepository puerto de persistencia de materiales.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	// GetByID y GetByCode devuelven nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetByCode(ctx context.Context, code string) (*entity.Material, error)
	List(ctx context.Context, limit int) ([]*entity.Material, error)
	Count(ctx context.Context) (int, error)
}
