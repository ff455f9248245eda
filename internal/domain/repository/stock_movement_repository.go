package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos. Campos vacíos no filtran.
type MovementFilter struct {
	MaterialID     string
	LocationID     string
	DocumentNumber string
	Limit          int
}

// StockMovementRepository puerto del libro de stock: solo inserción y lectura.
type StockMovementRepository interface {
	Append(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve los movimientos del más reciente al más antiguo (por fecha de creación).
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	// SumByKey suma las cantidades firmadas agrupadas por (material, ubicación).
	SumByKey(ctx context.Context) (map[entity.StockKey]decimal.Decimal, error)
	Count(ctx context.Context) (int, error)
}
