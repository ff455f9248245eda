package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// CurrentStockRepository puerto de las filas de saldo por (material, ubicación).
type CurrentStockRepository interface {
	// Get devuelve nil, nil si la fila no existe.
	Get(ctx context.Context, materialID, locationID string) (*entity.CurrentStock, error)
	// ApplyDelta suma delta al saldo de forma atómica por clave. Si la fila no existe la crea
	// a partir de seed (cantidad inicial = delta); los campos descriptivos de seed se ignoran
	// cuando la fila ya existe. Devuelve la fila resultante.
	ApplyDelta(ctx context.Context, seed *entity.CurrentStock, delta decimal.Decimal) (*entity.CurrentStock, error)
	// List con limit <= 0 devuelve todas las filas.
	List(ctx context.Context, limit int) ([]*entity.CurrentStock, error)
}
