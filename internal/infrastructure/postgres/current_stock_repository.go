package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.CurrentStockRepository = (*CurrentStockRepo)(nil)

// CurrentStockRepo filas de saldo sobre PostgreSQL (usable con pool o tx).
type CurrentStockRepo struct {
	q Querier
}

// NewCurrentStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCurrentStockRepository(q Querier) *CurrentStockRepo {
	return &CurrentStockRepo{q: q}
}

const currentStockColumns = `id, material_id, material_code, material_description, location_id,
	plant_code, storage_location, current_quantity, unit_of_measure, last_updated`

func (r *CurrentStockRepo) Get(ctx context.Context, materialID, locationID string) (*entity.CurrentStock, error) {
	query := `SELECT ` + currentStockColumns + `
		FROM current_stock WHERE material_id = $1 AND location_id = $2`
	s, err := scanCurrentStock(r.q.QueryRow(ctx, query, materialID, locationID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get current stock", err)
	}
	return s, nil
}

// ApplyDelta incremento atómico por clave. La fila se bloquea solo durante la sentencia
// (o hasta el commit si q es una tx); los campos descriptivos se escriben solo al insertar.
func (r *CurrentStockRepo) ApplyDelta(ctx context.Context, seed *entity.CurrentStock, delta decimal.Decimal) (*entity.CurrentStock, error) {
	if seed == nil {
		return nil, fmt.Errorf("apply stock delta: seed requerido")
	}
	query := `
		INSERT INTO current_stock (` + currentStockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (material_id, location_id)
		DO UPDATE SET current_quantity = current_stock.current_quantity + EXCLUDED.current_quantity,
		              last_updated = EXCLUDED.last_updated
		RETURNING ` + currentStockColumns
	s, err := scanCurrentStock(r.q.QueryRow(ctx, query,
		seed.ID, seed.MaterialID, seed.MaterialCode, seed.MaterialDescription, seed.LocationID,
		seed.PlantCode, seed.StorageLocation, delta, string(seed.UnitOfMeasure), seed.LastUpdated,
	))
	if err != nil {
		return nil, classify("apply stock delta", err)
	}
	return s, nil
}

// List sin orden garantizado; limit <= 0 devuelve todas las filas.
func (r *CurrentStockRepo) List(ctx context.Context, limit int) ([]*entity.CurrentStock, error) {
	query := `SELECT ` + currentStockColumns + ` FROM current_stock`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("list current stock", err)
	}
	defer rows.Close()

	out := make([]*entity.CurrentStock, 0)
	for rows.Next() {
		s, err := scanCurrentStock(rows)
		if err != nil {
			return nil, classify("scan current stock", err)
		}
		out = append(out, s)
	}
	return out, classify("list current stock", rows.Err())
}

func scanCurrentStock(row pgx.Row) (*entity.CurrentStock, error) {
	var (
		s   entity.CurrentStock
		uom string
	)
	err := row.Scan(
		&s.ID, &s.MaterialID, &s.MaterialCode, &s.MaterialDescription, &s.LocationID,
		&s.PlantCode, &s.StorageLocation, &s.CurrentQuantity, &uom, &s.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	s.UnitOfMeasure = entity.UnitOfMeasure(uom)
	return &s, nil
}
