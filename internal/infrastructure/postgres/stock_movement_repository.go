package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de stock sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, material_id, material_code, location_id, plant_code, storage_location,
	movement_type, document_number, quantity, unit_of_measure, posting_date, reference_document, created_at`

// Append inserta un asiento. ledger_seq lo asigna la base y desempata el orden del historial.
func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.MaterialID, m.MaterialCode, m.LocationID, m.PlantCode, m.StorageLocation,
		string(m.MovementType), m.DocumentNumber, m.Quantity, string(m.UnitOfMeasure),
		m.PostingDate, m.ReferenceDocument, m.CreatedAt,
	)
	return classify("append stock movement", err)
}

// List del más reciente al más antiguo por created_at y, a igual instante, por ledger_seq.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var (
		where []string
		args  []any
	)
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		where = append(where, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("material_id", f.MaterialID)
	add("location_id", f.LocationID)
	add("document_number", f.DocumentNumber)

	query := `SELECT ` + movementColumns + ` FROM stock_movements`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, ledger_seq DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("list stock movements", err)
	}
	defer rows.Close()

	out := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, classify("scan stock movement", err)
		}
		out = append(out, m)
	}
	return out, classify("list stock movements", rows.Err())
}

func (r *StockMovementRepo) SumByKey(ctx context.Context) (map[entity.StockKey]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT material_id, location_id, SUM(quantity)
		FROM stock_movements GROUP BY material_id, location_id`)
	if err != nil {
		return nil, classify("sum stock movements", err)
	}
	defer rows.Close()

	sums := make(map[entity.StockKey]decimal.Decimal)
	for rows.Next() {
		var (
			k   entity.StockKey
			sum decimal.Decimal
		)
		if err := rows.Scan(&k.MaterialID, &k.LocationID, &sum); err != nil {
			return nil, classify("scan stock movement sum", err)
		}
		sums[k] = sum
	}
	return sums, classify("sum stock movements", rows.Err())
}

func (r *StockMovementRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements`).Scan(&n)
	return n, classify("count stock movements", err)
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m   entity.StockMovement
		mt  string
		uom string
	)
	err := row.Scan(
		&m.ID, &m.MaterialID, &m.MaterialCode, &m.LocationID, &m.PlantCode, &m.StorageLocation,
		&mt, &m.DocumentNumber, &m.Quantity, &uom, &m.PostingDate, &m.ReferenceDocument, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.MovementType = entity.MovementType(mt)
	m.UnitOfMeasure = entity.UnitOfMeasure(uom)
	return &m, nil
}
