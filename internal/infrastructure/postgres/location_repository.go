package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, plant_code, plant_name, storage_location, description, created_at`

// Create persiste una ubicación; (plant_code, storage_location) repetido -> domain.ErrDuplicate.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `INSERT INTO locations (` + locationColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.ID, l.PlantCode, l.PlantName, l.StorageLocation, l.Description, l.CreatedAt)
	return classify("insert location", err)
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	l, err := scanLocation(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get location", err)
	}
	return l, nil
}

func (r *LocationRepo) List(ctx context.Context, limit int) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY created_at DESC`
	rows, err := queryLimited(ctx, r.q, query, limit)
	if err != nil {
		return nil, classify("list locations", err)
	}
	defer rows.Close()

	out := make([]*entity.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, classify("scan location", err)
		}
		out = append(out, l)
	}
	return out, classify("list locations", rows.Err())
}

func (r *LocationRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n)
	return n, classify("count locations", err)
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	if err := row.Scan(&l.ID, &l.PlantCode, &l.PlantName, &l.StorageLocation, &l.Description, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// queryLimited agrega LIMIT cuando limit > 0.
func queryLimited(ctx context.Context, q Querier, query string, limit int, args ...any) (pgx.Rows, error) {
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return q.Query(ctx, query, args...)
}
