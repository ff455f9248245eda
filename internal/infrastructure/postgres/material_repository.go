package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materiales.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, material_code, material_description, material_group, unit_of_measure, created_at`

// Create persiste un material; código repetido -> domain.ErrDuplicate.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `INSERT INTO materials (` + materialColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, m.ID, m.Code, m.Description, m.Group, string(m.UnitOfMeasure), m.CreatedAt)
	return classify("insert material", err)
}

func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

func (r *MaterialRepo) GetByCode(ctx context.Context, code string) (*entity.Material, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE material_code = $1`, code)
}

func (r *MaterialRepo) getOne(ctx context.Context, query string, arg string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get material", err)
	}
	return m, nil
}

func (r *MaterialRepo) List(ctx context.Context, limit int) ([]*entity.Material, error) {
	rows, err := queryLimited(ctx, r.q, `SELECT `+materialColumns+` FROM materials ORDER BY created_at DESC`, limit)
	if err != nil {
		return nil, classify("list materials", err)
	}
	defer rows.Close()

	out := make([]*entity.Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, classify("scan material", err)
		}
		out = append(out, m)
	}
	return out, classify("list materials", rows.Err())
}

func (r *MaterialRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM materials`).Scan(&n)
	return n, classify("count materials", err)
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var (
		m   entity.Material
		uom string
	)
	if err := row.Scan(&m.ID, &m.Code, &m.Description, &m.Group, &uom, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.UnitOfMeasure = entity.UnitOfMeasure(uom)
	return &m, nil
}
