package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, po_number, vendor_code, vendor_name, po_date, created_at`

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `INSERT INTO purchase_orders (` + purchaseOrderColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, po.ID, po.PONumber, po.VendorCode, po.VendorName, po.PODate, po.CreatedAt)
	return classify("insert purchase order", err)
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id).
		Scan(&po.ID, &po.PONumber, &po.VendorCode, &po.VendorName, &po.PODate, &po.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get purchase order", err)
	}
	return &po, nil
}

func (r *PurchaseOrderRepo) List(ctx context.Context, limit int) ([]*entity.PurchaseOrder, error) {
	rows, err := queryLimited(ctx, r.q, `SELECT `+purchaseOrderColumns+` FROM purchase_orders ORDER BY created_at DESC`, limit)
	if err != nil {
		return nil, classify("list purchase orders", err)
	}
	defer rows.Close()

	out := make([]*entity.PurchaseOrder, 0)
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.PONumber, &po.VendorCode, &po.VendorName, &po.PODate, &po.CreatedAt); err != nil {
			return nil, classify("scan purchase order", err)
		}
		out = append(out, &po)
	}
	return out, classify("list purchase orders", rows.Err())
}
