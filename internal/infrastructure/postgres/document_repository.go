package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.GoodsReceiptRepository  = (*GoodsReceiptRepo)(nil)
	_ repository.GoodsIssueRepository    = (*GoodsIssueRepo)(nil)
	_ repository.StockTransferRepository = (*StockTransferRepo)(nil)
)

// ── Entradas de mercancía ────────────────────────────────────────────────────

// GoodsReceiptRepo cabecera en goods_receipts, líneas en goods_receipt_items.
type GoodsReceiptRepo struct {
	q Querier
}

func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

const goodsReceiptColumns = `id, document_number, COALESCE(po_id, ''), po_number, COALESCE(invoice_id, ''),
	vendor_code, vendor_name, location_id, plant_code, storage_location,
	posting_date, document_date, header_text, created_at`

// Create inserta cabecera y líneas; debe ir dentro de la tx de contabilización.
func (r *GoodsReceiptRepo) Create(ctx context.Context, gr *entity.GoodsReceipt) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO goods_receipts (id, document_number, po_id, po_number, invoice_id,
			vendor_code, vendor_name, location_id, plant_code, storage_location,
			posting_date, document_date, header_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		gr.ID, gr.DocumentNumber, nullIfEmpty(gr.POID), gr.PONumber, nullIfEmpty(gr.InvoiceID),
		gr.VendorCode, gr.VendorName, gr.LocationID, gr.PlantCode, gr.StorageLocation,
		gr.PostingDate, gr.DocumentDate, gr.HeaderText, gr.CreatedAt,
	)
	if err != nil {
		return classify("insert goods receipt", err)
	}
	for i, it := range gr.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO goods_receipt_items (goods_receipt_id, line_no, material_id, material_code, quantity, unit_price, total_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			gr.ID, i+1, it.MaterialID, it.MaterialCode, it.Quantity, it.UnitPrice, it.TotalAmount,
		)
		if err != nil {
			return classify("insert goods receipt item", err)
		}
	}
	return nil
}

func (r *GoodsReceiptRepo) GetByID(ctx context.Context, id string) (*entity.GoodsReceipt, error) {
	gr, err := scanGoodsReceipt(r.q.QueryRow(ctx, `SELECT `+goodsReceiptColumns+` FROM goods_receipts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get goods receipt", err)
	}
	if err := r.loadItems(ctx, map[string]*entity.GoodsReceipt{gr.ID: gr}); err != nil {
		return nil, err
	}
	return gr, nil
}

func (r *GoodsReceiptRepo) List(ctx context.Context, limit int) ([]*entity.GoodsReceipt, error) {
	rows, err := queryLimited(ctx, r.q, `SELECT `+goodsReceiptColumns+` FROM goods_receipts ORDER BY created_at DESC`, limit)
	if err != nil {
		return nil, classify("list goods receipts", err)
	}
	out := make([]*entity.GoodsReceipt, 0)
	byID := make(map[string]*entity.GoodsReceipt)
	for rows.Next() {
		gr, err := scanGoodsReceipt(rows)
		if err != nil {
			rows.Close()
			return nil, classify("scan goods receipt", err)
		}
		out = append(out, gr)
		byID[gr.ID] = gr
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, classify("list goods receipts", err)
	}
	if err := r.loadItems(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GoodsReceiptRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM goods_receipts`).Scan(&n)
	return n, classify("count goods receipts", err)
}

func (r *GoodsReceiptRepo) loadItems(ctx context.Context, byID map[string]*entity.GoodsReceipt) error {
	if len(byID) == 0 {
		return nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT goods_receipt_id, material_id, material_code, quantity, unit_price, total_amount
		FROM goods_receipt_items WHERE goods_receipt_id = ANY($1) ORDER BY goods_receipt_id, line_no`, keys(byID))
	if err != nil {
		return classify("list goods receipt items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			docID string
			it    entity.GoodsReceiptItem
		)
		if err := rows.Scan(&docID, &it.MaterialID, &it.MaterialCode, &it.Quantity, &it.UnitPrice, &it.TotalAmount); err != nil {
			return classify("scan goods receipt item", err)
		}
		if gr, ok := byID[docID]; ok {
			gr.Items = append(gr.Items, it)
		}
	}
	return classify("list goods receipt items", rows.Err())
}

func scanGoodsReceipt(row pgx.Row) (*entity.GoodsReceipt, error) {
	var gr entity.GoodsReceipt
	err := row.Scan(&gr.ID, &gr.DocumentNumber, &gr.POID, &gr.PONumber, &gr.InvoiceID,
		&gr.VendorCode, &gr.VendorName, &gr.LocationID, &gr.PlantCode, &gr.StorageLocation,
		&gr.PostingDate, &gr.DocumentDate, &gr.HeaderText, &gr.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &gr, nil
}

// ── Salidas de mercancía ─────────────────────────────────────────────────────

// GoodsIssueRepo cabecera en goods_issues, líneas en goods_issue_items.
type GoodsIssueRepo struct {
	q Querier
}

func NewGoodsIssueRepository(q Querier) *GoodsIssueRepo {
	return &GoodsIssueRepo{q: q}
}

const goodsIssueColumns = `id, document_number, movement_type, location_id, plant_code, storage_location,
	posting_date, document_date, header_text, created_at`

func (r *GoodsIssueRepo) Create(ctx context.Context, gi *entity.GoodsIssue) error {
	_, err := r.q.Exec(ctx, `INSERT INTO goods_issues (`+goodsIssueColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		gi.ID, gi.DocumentNumber, string(gi.MovementType), gi.LocationID, gi.PlantCode, gi.StorageLocation,
		gi.PostingDate, gi.DocumentDate, gi.HeaderText, gi.CreatedAt,
	)
	if err != nil {
		return classify("insert goods issue", err)
	}
	for i, it := range gi.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO goods_issue_items (goods_issue_id, line_no, material_id, material_code, quantity, cost_center)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			gi.ID, i+1, it.MaterialID, it.MaterialCode, it.Quantity, it.CostCenter,
		)
		if err != nil {
			return classify("insert goods issue item", err)
		}
	}
	return nil
}

func (r *GoodsIssueRepo) GetByID(ctx context.Context, id string) (*entity.GoodsIssue, error) {
	gi, err := scanGoodsIssue(r.q.QueryRow(ctx, `SELECT `+goodsIssueColumns+` FROM goods_issues WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get goods issue", err)
	}
	if err := r.loadItems(ctx, map[string]*entity.GoodsIssue{gi.ID: gi}); err != nil {
		return nil, err
	}
	return gi, nil
}

func (r *GoodsIssueRepo) List(ctx context.Context, limit int) ([]*entity.GoodsIssue, error) {
	rows, err := queryLimited(ctx, r.q, `SELECT `+goodsIssueColumns+` FROM goods_issues ORDER BY created_at DESC`, limit)
	if err != nil {
		return nil, classify("list goods issues", err)
	}
	out := make([]*entity.GoodsIssue, 0)
	byID := make(map[string]*entity.GoodsIssue)
	for rows.Next() {
		gi, err := scanGoodsIssue(rows)
		if err != nil {
			rows.Close()
			return nil, classify("scan goods issue", err)
		}
		out = append(out, gi)
		byID[gi.ID] = gi
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, classify("list goods issues", err)
	}
	if err := r.loadItems(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GoodsIssueRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM goods_issues`).Scan(&n)
	return n, classify("count goods issues", err)
}

func (r *GoodsIssueRepo) loadItems(ctx context.Context, byID map[string]*entity.GoodsIssue) error {
	if len(byID) == 0 {
		return nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT goods_issue_id, material_id, material_code, quantity, cost_center
		FROM goods_issue_items WHERE goods_issue_id = ANY($1) ORDER BY goods_issue_id, line_no`, keys(byID))
	if err != nil {
		return classify("list goods issue items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			docID string
			it    entity.GoodsIssueItem
		)
		if err := rows.Scan(&docID, &it.MaterialID, &it.MaterialCode, &it.Quantity, &it.CostCenter); err != nil {
			return classify("scan goods issue item", err)
		}
		if gi, ok := byID[docID]; ok {
			gi.Items = append(gi.Items, it)
		}
	}
	return classify("list goods issue items", rows.Err())
}

func scanGoodsIssue(row pgx.Row) (*entity.GoodsIssue, error) {
	var (
		gi entity.GoodsIssue
		mt string
	)
	err := row.Scan(&gi.ID, &gi.DocumentNumber, &mt, &gi.LocationID, &gi.PlantCode, &gi.StorageLocation,
		&gi.PostingDate, &gi.DocumentDate, &gi.HeaderText, &gi.CreatedAt)
	if err != nil {
		return nil, err
	}
	gi.MovementType = entity.MovementType(mt)
	return &gi, nil
}

// ── Traslados ────────────────────────────────────────────────────────────────

// StockTransferRepo cabecera en stock_transfers, líneas en stock_transfer_items.
type StockTransferRepo struct {
	q Querier
}

func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

const stockTransferColumns = `id, document_number, from_location_id, to_location_id,
	posting_date, document_date, header_text, created_at`

func (r *StockTransferRepo) Create(ctx context.Context, tr *entity.StockTransfer) error {
	_, err := r.q.Exec(ctx, `INSERT INTO stock_transfers (`+stockTransferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tr.ID, tr.DocumentNumber, tr.FromLocationID, tr.ToLocationID,
		tr.PostingDate, tr.DocumentDate, tr.HeaderText, tr.CreatedAt,
	)
	if err != nil {
		return classify("insert stock transfer", err)
	}
	for i, it := range tr.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO stock_transfer_items (stock_transfer_id, line_no, material_id, material_code, quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			tr.ID, i+1, it.MaterialID, it.MaterialCode, it.Quantity,
		)
		if err != nil {
			return classify("insert stock transfer item", err)
		}
	}
	return nil
}

func (r *StockTransferRepo) GetByID(ctx context.Context, id string) (*entity.StockTransfer, error) {
	tr, err := scanStockTransfer(r.q.QueryRow(ctx, `SELECT `+stockTransferColumns+` FROM stock_transfers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get stock transfer", err)
	}
	if err := r.loadItems(ctx, map[string]*entity.StockTransfer{tr.ID: tr}); err != nil {
		return nil, err
	}
	return tr, nil
}

func (r *StockTransferRepo) List(ctx context.Context, limit int) ([]*entity.StockTransfer, error) {
	rows, err := queryLimited(ctx, r.q, `SELECT `+stockTransferColumns+` FROM stock_transfers ORDER BY created_at DESC`, limit)
	if err != nil {
		return nil, classify("list stock transfers", err)
	}
	out := make([]*entity.StockTransfer, 0)
	byID := make(map[string]*entity.StockTransfer)
	for rows.Next() {
		tr, err := scanStockTransfer(rows)
		if err != nil {
			rows.Close()
			return nil, classify("scan stock transfer", err)
		}
		out = append(out, tr)
		byID[tr.ID] = tr
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, classify("list stock transfers", err)
	}
	if err := r.loadItems(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StockTransferRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_transfers`).Scan(&n)
	return n, classify("count stock transfers", err)
}

func (r *StockTransferRepo) loadItems(ctx context.Context, byID map[string]*entity.StockTransfer) error {
	if len(byID) == 0 {
		return nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT stock_transfer_id, material_id, material_code, quantity
		FROM stock_transfer_items WHERE stock_transfer_id = ANY($1) ORDER BY stock_transfer_id, line_no`, keys(byID))
	if err != nil {
		return classify("list stock transfer items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			docID string
			it    entity.StockTransferItem
		)
		if err := rows.Scan(&docID, &it.MaterialID, &it.MaterialCode, &it.Quantity); err != nil {
			return classify("scan stock transfer item", err)
		}
		if tr, ok := byID[docID]; ok {
			tr.Items = append(tr.Items, it)
		}
	}
	return classify("list stock transfer items", rows.Err())
}

func scanStockTransfer(row pgx.Row) (*entity.StockTransfer, error) {
	var tr entity.StockTransfer
	err := row.Scan(&tr.ID, &tr.DocumentNumber, &tr.FromLocationID, &tr.ToLocationID,
		&tr.PostingDate, &tr.DocumentDate, &tr.HeaderText, &tr.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func keys[T any](m map[string]T) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
