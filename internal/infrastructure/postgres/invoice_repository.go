package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo facturas de proveedor sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_number, vendor_code, vendor_name, invoice_date, invoice_amount, status, file_path, created_at`

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.VendorCode, inv.VendorName, inv.InvoiceDate,
		inv.InvoiceAmount, string(inv.Status), inv.FilePath, inv.CreatedAt,
	)
	return classify("insert invoice", err)
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get invoice", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) List(ctx context.Context, limit int) ([]*entity.Invoice, error) {
	rows, err := queryLimited(ctx, r.q, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`, limit)
	if err != nil {
		return nil, classify("list invoices", err)
	}
	defer rows.Close()

	out := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, classify("scan invoice", err)
		}
		out = append(out, inv)
	}
	return out, classify("list invoices", rows.Err())
}

func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error {
	return r.update(ctx, "update invoice status", `UPDATE invoices SET status = $2 WHERE id = $1`, id, string(status))
}

func (r *InvoiceRepo) SetFilePath(ctx context.Context, id, path string) error {
	return r.update(ctx, "set invoice file", `UPDATE invoices SET file_path = $2 WHERE id = $1`, id, path)
}

func (r *InvoiceRepo) update(ctx context.Context, op, query, id, value string) error {
	tag, err := r.q.Exec(ctx, query, id, value)
	if err != nil {
		return classify(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w: factura %s", op, domain.ErrNotFound, id)
	}
	return nil
}

func (r *InvoiceRepo) CountByStatus(ctx context.Context, status entity.InvoiceStatus) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE status = $1`, string(status)).Scan(&n)
	return n, classify("count invoices", err)
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv    entity.Invoice
		status string
	)
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.VendorCode, &inv.VendorName, &inv.InvoiceDate,
		&inv.InvoiceAmount, &status, &inv.FilePath, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	return &inv, nil
}
