package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

type movementRepo struct{ v ledgerView }

func (r movementRepo) Append(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	return r.v.write(func(l *ledger) error {
		l.movements = append(l.movements, &cp)
		return nil
	})
}

// List del más reciente al más antiguo; a igual created_at, el último insertado primero.
func (r movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	r.v.read(func(l *ledger) {
		for i := len(l.movements) - 1; i >= 0; i-- {
			m := l.movements[i]
			if f.MaterialID != "" && m.MaterialID != f.MaterialID {
				continue
			}
			if f.LocationID != "" && m.LocationID != f.LocationID {
				continue
			}
			if f.DocumentNumber != "" && m.DocumentNumber != f.DocumentNumber {
				continue
			}
			cp := *m
			out = append(out, &cp)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	if out == nil {
		out = []*entity.StockMovement{}
	}
	return out, nil
}

func (r movementRepo) SumByKey(_ context.Context) (map[entity.StockKey]decimal.Decimal, error) {
	sums := make(map[entity.StockKey]decimal.Decimal)
	r.v.read(func(l *ledger) {
		for _, m := range l.movements {
			k := m.Key()
			sums[k] = sums[k].Add(m.Quantity)
		}
	})
	return sums, nil
}

func (r movementRepo) Count(_ context.Context) (int, error) {
	var n int
	r.v.read(func(l *ledger) { n = len(l.movements) })
	return n, nil
}

type stockRepo struct{ v ledgerView }

func (r stockRepo) Get(_ context.Context, materialID, locationID string) (*entity.CurrentStock, error) {
	var out *entity.CurrentStock
	r.v.read(func(l *ledger) {
		if row, ok := l.stock[entity.StockKey{MaterialID: materialID, LocationID: locationID}]; ok {
			cp := *row
			out = &cp
		}
	})
	return out, nil
}

// ApplyDelta reemplaza la fila por una copia incrementada; la fila anterior nunca se modifica.
func (r stockRepo) ApplyDelta(_ context.Context, seed *entity.CurrentStock, delta decimal.Decimal) (*entity.CurrentStock, error) {
	if seed == nil {
		return nil, fmt.Errorf("%w: seed requerido", domain.ErrInvalidInput)
	}
	var out entity.CurrentStock
	err := r.v.write(func(l *ledger) error {
		k := seed.Key()
		prev, ok := l.stock[k]
		var next entity.CurrentStock
		if ok {
			next = *prev
			next.CurrentQuantity = prev.CurrentQuantity.Add(delta)
		} else {
			next = *seed
			next.CurrentQuantity = delta
			l.stockOrder = append(l.stockOrder, k)
		}
		next.LastUpdated = seed.LastUpdated
		l.stock[k] = &next
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r stockRepo) List(_ context.Context, limit int) ([]*entity.CurrentStock, error) {
	out := []*entity.CurrentStock{}
	r.v.read(func(l *ledger) {
		for _, k := range l.stockOrder {
			if limit > 0 && len(out) >= limit {
				return
			}
			cp := *l.stock[k]
			out = append(out, &cp)
		}
	})
	return out, nil
}

type receiptRepo struct{ v ledgerView }

func (r receiptRepo) Create(_ context.Context, gr *entity.GoodsReceipt) error {
	cp := copyReceipt(gr)
	return r.v.write(func(l *ledger) error {
		if _, ok := l.receipts.byID[gr.ID]; ok {
			return fmt.Errorf("%w: entrada %s", domain.ErrDuplicate, gr.ID)
		}
		l.receipts.put(gr.ID, cp)
		return nil
	})
}

func (r receiptRepo) GetByID(_ context.Context, id string) (*entity.GoodsReceipt, error) {
	var out *entity.GoodsReceipt
	r.v.read(func(l *ledger) { out = l.receipts.get(id) })
	return out, nil
}

func (r receiptRepo) List(_ context.Context, limit int) ([]*entity.GoodsReceipt, error) {
	var out []*entity.GoodsReceipt
	r.v.read(func(l *ledger) {
		out = l.receipts.newest(limit, func(g *entity.GoodsReceipt) time.Time { return g.CreatedAt })
	})
	return out, nil
}

func (r receiptRepo) Count(_ context.Context) (int, error) {
	var n int
	r.v.read(func(l *ledger) { n = len(l.receipts.order) })
	return n, nil
}

type issueRepo struct{ v ledgerView }

func (r issueRepo) Create(_ context.Context, gi *entity.GoodsIssue) error {
	cp := copyIssue(gi)
	return r.v.write(func(l *ledger) error {
		if _, ok := l.issues.byID[gi.ID]; ok {
			return fmt.Errorf("%w: salida %s", domain.ErrDuplicate, gi.ID)
		}
		l.issues.put(gi.ID, cp)
		return nil
	})
}

func (r issueRepo) GetByID(_ context.Context, id string) (*entity.GoodsIssue, error) {
	var out *entity.GoodsIssue
	r.v.read(func(l *ledger) { out = l.issues.get(id) })
	return out, nil
}

func (r issueRepo) List(_ context.Context, limit int) ([]*entity.GoodsIssue, error) {
	var out []*entity.GoodsIssue
	r.v.read(func(l *ledger) {
		out = l.issues.newest(limit, func(g *entity.GoodsIssue) time.Time { return g.CreatedAt })
	})
	return out, nil
}

func (r issueRepo) Count(_ context.Context) (int, error) {
	var n int
	r.v.read(func(l *ledger) { n = len(l.issues.order) })
	return n, nil
}

type transferRepo struct{ v ledgerView }

func (r transferRepo) Create(_ context.Context, tr *entity.StockTransfer) error {
	cp := copyTransfer(tr)
	return r.v.write(func(l *ledger) error {
		if _, ok := l.transfers.byID[tr.ID]; ok {
			return fmt.Errorf("%w: traslado %s", domain.ErrDuplicate, tr.ID)
		}
		l.transfers.put(tr.ID, cp)
		return nil
	})
}

func (r transferRepo) GetByID(_ context.Context, id string) (*entity.StockTransfer, error) {
	var out *entity.StockTransfer
	r.v.read(func(l *ledger) { out = l.transfers.get(id) })
	return out, nil
}

func (r transferRepo) List(_ context.Context, limit int) ([]*entity.StockTransfer, error) {
	var out []*entity.StockTransfer
	r.v.read(func(l *ledger) {
		out = l.transfers.newest(limit, func(t *entity.StockTransfer) time.Time { return t.CreatedAt })
	})
	return out, nil
}

func (r transferRepo) Count(_ context.Context) (int, error) {
	var n int
	r.v.read(func(l *ledger) { n = len(l.transfers.order) })
	return n, nil
}
