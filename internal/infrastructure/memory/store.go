// Package memory implementa todos los puertos de persistencia en proceso.
// Se usa con STORAGE_DRIVER=memory y en los tests de casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// table filas indexadas por ID que conservan el orden de inserción.
// Las lecturas (get, newest) devuelven copias hechas con copyFn.
type table[T any] struct {
	byID   map[string]*T
	order  []string
	copyFn func(*T) *T
}

func newTable[T any](copyFn func(*T) *T) table[T] {
	if copyFn == nil {
		copyFn = func(v *T) *T { cp := *v; return &cp }
	}
	return table[T]{byID: make(map[string]*T), copyFn: copyFn}
}

func (t *table[T]) put(id string, v *T) {
	if _, ok := t.byID[id]; !ok {
		t.order = append(t.order, id)
	}
	t.byID[id] = v
}

// get devuelve una copia de la fila o nil.
func (t table[T]) get(id string) *T {
	v, ok := t.byID[id]
	if !ok {
		return nil
	}
	return t.copyFn(v)
}

func (t table[T]) clone() table[T] {
	c := table[T]{
		byID:   make(map[string]*T, len(t.byID)),
		order:  append([]string(nil), t.order...),
		copyFn: t.copyFn,
	}
	for k, v := range t.byID {
		c.byID[k] = v
	}
	return c
}

// newest devuelve copias de hasta limit filas, de la más reciente a la más antigua (limit <= 0: todas).
func (t table[T]) newest(limit int, createdAt func(*T) time.Time) []*T {
	out := make([]*T, 0, len(t.order))
	for i := len(t.order) - 1; i >= 0; i-- {
		out = append(out, t.byID[t.order[i]])
	}
	sort.SliceStable(out, func(i, j int) bool { return createdAt(out[i]).After(createdAt(out[j])) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i, v := range out {
		out[i] = t.copyFn(v)
	}
	return out
}

func copyReceipt(gr *entity.GoodsReceipt) *entity.GoodsReceipt {
	cp := *gr
	cp.Items = make([]entity.GoodsReceiptItem, len(gr.Items))
	for i, it := range gr.Items {
		if it.UnitPrice != nil {
			p := *it.UnitPrice
			it.UnitPrice = &p
		}
		if it.TotalAmount != nil {
			a := *it.TotalAmount
			it.TotalAmount = &a
		}
		cp.Items[i] = it
	}
	return &cp
}

func copyIssue(gi *entity.GoodsIssue) *entity.GoodsIssue {
	cp := *gi
	cp.Items = append([]entity.GoodsIssueItem(nil), gi.Items...)
	return &cp
}

func copyTransfer(tr *entity.StockTransfer) *entity.StockTransfer {
	cp := *tr
	cp.Items = append([]entity.StockTransferItem(nil), tr.Items...)
	return &cp
}

// ledger estado que solo se modifica dentro de transacciones de contabilización.
type ledger struct {
	movements  []*entity.StockMovement
	stock      map[entity.StockKey]*entity.CurrentStock
	stockOrder []entity.StockKey
	receipts   table[entity.GoodsReceipt]
	issues     table[entity.GoodsIssue]
	transfers  table[entity.StockTransfer]
}

func newLedger() *ledger {
	return &ledger{
		stock:     make(map[entity.StockKey]*entity.CurrentStock),
		receipts:  newTable(copyReceipt),
		issues:    newTable(copyIssue),
		transfers: newTable(copyTransfer),
	}
}

// clone copia superficial: los asientos y documentos son inmutables y las filas de
// saldo se reemplazan en lugar de modificarse.
func (l *ledger) clone() *ledger {
	c := &ledger{
		movements:  append([]*entity.StockMovement(nil), l.movements...),
		stock:      make(map[entity.StockKey]*entity.CurrentStock, len(l.stock)),
		stockOrder: append([]entity.StockKey(nil), l.stockOrder...),
		receipts:   l.receipts.clone(),
		issues:     l.issues.clone(),
		transfers:  l.transfers.clone(),
	}
	for k, v := range l.stock {
		c.stock[k] = v
	}
	return c
}

// Store almacén en memoria. Las transacciones se serializan con txMu y trabajan sobre
// una copia del libro que se publica solo si fn termina sin error.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	ledger *ledger

	materials      table[entity.Material]
	locations      table[entity.Location]
	purchaseOrders table[entity.PurchaseOrder]
	invoices       table[entity.Invoice]
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		ledger:         newLedger(),
		materials:      newTable[entity.Material](nil),
		locations:      newTable[entity.Location](nil),
		purchaseOrders: newTable[entity.PurchaseOrder](nil),
		invoices:       newTable[entity.Invoice](nil),
	}
}

// Run ejecuta fn contra una copia del libro; si fn falla la copia se descarta.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.LedgerRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	work := s.ledger.clone()
	s.mu.RUnlock()

	view := ledgerView{s: s, tx: work}
	if err := fn(view.repos()); err != nil {
		return err
	}

	s.mu.Lock()
	s.ledger = work
	s.mu.Unlock()
	return nil
}

// LedgerRepos repositorios del libro fuera de transacción (lecturas y escrituras sueltas).
func (s *Store) LedgerRepos() inventory.LedgerRepos {
	return ledgerView{s: s}.repos()
}

func (s *Store) Movements() repository.StockMovementRepository { return movementRepo{ledgerView{s: s}} }
func (s *Store) Stock() repository.CurrentStockRepository      { return stockRepo{ledgerView{s: s}} }
func (s *Store) Receipts() repository.GoodsReceiptRepository   { return receiptRepo{ledgerView{s: s}} }
func (s *Store) Issues() repository.GoodsIssueRepository       { return issueRepo{ledgerView{s: s}} }
func (s *Store) Transfers() repository.StockTransferRepository { return transferRepo{ledgerView{s: s}} }

func (s *Store) Materials() repository.MaterialRepository           { return materialRepo{s} }
func (s *Store) Locations() repository.LocationRepository           { return locationRepo{s} }
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return purchaseOrderRepo{s} }
func (s *Store) Invoices() repository.InvoiceRepository             { return invoiceRepo{s} }

// ledgerView da acceso al libro: la copia de la transacción en curso o, si tx es nil,
// el estado publicado bajo los candados del Store.
type ledgerView struct {
	s  *Store
	tx *ledger
}

func (v ledgerView) repos() inventory.LedgerRepos {
	return inventory.LedgerRepos{
		Movements: movementRepo{v},
		Stock:     stockRepo{v},
		Receipts:  receiptRepo{v},
		Issues:    issueRepo{v},
		Transfers: transferRepo{v},
	}
}

func (v ledgerView) read(fn func(l *ledger)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	fn(v.s.ledger)
}

// write fuera de transacción también toma txMu para no perderse al publicar una copia.
func (v ledgerView) write(fn func(l *ledger) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.txMu.Lock()
	defer v.s.txMu.Unlock()
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.ledger)
}
