package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

type materialRepo struct{ s *Store }

func (r materialRepo) Create(_ context.Context, m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials.byID[m.ID]; ok {
		return fmt.Errorf("%w: material %s", domain.ErrDuplicate, m.ID)
	}
	for _, existing := range r.s.materials.byID {
		if existing.Code == m.Code {
			return fmt.Errorf("%w: código de material %s", domain.ErrDuplicate, m.Code)
		}
	}
	cp := *m
	r.s.materials.put(m.ID, &cp)
	return nil
}

func (r materialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.materials.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r materialRepo) GetByCode(_ context.Context, code string) (*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.materials.byID {
		if m.Code == code {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r materialRepo) List(_ context.Context, limit int) ([]*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.materials.newest(limit, func(m *entity.Material) time.Time { return m.CreatedAt }), nil
}

func (r materialRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.materials.order), nil
}

type locationRepo struct{ s *Store }

// Create rechaza un par (centro, almacén) ya registrado.
func (r locationRepo) Create(_ context.Context, l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations.byID[l.ID]; ok {
		return fmt.Errorf("%w: ubicación %s", domain.ErrDuplicate, l.ID)
	}
	for _, existing := range r.s.locations.byID {
		if existing.PlantCode == l.PlantCode && existing.StorageLocation == l.StorageLocation {
			return fmt.Errorf("%w: ubicación %s/%s", domain.ErrDuplicate, l.PlantCode, l.StorageLocation)
		}
	}
	cp := *l
	r.s.locations.put(l.ID, &cp)
	return nil
}

func (r locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.locations.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r locationRepo) List(_ context.Context, limit int) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.locations.newest(limit, func(l *entity.Location) time.Time { return l.CreatedAt }), nil
}

func (r locationRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.locations.order), nil
}

type purchaseOrderRepo struct{ s *Store }

func (r purchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.purchaseOrders.byID {
		if existing.ID == po.ID || existing.PONumber == po.PONumber {
			return fmt.Errorf("%w: orden de compra %s", domain.ErrDuplicate, po.PONumber)
		}
	}
	cp := *po
	r.s.purchaseOrders.put(po.ID, &cp)
	return nil
}

func (r purchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	po, ok := r.s.purchaseOrders.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *po
	return &cp, nil
}

func (r purchaseOrderRepo) List(_ context.Context, limit int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.purchaseOrders.newest(limit, func(p *entity.PurchaseOrder) time.Time { return p.CreatedAt }), nil
}

type invoiceRepo struct{ s *Store }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.invoices.byID {
		if existing.ID == inv.ID || existing.InvoiceNumber == inv.InvoiceNumber {
			return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
		}
	}
	cp := *inv
	r.s.invoices.put(inv.ID, &cp)
	return nil
}

func (r invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r invoiceRepo) List(_ context.Context, limit int) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.invoices.newest(limit, func(i *entity.Invoice) time.Time { return i.CreatedAt }), nil
}

func (r invoiceRepo) UpdateStatus(_ context.Context, id string, status entity.InvoiceStatus) error {
	return r.update(id, func(inv *entity.Invoice) { inv.Status = status })
}

func (r invoiceRepo) SetFilePath(_ context.Context, id, path string) error {
	return r.update(id, func(inv *entity.Invoice) { inv.FilePath = path })
}

func (r invoiceRepo) update(id string, fn func(inv *entity.Invoice)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices.byID[id]
	if !ok {
		return fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	cp := *inv
	fn(&cp)
	r.s.invoices.byID[id] = &cp
	return nil
}

func (r invoiceRepo) CountByStatus(_ context.Context, status entity.InvoiceStatus) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, inv := range r.s.invoices.byID {
		if inv.Status == status {
			n++
		}
	}
	return n, nil
}
