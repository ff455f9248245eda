package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

func TestMaterialUseCase_Create(t *testing.T) {
	ctx := context.Background()
	uc := NewMaterialUseCase(memory.NewStore().Materials(), 1000)

	out, err := uc.Create(ctx, dto.CreateMaterialRequest{MaterialCode: "MAT-001", MaterialDescription: "Tornillo", UnitOfMeasure: "pc"})
	require.NoError(t, err)
	assert.Equal(t, "PC", out.UnitOfMeasure)

	_, err = uc.Create(ctx, dto.CreateMaterialRequest{MaterialCode: "MAT-001", MaterialDescription: "Otro", UnitOfMeasure: "KG"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateMaterialRequest{MaterialCode: "MAT-002", MaterialDescription: "Caja", UnitOfMeasure: "BOX"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestLocationUseCase_Create(t *testing.T) {
	ctx := context.Background()
	uc := NewLocationUseCase(memory.NewStore().Locations(), 1000)

	_, err := uc.Create(ctx, dto.CreateLocationRequest{PlantCode: "1000", PlantName: "Norte", StorageLocation: "0001"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateLocationRequest{PlantCode: "1000", StorageLocation: "0001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, dto.CreateLocationRequest{PlantCode: "1000"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPurchaseOrderUseCase_Create(t *testing.T) {
	ctx := context.Background()
	uc := NewPurchaseOrderUseCase(memory.NewStore().PurchaseOrders(), 1000)

	out, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{PONumber: "4500000001", VendorCode: "V1", PODate: "2026-02-10"})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10", out.PODate)

	_, err = uc.Create(ctx, dto.CreatePurchaseOrderRequest{PONumber: "4500000002", VendorCode: "V1", PODate: "10/02/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceUseCase_StatusAndAttachment(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := memory.NewStore()
	uc := NewInvoiceUseCase(store.Invoices(), dir, 1000)

	inv, err := uc.Create(ctx, dto.CreateInvoiceRequest{
		InvoiceNumber: "F-001", VendorCode: "V1", InvoiceDate: "2026-02-11", InvoiceAmount: decimal.RequireFromString("120.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", inv.Status)

	require.NoError(t, uc.UpdateStatus(ctx, inv.ID, dto.UpdateInvoiceStatusRequest{Status: "verified"}))
	assert.ErrorIs(t, uc.UpdateStatus(ctx, inv.ID, dto.UpdateInvoiceStatusRequest{Status: "paid"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateStatus(ctx, "nope", dto.UpdateInvoiceStatusRequest{Status: "posted"}), domain.ErrNotFound)

	path, err := uc.AttachFile(ctx, inv.ID, "../../factura.pdf", strings.NewReader("contenido"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, inv.ID+"_factura.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))

	got, err := uc.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "verified", got.Status)
	assert.Equal(t, path, got.FilePath)

	_, err = uc.AttachFile(ctx, "nope", "x.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDashboardUseCase_GetStats(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := NewMaterialUseCase(store.Materials(), 0).Create(ctx, dto.CreateMaterialRequest{MaterialCode: "M1", MaterialDescription: "x", UnitOfMeasure: "EA"})
	require.NoError(t, err)
	_, err = NewInvoiceUseCase(store.Invoices(), t.TempDir(), 0).Create(ctx, dto.CreateInvoiceRequest{InvoiceNumber: "F1", VendorCode: "V1", InvoiceDate: "2026-01-01"})
	require.NoError(t, err)

	uc := NewDashboardUseCase(DashboardRepos{
		Materials: store.Materials(),
		Locations: store.Locations(),
		Invoices:  store.Invoices(),
		Receipts:  store.Receipts(),
		Issues:    store.Issues(),
		Transfers: store.Transfers(),
		Movements: store.Movements(),
	})
	stats, err := uc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMaterials)
	assert.Equal(t, 1, stats.PendingInvoices)
	assert.Zero(t, stats.TotalMovements)
}
