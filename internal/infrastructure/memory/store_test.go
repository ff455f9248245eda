package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

func seedRow(materialID, locationID string) *entity.CurrentStock {
	return &entity.CurrentStock{
		ID:           materialID + "-" + locationID,
		MaterialID:   materialID,
		MaterialCode: "MAT-" + materialID,
		LocationID:   locationID,
		LastUpdated:  time.Now(),
	}
}

func TestApplyDelta_CreatesThenIncrements(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	row, err := s.Stock().ApplyDelta(ctx, seedRow("m1", "l1"), decimal.NewFromInt(25))
	require.NoError(t, err)
	assert.True(t, row.CurrentQuantity.Equal(decimal.NewFromInt(25)))

	later := seedRow("m1", "l1")
	later.MaterialCode = "OTRO"
	row, err = s.Stock().ApplyDelta(ctx, later, decimal.NewFromInt(-40))
	require.NoError(t, err)
	assert.True(t, row.CurrentQuantity.Equal(decimal.NewFromInt(-15)))
	assert.Equal(t, "MAT-m1", row.MaterialCode, "los datos descriptivos se fijan al crear la fila")
}

func TestApplyDelta_ConcurrentIncrementsAreNotLost(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Stock().ApplyDelta(ctx, seedRow("m1", "l1"), decimal.NewFromInt(2))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	row, err := s.Stock().Get(ctx, "m1", "l1")
	require.NoError(t, err)
	assert.True(t, row.CurrentQuantity.Equal(decimal.NewFromInt(100)))
}

func TestRun_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.Run(ctx, func(repos inventory.LedgerRepos) error {
		require.NoError(t, repos.Movements.Append(ctx, &entity.StockMovement{ID: "e1", MaterialID: "m1", LocationID: "l1", Quantity: decimal.NewFromInt(5)}))
		_, err := repos.Stock.ApplyDelta(ctx, seedRow("m1", "l1"), decimal.NewFromInt(5))
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := s.Movements().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	row, err := s.Stock().Get(ctx, "m1", "l1")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestRun_UncommittedWritesAreInvisible(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.Run(ctx, func(repos inventory.LedgerRepos) error {
		require.NoError(t, repos.Movements.Append(ctx, &entity.StockMovement{ID: "e1", Quantity: decimal.NewFromInt(1)}))
		n, err := s.Movements().Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		return nil
	})
	require.NoError(t, err)

	n, err := s.Movements().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMovementList_NewestFirstWithFilters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	movs := []*entity.StockMovement{
		{ID: "a", MaterialID: "m1", LocationID: "l1", DocumentNumber: "GR1", Quantity: decimal.NewFromInt(100), CreatedAt: base},
		{ID: "b", MaterialID: "m1", LocationID: "l1", DocumentNumber: "GI1", Quantity: decimal.NewFromInt(-30), CreatedAt: base.Add(time.Minute)},
		{ID: "c", MaterialID: "m2", LocationID: "l1", DocumentNumber: "GI1", Quantity: decimal.NewFromInt(-1), CreatedAt: base.Add(time.Minute)},
	}
	for _, m := range movs {
		require.NoError(t, s.Movements().Append(ctx, m))
	}

	all, err := s.Movements().List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	byMaterial, err := s.Movements().List(ctx, repository.MovementFilter{MaterialID: "m1"})
	require.NoError(t, err)
	assert.Len(t, byMaterial, 2)

	byDoc, err := s.Movements().List(ctx, repository.MovementFilter{DocumentNumber: "GI1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, byDoc, 1)
	assert.Equal(t, "c", byDoc[0].ID)

	sums, err := s.Movements().SumByKey(ctx)
	require.NoError(t, err)
	assert.True(t, sums[entity.StockKey{MaterialID: "m1", LocationID: "l1"}].Equal(decimal.NewFromInt(70)))
}

func TestMaterials_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Materials().Create(ctx, &entity.Material{ID: "m1", Code: "MAT-001", UnitOfMeasure: entity.UnitPieces}))
	err := s.Materials().Create(ctx, &entity.Material{ID: "m2", Code: "MAT-001", UnitOfMeasure: entity.UnitPieces})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	m, err := s.Materials().GetByCode(ctx, "MAT-001")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "m1", m.ID)

	missing, err := s.Materials().GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInvoices_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Invoices().Create(ctx, &entity.Invoice{ID: "i1", InvoiceNumber: "F-1", Status: entity.InvoiceStatusPending}))
	require.NoError(t, s.Invoices().UpdateStatus(ctx, "i1", entity.InvoiceStatusVerified))
	assert.ErrorIs(t, s.Invoices().UpdateStatus(ctx, "i9", entity.InvoiceStatusVerified), domain.ErrNotFound)

	pending, err := s.Invoices().CountByStatus(ctx, entity.InvoiceStatusPending)
	require.NoError(t, err)
	assert.Zero(t, pending)
	inv, err := s.Invoices().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusVerified, inv.Status)
}

func TestDocuments_ReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	price := decimal.RequireFromString("2.5")

	require.NoError(t, s.Receipts().Create(ctx, &entity.GoodsReceipt{
		ID: "gr1", DocumentNumber: "GR00000001",
		Items: []entity.GoodsReceiptItem{{MaterialID: "m1", Quantity: decimal.NewFromInt(10), UnitPrice: &price}},
	}))
	require.NoError(t, s.Issues().Create(ctx, &entity.GoodsIssue{
		ID: "gi1", DocumentNumber: "GI00000001",
		Items: []entity.GoodsIssueItem{{MaterialID: "m1", Quantity: decimal.NewFromInt(3)}},
	}))

	gr, err := s.Receipts().GetByID(ctx, "gr1")
	require.NoError(t, err)
	gr.DocumentNumber = "GR99999999"
	gr.Items[0].Quantity = decimal.NewFromInt(999)
	*gr.Items[0].UnitPrice = decimal.NewFromInt(999)

	listed, err := s.Receipts().List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	listed[0].Items[0].Quantity = decimal.NewFromInt(777)

	again, err := s.Receipts().GetByID(ctx, "gr1")
	require.NoError(t, err)
	assert.Equal(t, "GR00000001", again.DocumentNumber)
	assert.True(t, again.Items[0].Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, again.Items[0].UnitPrice.Equal(decimal.RequireFromString("2.5")))

	gi, err := s.Issues().GetByID(ctx, "gi1")
	require.NoError(t, err)
	gi.Items[0].Quantity = decimal.NewFromInt(999)
	issues, err := s.Issues().List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.True(t, issues[0].Items[0].Quantity.Equal(decimal.NewFromInt(3)))

	missing, err := s.Issues().GetByID(ctx, "gi9")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMaterials_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Materials().Create(ctx, &entity.Material{ID: "m1", Code: "MAT-001", UnitOfMeasure: entity.UnitPieces}))

	list, err := s.Materials().List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	list[0].Code = "MAT-XXX"

	m, err := s.Materials().GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "MAT-001", m.Code)
}
