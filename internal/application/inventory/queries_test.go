package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

func TestStockQuery_BalanceAndHistoryLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	for i := 0; i < 5; i++ {
		_, err := f.post.PostGoodsReceipt(ctx, receipt("mat-1", 1))
		require.NoError(t, err)
	}

	_, err := f.query.Balance(ctx, "mat-2", "loc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bal, err := f.query.Balance(ctx, "mat-1", "loc-1")
	require.NoError(t, err)
	assert.True(t, bal.CurrentQuantity.Equal(decimal.NewFromInt(5)))

	capped := inventory.NewStockQueryUseCase(f.store.Stock(), f.store.Movements(), 3)
	history, err := capped.MovementHistory(ctx, dto.MovementHistoryQuery{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, history, 3)

	history, err = f.query.MovementHistory(ctx, dto.MovementHistoryQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, history, 2)

	all, err := f.query.CurrentBalances(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStockQuery_MovementTypes(t *testing.T) {
	f := newFixture(t, nil)
	types := f.query.MovementTypes()
	require.Len(t, types, 6)
	assert.Equal(t, "101", types[0].Code)
	assert.Equal(t, "increase", types[0].Direction)
}

func TestReconcile_DetectsAndFixesDrift(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	_, err := f.post.PostGoodsReceipt(ctx, receipt("mat-1", 40))
	require.NoError(t, err)

	uc := inventory.NewReconcileUseCase(f.store, f.store.Movements(), f.store.Stock(),
		inventory.NewRepositoryResolver(f.store.Materials(), f.store.Locations()), nil)

	drift, err := uc.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, drift)

	row, err := f.store.Stock().Get(ctx, "mat-1", "loc-1")
	require.NoError(t, err)
	_, err = f.store.Stock().ApplyDelta(ctx, row, decimal.NewFromInt(-15))
	require.NoError(t, err)

	drift, err = uc.Check(ctx)
	require.NoError(t, err)
	require.Len(t, drift, 1)
	assert.True(t, drift[0].Balance.Equal(decimal.NewFromInt(25)))
	assert.True(t, drift[0].Ledger.Equal(decimal.NewFromInt(40)))
	assert.True(t, drift[0].Difference.Equal(decimal.NewFromInt(15)))

	fixed, err := uc.Fix(ctx)
	require.NoError(t, err)
	assert.Len(t, fixed, 1)
	assert.True(t, balance(t, f, "mat-1", "loc-1").Equal(decimal.NewFromInt(40)))

	drift, err = uc.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, drift)
}

type captureSlips struct{ last inventory.DocumentSlip }

func (c *captureSlips) GenerateSlip(_ context.Context, slip inventory.DocumentSlip) ([]byte, error) {
	c.last = slip
	return []byte("%PDF-1.3"), nil
}

func TestDocumentQuery_GetListAndSlip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	gr, err := f.post.PostGoodsReceipt(ctx, receipt("mat-1", 12))
	require.NoError(t, err)

	slips := &captureSlips{}
	docs := inventory.NewDocumentQueryUseCase(f.store.Receipts(), f.store.Issues(), f.store.Transfers(),
		inventory.NewRepositoryResolver(f.store.Materials(), f.store.Locations()), slips, 100)

	got, err := docs.GetGoodsReceipt(ctx, gr.ID)
	require.NoError(t, err)
	assert.Equal(t, gr.DocumentNumber, got.DocumentNumber)
	assert.Empty(t, got.Movements)

	list, err := docs.ListGoodsReceipts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = docs.GetGoodsIssue(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pdf, name, err := docs.GoodsReceiptSlip(ctx, gr.ID)
	require.NoError(t, err)
	assert.Equal(t, gr.DocumentNumber+".pdf", name)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "Goods Receipt", slips.last.MovementLabel)
	require.Len(t, slips.last.Lines, 1)
	assert.Equal(t, "Tornillo M6", slips.last.Lines[0].Description)
	assert.Equal(t, "PC", slips.last.Lines[0].UnitOfMeasure)
}
