package inventory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

type fixture struct {
	store *memory.Store
	post  *inventory.PostDocumentUseCase
	query *inventory.StockQueryUseCase
}

func newFixture(t *testing.T, tx inventory.TxRunner) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Materials().Create(ctx, &entity.Material{
		ID: "mat-1", Code: "MAT-001", Description: "Tornillo M6", UnitOfMeasure: entity.UnitPieces, CreatedAt: time.Now(),
	}))
	require.NoError(t, store.Materials().Create(ctx, &entity.Material{
		ID: "mat-2", Code: "MAT-002", Description: "Aceite", UnitOfMeasure: entity.UnitLiters, CreatedAt: time.Now(),
	}))
	require.NoError(t, store.Locations().Create(ctx, &entity.Location{
		ID: "loc-1", PlantCode: "1000", PlantName: "Planta Norte", StorageLocation: "0001", CreatedAt: time.Now(),
	}))
	require.NoError(t, store.Locations().Create(ctx, &entity.Location{
		ID: "loc-2", PlantCode: "1000", PlantName: "Planta Norte", StorageLocation: "0002", CreatedAt: time.Now(),
	}))
	if tx == nil {
		tx = store
	}
	resolver := inventory.NewRepositoryResolver(store.Materials(), store.Locations())
	post := inventory.NewPostDocumentUseCase(
		tx, resolver, inventory.NewMovementRecorder(), inventory.NewBalanceAggregator(nil), nil,
		inventory.PostingOptions{MaxRetries: 3, RetryBackoff: time.Millisecond},
	)
	return &fixture{
		store: store,
		post:  post,
		query: inventory.NewStockQueryUseCase(store.Stock(), store.Movements(), 1000),
	}
}

func receipt(materialID string, qty int64) dto.CreateGoodsReceiptRequest {
	return dto.CreateGoodsReceiptRequest{
		PONumber:    "4500000001",
		VendorCode:  "V100",
		VendorName:  "Proveedor Uno",
		LocationID:  "loc-1",
		PostingDate: "2026-03-01",
		Items:       []dto.GoodsReceiptItemRequest{{MaterialID: materialID, Quantity: decimal.NewFromInt(qty)}},
	}
}

func issue(mt string, materialID string, qty int64) dto.CreateGoodsIssueRequest {
	return dto.CreateGoodsIssueRequest{
		MovementType: mt,
		LocationID:   "loc-1",
		PostingDate:  "2026-03-02",
		Items:        []dto.GoodsIssueItemRequest{{MaterialID: materialID, Quantity: decimal.NewFromInt(qty)}},
	}
}

func balance(t *testing.T, f *fixture, materialID, locationID string) decimal.Decimal {
	t.Helper()
	row, err := f.store.Stock().Get(context.Background(), materialID, locationID)
	require.NoError(t, err)
	require.NotNil(t, row)
	return row.CurrentQuantity
}

func TestPostGoodsReceipt_FirstTouchCreatesRow(t *testing.T) {
	f := newFixture(t, nil)

	out, err := f.post.PostGoodsReceipt(context.Background(), receipt("mat-1", 25))
	require.NoError(t, err)

	assert.Regexp(t, `^GR[0-9A-F]{8}$`, out.DocumentNumber)
	require.Len(t, out.Movements, 1)
	assert.Equal(t, "101", out.Movements[0].MovementType)
	assert.Equal(t, "4500000001", out.Movements[0].ReferenceDocument)
	assert.Equal(t, "2026-03-01", out.Movements[0].PostingDate)

	row, err := f.store.Stock().Get(context.Background(), "mat-1", "loc-1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.CurrentQuantity.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "MAT-001", row.MaterialCode)
	assert.Equal(t, "Tornillo M6", row.MaterialDescription)
	assert.Equal(t, "0001", row.StorageLocation)
}

func TestPostDocuments_ReceiptThenIssue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	gr, err := f.post.PostGoodsReceipt(ctx, receipt("mat-1", 100))
	require.NoError(t, err)
	gi, err := f.post.PostGoodsIssue(ctx, issue("201", "mat-1", 30))
	require.NoError(t, err)

	assert.True(t, balance(t, f, "mat-1", "loc-1").Equal(decimal.NewFromInt(70)))

	history, err := f.query.MovementHistory(ctx, dto.MovementHistoryQuery{MaterialID: "mat-1"})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, gi.DocumentNumber, history[0].DocumentNumber)
	assert.True(t, history[0].Quantity.Equal(decimal.NewFromInt(-30)))
	assert.Empty(t, history[0].ReferenceDocument)
	assert.Equal(t, gr.DocumentNumber, history[1].DocumentNumber)
	assert.True(t, history[1].Quantity.Equal(decimal.NewFromInt(100)))
}

func TestPostGoodsIssue_OverIssueGoesNegative(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.post.PostGoodsReceipt(ctx, receipt("mat-1", 70))
	require.NoError(t, err)
	_, err = f.post.PostGoodsIssue(ctx, issue("601", "mat-1", 200))
	require.NoError(t, err)

	assert.True(t, balance(t, f, "mat-1", "loc-1").Equal(decimal.NewFromInt(-130)))
}

func TestPostGoodsIssue_SignPerMovementType(t *testing.T) {
	cases := []struct {
		mt   string
		want int64
	}{
		{"201", -5},
		{"601", -5},
		{"122", -5},
		{"161", 5},
	}
	for _, tc := range cases {
		t.Run(tc.mt, func(t *testing.T) {
			f := newFixture(t, nil)
			out, err := f.post.PostGoodsIssue(context.Background(), issue(tc.mt, "mat-1", 5))
			require.NoError(t, err)
			require.Len(t, out.Movements, 1)
			assert.True(t, out.Movements[0].Quantity.Equal(decimal.NewFromInt(tc.want)))
			assert.True(t, balance(t, f, "mat-1", "loc-1").Equal(decimal.NewFromInt(tc.want)))
		})
	}
}

func TestPostGoodsIssue_RejectsForeignMovementTypes(t *testing.T) {
	for _, mt := range []string{"101", "311", "999", ""} {
		f := newFixture(t, nil)
		_, err := f.post.PostGoodsIssue(context.Background(), issue(mt, "mat-1", 5))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, mt)
	}
}

func TestPostGoodsReceipt_ValidationLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	cases := map[string]func(r *dto.CreateGoodsReceiptRequest){
		"sin líneas":        func(r *dto.CreateGoodsReceiptRequest) { r.Items = nil },
		"cantidad cero":     func(r *dto.CreateGoodsReceiptRequest) { r.Items[0].Quantity = decimal.Zero },
		"cantidad negativa": func(r *dto.CreateGoodsReceiptRequest) { r.Items[0].Quantity = decimal.NewFromInt(-1) },
		"sin fecha":         func(r *dto.CreateGoodsReceiptRequest) { r.PostingDate = "" },
		"fecha inválida":    func(r *dto.CreateGoodsReceiptRequest) { r.PostingDate = "01/03/2026" },
		"código distinto":   func(r *dto.CreateGoodsReceiptRequest) { r.Items[0].MaterialCode = "MAT-002" },
		"cantidad con 4 decimales": func(r *dto.CreateGoodsReceiptRequest) {
			r.Items[0].Quantity = decimal.RequireFromString("0.0004")
		},
		"precio con 5 decimales": func(r *dto.CreateGoodsReceiptRequest) {
			p := decimal.RequireFromString("1.23456")
			r.Items[0].UnitPrice = &p
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil)
			req := receipt("mat-1", 10)
			mutate(&req)
			_, err := f.post.PostGoodsReceipt(ctx, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			n, err := f.store.Movements().Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestPostDocuments_QuantityScale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	req := receipt("mat-1", 0)
	req.Items[0].Quantity = decimal.RequireFromString("1.2345")
	_, err := f.post.PostGoodsReceipt(ctx, req)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "items[0].quantity", vErr.Field)

	// Ceros a la derecha no cuentan como decimales.
	req.Items[0].Quantity = decimal.RequireFromString("1.2500")
	price := decimal.RequireFromString("0.1234")
	req.Items[0].UnitPrice = &price
	out, err := f.post.PostGoodsReceipt(ctx, req)
	require.NoError(t, err)
	assert.True(t, out.Movements[0].Quantity.Equal(decimal.RequireFromString("1.25")))

	is := issue("201", "mat-1", 0)
	is.Items[0].Quantity = decimal.RequireFromString("0.0001")
	_, err = f.post.PostGoodsIssue(ctx, is)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.post.PostStockTransfer(ctx, dto.CreateStockTransferRequest{
		FromLocationID: "loc-1", ToLocationID: "loc-2", PostingDate: "2026-03-03",
		Items: []dto.StockTransferItemRequest{{MaterialID: "mat-1", Quantity: decimal.RequireFromString("0.5005")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	n, err := f.store.Movements().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPostGoodsReceipt_UnknownMaterialAbortsWholeDocument(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	req := receipt("mat-1", 10)
	req.Items = append(req.Items, dto.GoodsReceiptItemRequest{MaterialID: "mat-x", Quantity: decimal.NewFromInt(3)})
	_, err := f.post.PostGoodsReceipt(ctx, req)
	require.ErrorIs(t, err, domain.ErrMaterialNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err := f.store.Movements().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	row, err := f.store.Stock().Get(ctx, "mat-1", "loc-1")
	require.NoError(t, err)
	assert.Nil(t, row)
	docs, err := f.store.Receipts().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, docs)
}

func TestPostGoodsReceipt_UnknownLocation(t *testing.T) {
	f := newFixture(t, nil)
	req := receipt("mat-1", 10)
	req.LocationID = "loc-x"
	_, err := f.post.PostGoodsReceipt(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestPostGoodsReceipt_LineAmounts(t *testing.T) {
	f := newFixture(t, nil)
	price := decimal.RequireFromString("2.5")
	req := receipt("mat-1", 4)
	req.Items[0].UnitPrice = &price

	out, err := f.post.PostGoodsReceipt(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out.Items[0].TotalAmount)
	assert.True(t, out.Items[0].TotalAmount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "2026-03-01", out.DocumentDate)
}

func TestPostStockTransfer_TwoLinkedEntries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	_, err := f.post.PostGoodsReceipt(ctx, receipt("mat-1", 50))
	require.NoError(t, err)

	out, err := f.post.PostStockTransfer(ctx, dto.CreateStockTransferRequest{
		FromLocationID: "loc-1",
		ToLocationID:   "loc-2",
		PostingDate:    "2026-03-03",
		Items:          []dto.StockTransferItemRequest{{MaterialID: "mat-1", Quantity: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^TR[0-9A-F]{8}$`, out.DocumentNumber)
	require.Len(t, out.Movements, 2)
	assert.Equal(t, "loc-1", out.Movements[0].LocationID)
	assert.True(t, out.Movements[0].Quantity.Equal(decimal.NewFromInt(-20)))
	assert.Equal(t, "loc-2", out.Movements[1].LocationID)
	assert.True(t, out.Movements[1].Quantity.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, out.Movements[0].DocumentNumber, out.Movements[1].DocumentNumber)

	assert.True(t, balance(t, f, "mat-1", "loc-1").Equal(decimal.NewFromInt(30)))
	assert.True(t, balance(t, f, "mat-1", "loc-2").Equal(decimal.NewFromInt(20)))
}

func TestPostStockTransfer_SameLocationRejected(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.post.PostStockTransfer(context.Background(), dto.CreateStockTransferRequest{
		FromLocationID: "loc-1",
		ToLocationID:   "loc-1",
		PostingDate:    "2026-03-03",
		Items:          []dto.StockTransferItemRequest{{MaterialID: "mat-1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPostDocuments_ConcurrentPostingsOnSameKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := f.post.PostGoodsReceipt(ctx, receipt("mat-1", 10))
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := f.post.PostGoodsIssue(ctx, issue("201", "mat-1", 4))
		assert.NoError(t, err)
	}()
	wg.Wait()

	assert.True(t, balance(t, f, "mat-1", "loc-1").Equal(decimal.NewFromInt(6)))
}

func TestPostDocuments_BalanceEqualsLedgerSum(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = f.post.PostGoodsReceipt(ctx, receipt("mat-2", int64(i+1)))
			} else {
				_, err = f.post.PostGoodsIssue(ctx, issue("201", "mat-2", int64(i)))
			}
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	sums, err := f.store.Movements().SumByKey(ctx)
	require.NoError(t, err)
	key := entity.StockKey{MaterialID: "mat-2", LocationID: "loc-1"}
	assert.True(t, sums[key].Equal(balance(t, f, "mat-2", "loc-1")))
}

func TestLedger_ReadingDoesNotReapply(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	_, err := f.post.PostGoodsReceipt(ctx, receipt("mat-1", 25))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		history, err := f.query.MovementHistory(ctx, dto.MovementHistoryQuery{MaterialID: "mat-1"})
		require.NoError(t, err)
		require.Len(t, history, 1)
		entries, err := f.store.Movements().List(ctx, repository.MovementFilter{MaterialID: "mat-1"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, balance(t, f, "mat-1", "loc-1").Equal(decimal.NewFromInt(25)))
	}

	// Aplicar otra vez un asiento ya aplicado duplica el saldo: no hay deduplicación.
	entries, err := f.store.Movements().List(ctx, repository.MovementFilter{MaterialID: "mat-1"})
	require.NoError(t, err)
	material, err := f.store.Materials().GetByID(ctx, "mat-1")
	require.NoError(t, err)
	location, err := f.store.Locations().GetByID(ctx, "loc-1")
	require.NoError(t, err)
	row, err := inventory.NewBalanceAggregator(nil).Apply(ctx, f.store.Stock(), entries[0], material, location)
	require.NoError(t, err)
	assert.True(t, row.CurrentQuantity.Equal(decimal.NewFromInt(50)))

	sums, err := f.store.Movements().SumByKey(ctx)
	require.NoError(t, err)
	key := entity.StockKey{MaterialID: "mat-1", LocationID: "loc-1"}
	assert.True(t, sums[key].Equal(decimal.NewFromInt(25)))
	assert.False(t, sums[key].Equal(balance(t, f, "mat-1", "loc-1")))
}

// flakyTx falla las primeras n transacciones con un conflicto de concurrencia.
type flakyTx struct {
	inner    inventory.TxRunner
	failures int32
	calls    int32
}

func (f *flakyTx) Run(ctx context.Context, fn func(repos inventory.LedgerRepos) error) error {
	atomic.AddInt32(&f.calls, 1)
	if atomic.AddInt32(&f.failures, -1) >= 0 {
		return f.inner.Run(ctx, func(repos inventory.LedgerRepos) error {
			if err := fn(repos); err != nil {
				return err
			}
			return domain.ErrConcurrentUpdate
		})
	}
	return f.inner.Run(ctx, fn)
}

func TestPostGoodsReceipt_RetriesConcurrentUpdate(t *testing.T) {
	flaky := &flakyTx{failures: 2}
	f := newFixture(t, flaky)
	flaky.inner = f.store

	_, err := f.post.PostGoodsReceipt(context.Background(), receipt("mat-1", 25))
	require.NoError(t, err)

	assert.EqualValues(t, 3, atomic.LoadInt32(&flaky.calls))
	assert.True(t, balance(t, f, "mat-1", "loc-1").Equal(decimal.NewFromInt(25)))
	n, err := f.store.Movements().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPostGoodsReceipt_RetriesExhausted(t *testing.T) {
	flaky := &flakyTx{failures: 10}
	f := newFixture(t, flaky)
	flaky.inner = f.store

	_, err := f.post.PostGoodsReceipt(context.Background(), receipt("mat-1", 25))
	require.ErrorIs(t, err, domain.ErrConcurrentUpdate)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualValues(t, 4, atomic.LoadInt32(&flaky.calls))

	n, err := f.store.Movements().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostGoodsReceipt_PersistenceFailureIsNotRetried(t *testing.T) {
	boom := &failingTx{err: domain.ErrPersistence}
	f := newFixture(t, boom)

	_, err := f.post.PostGoodsReceipt(context.Background(), receipt("mat-1", 25))
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 1, boom.calls)
}

type failingTx struct {
	err   error
	calls int
}

func (f *failingTx) Run(context.Context, func(repos inventory.LedgerRepos) error) error {
	f.calls++
	return errors.Join(f.err, errors.New("connection refused"))
}
