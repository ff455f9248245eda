package inventory

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

var (
	testLocation = &entity.Location{ID: "loc-1", PlantCode: "1000", StorageLocation: "0001"}
	testMaterial = &entity.Material{ID: "mat-1", Code: "MAT-001", Description: "Tornillo", UnitOfMeasure: entity.UnitPieces}
)

func testDoc(qty int64) PostingDocument {
	return PostingDocument{
		DocumentNumber:    "GR00000001",
		PostingDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ReferenceDocument: "4500000001",
		Lines:             []PostingLine{{MaterialID: "mat-1", Quantity: decimal.NewFromInt(qty)}},
	}
}

func TestBuildEntries_StampsDocumentAndMasterData(t *testing.T) {
	r := NewMovementRecorder()

	entries, err := r.BuildEntries(testDoc(7), entity.MovementTypeGoodsReceipt, testLocation, map[string]*entity.Material{"mat-1": testMaterial})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "GR00000001", e.DocumentNumber)
	assert.Equal(t, "MAT-001", e.MaterialCode)
	assert.Equal(t, "1000", e.PlantCode)
	assert.Equal(t, entity.UnitPieces, e.UnitOfMeasure)
	assert.Equal(t, "4500000001", e.ReferenceDocument)
	assert.True(t, e.Quantity.Equal(decimal.NewFromInt(7)))
}

func TestBuildEntries_ReferenceOnlyForReceipts(t *testing.T) {
	r := NewMovementRecorder()

	entries, err := r.BuildEntries(testDoc(7), entity.MovementTypeIssueConsumption, testLocation, map[string]*entity.Material{"mat-1": testMaterial})
	require.NoError(t, err)
	assert.Empty(t, entries[0].ReferenceDocument)
	assert.True(t, entries[0].Quantity.Equal(decimal.NewFromInt(-7)))
}

func TestBuildEntries_MissingMaterialIsHardError(t *testing.T) {
	r := NewMovementRecorder()

	_, err := r.BuildEntries(testDoc(7), entity.MovementTypeGoodsReceipt, testLocation, map[string]*entity.Material{})
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	_, err = r.BuildEntries(testDoc(7), entity.MovementTypeGoodsReceipt, nil, map[string]*entity.Material{"mat-1": testMaterial})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	_, err = r.BuildEntries(testDoc(7), entity.MovementType("999"), testLocation, map[string]*entity.Material{"mat-1": testMaterial})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildTransferEntries_OppositeLegs(t *testing.T) {
	r := NewMovementRecorder()
	to := &entity.Location{ID: "loc-2", PlantCode: "1000", StorageLocation: "0002"}

	entries, err := r.BuildTransferEntries(testDoc(4), testLocation, to, map[string]*entity.Material{"mat-1": testMaterial})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "loc-1", entries[0].LocationID)
	assert.True(t, entries[0].Quantity.Equal(decimal.NewFromInt(-4)))
	assert.Equal(t, "loc-2", entries[1].LocationID)
	assert.True(t, entries[1].Quantity.Equal(decimal.NewFromInt(4)))
	assert.Empty(t, entries[1].ReferenceDocument)
}

// stubStock registra el delta recibido y devuelve la fila resultante.
type stubStock struct {
	rows map[entity.StockKey]*entity.CurrentStock
}

func (s *stubStock) Get(_ context.Context, m, l string) (*entity.CurrentStock, error) {
	return s.rows[entity.StockKey{MaterialID: m, LocationID: l}], nil
}

func (s *stubStock) ApplyDelta(_ context.Context, seed *entity.CurrentStock, delta decimal.Decimal) (*entity.CurrentStock, error) {
	row, ok := s.rows[seed.Key()]
	if !ok {
		cp := *seed
		cp.CurrentQuantity = decimal.Zero
		row = &cp
		s.rows[seed.Key()] = row
	}
	row.CurrentQuantity = row.CurrentQuantity.Add(delta)
	return row, nil
}

func (s *stubStock) List(context.Context, int) ([]*entity.CurrentStock, error) { return nil, nil }

func TestBalanceAggregator_NegativeResultIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})
	agg := NewBalanceAggregator(log)
	stock := &stubStock{rows: map[entity.StockKey]*entity.CurrentStock{}}

	entries, err := NewMovementRecorder().BuildEntries(testDoc(3), entity.MovementTypeIssueSales, testLocation, map[string]*entity.Material{"mat-1": testMaterial})
	require.NoError(t, err)

	row, err := agg.Apply(context.Background(), stock, entries[0], testMaterial, testLocation)
	require.NoError(t, err)
	assert.True(t, row.CurrentQuantity.Equal(decimal.NewFromInt(-3)))
	assert.Equal(t, "Tornillo", row.MaterialDescription)
	assert.Contains(t, buf.String(), "saldo negativo")
}

func TestBalanceAggregator_AppliesRecordedSignVerbatim(t *testing.T) {
	agg := NewBalanceAggregator(nil)
	stock := &stubStock{rows: map[entity.StockKey]*entity.CurrentStock{}}

	entry := &entity.StockMovement{ID: "e1", MaterialID: "mat-1", LocationID: "loc-1", MovementType: entity.MovementTypeIssueSales, Quantity: decimal.NewFromInt(9)}
	row, err := agg.Apply(context.Background(), stock, entry, testMaterial, testLocation)
	require.NoError(t, err)
	assert.True(t, row.CurrentQuantity.Equal(decimal.NewFromInt(9)))
}
