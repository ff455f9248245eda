package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestSignedQuantity_DirectionPerType(t *testing.T) {
	qty := decimal.NewFromInt(10)
	cases := []struct {
		mt   entity.MovementType
		want int64
	}{
		{entity.MovementTypeGoodsReceipt, 10},
		{entity.MovementTypeReturnFromCustomer, 10},
		{entity.MovementTypeTransfer, 10},
		{entity.MovementTypeIssueConsumption, -10},
		{entity.MovementTypeIssueSales, -10},
		{entity.MovementTypeReturnToVendor, -10},
	}
	for _, tc := range cases {
		t.Run(string(tc.mt), func(t *testing.T) {
			got, err := SignedQuantity(tc.mt, qty)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)), "got %s", got)

			p, ok := PolicyFor(tc.mt)
			require.True(t, ok)
			if p.Direction == DirectionIncrease {
				assert.True(t, got.IsPositive())
			} else {
				assert.True(t, got.IsNegative())
			}
		})
	}
}

func TestSignedQuantity_Rejects(t *testing.T) {
	_, err := SignedQuantity("999", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = SignedQuantity(entity.MovementTypeGoodsReceipt, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = SignedQuantity(entity.MovementTypeGoodsReceipt, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTypes_SortedAndComplete(t *testing.T) {
	types := Types()
	require.Len(t, types, 6)
	for i := 1; i < len(types); i++ {
		assert.Less(t, types[i-1].Type, types[i].Type)
	}
	assert.Equal(t, entity.MovementTypeGoodsReceipt, types[0].Type)
	assert.Equal(t, "Goods Receipt", types[0].Label)
}

func TestLineAmount(t *testing.T) {
	assert.Nil(t, LineAmount(decimal.NewFromInt(3), nil))

	price := decimal.RequireFromString("2.50")
	got := LineAmount(decimal.NewFromInt(3), &price)
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.RequireFromString("7.5")))
}
