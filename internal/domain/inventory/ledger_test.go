package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/inventory"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestNextStock(t *testing.T) {
	tests := []struct {
		name    string
		current string
		kind    entity.MovementKind
		qty     string
		want    string
		wantErr error
	}{
		{"add", "100", entity.MovementAdd, "30", "130", nil},
		{"add fraccional", "1.5", entity.MovementAdd, "0.25", "1.75", nil},
		{"remove", "130", entity.MovementRemove, "30", "100", nil},
		{"remove todo", "10", entity.MovementRemove, "10", "0", nil},
		{"remove insuficiente", "130", entity.MovementRemove, "150", "130", domain.ErrInsufficientStock},
		{"adjust absoluto", "130", entity.MovementAdjust, "7", "7", nil},
		{"cantidad cero", "100", entity.MovementAdd, "0", "100", domain.ErrInvalidQuantity},
		{"cantidad negativa", "100", entity.MovementRemove, "-5", "100", domain.ErrInvalidQuantity},
		{"adjust a cero", "100", entity.MovementAdjust, "0", "0", nil},
		{"adjust negativo", "100", entity.MovementAdjust, "-1", "100", domain.ErrInvalidQuantity},
		{"tipo inválido", "100", entity.MovementKind("transfer"), "5", "100", domain.ErrInvalidMovementType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.NextStock(d(tt.current), tt.kind, d(tt.qty))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.True(t, d(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestReplay_ReconstructsFinalStock(t *testing.T) {
	initial := d("100")
	ops := []struct {
		kind entity.MovementKind
		qty  string
	}{
		{entity.MovementAdd, "30"},
		{entity.MovementRemove, "45.5"},
		{entity.MovementAdjust, "20"},
		{entity.MovementAdd, "5"},
		{entity.MovementRemove, "25"},
		{entity.MovementAdd, "12.25"},
	}

	stock := initial
	var log []*entity.StockMovement
	for _, op := range ops {
		next, err := inventory.NextStock(stock, op.kind, d(op.qty))
		require.NoError(t, err)
		log = append(log, &entity.StockMovement{
			Kind: op.kind, Quantity: d(op.qty), PreviousStock: stock, NewStock: next,
		})
		stock = next
	}

	assert.True(t, stock.Equal(d("12.25")))
	assert.True(t, inventory.Replay(initial, log).Equal(stock))
}

func TestReplay_Empty(t *testing.T) {
	assert.True(t, inventory.Replay(d("42"), nil).Equal(d("42")))
}

func TestDirectAdjust(t *testing.T) {
	changed, err := inventory.DirectAdjust(d("10"), d("10.0"))
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = inventory.DirectAdjust(d("10"), d("0"))
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = inventory.DirectAdjust(d("10"), d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestScenario_StatusTransitions(t *testing.T) {
	snap := &entity.StockSnapshot{CurrentStock: d("100"), MinLevel: d("50")}

	next, err := inventory.NextStock(snap.CurrentStock, entity.MovementAdd, d("30"))
	require.NoError(t, err)
	snap.CurrentStock = next
	assert.Equal(t, entity.StockStatusInStock, snap.Status())

	_, err = inventory.NextStock(snap.CurrentStock, entity.MovementRemove, d("150"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, snap.CurrentStock.Equal(d("130")))

	next, err = inventory.NextStock(snap.CurrentStock, entity.MovementAdjust, d("0"))
	require.NoError(t, err)
	snap.CurrentStock = next
	assert.Equal(t, entity.StockStatusOutOfStock, snap.Status())

	snap.CurrentStock = d("20")
	assert.Equal(t, entity.StockStatusLowStock, snap.Status())
}
