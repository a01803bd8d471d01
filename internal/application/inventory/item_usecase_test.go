package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/internal/infrastructure/memory"
)

// staleIdentifiers simula una lectura concurrente desactualizada: siempre propone el primer código.
type staleIdentifiers struct{}

func (staleIdentifiers) CountCodes(context.Context, identifier.Kind) (int, error) { return 0, nil }
func (staleIdentifiers) CodeExists(context.Context, identifier.Kind, string) (bool, error) {
	return false, nil
}

// racingRunner usa identificadores desactualizados en el primer intento.
type racingRunner struct {
	inner repository.TxRunner
	calls int
}

func (r *racingRunner) Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	r.calls++
	return r.inner.Run(ctx, func(repos repository.TxRepositories) error {
		if r.calls == 1 {
			repos.Identifiers = staleIdentifiers{}
		}
		return fn(repos)
	})
}

func TestItemCreate_GeneratesSequentialCodes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := NewItemUseCase(store.Repositories(), store, NewStockLedger(store), identifier.NewGenerator())

	first, err := uc.Create(ctx, dto.CreateInventoryItemRequest{Name: "A", Category: "C", Unit: "pcs"})
	require.NoError(t, err)
	second, err := uc.Create(ctx, dto.CreateInventoryItemRequest{Name: "B", Category: "C", Unit: "pcs"})
	require.NoError(t, err)

	assert.Equal(t, "ITM-0001", first.Code)
	assert.Equal(t, "ITM-0002", second.Code)
	assert.Equal(t, string(entity.StockStatusOutOfStock), first.Status)
}

func TestItemCreate_RetriesOnceOnDuplicateCode(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	gen := identifier.NewGenerator()
	seed := NewItemUseCase(store.Repositories(), store, NewStockLedger(store), gen)
	_, err := seed.Create(ctx, dto.CreateInventoryItemRequest{Name: "A", Category: "C", Unit: "pcs"})
	require.NoError(t, err)

	runner := &racingRunner{inner: store}
	uc := NewItemUseCase(store.Repositories(), runner, NewStockLedger(store), gen)
	got, err := uc.Create(ctx, dto.CreateInventoryItemRequest{Name: "B", Category: "C", Unit: "pcs"})
	require.NoError(t, err)
	assert.Equal(t, "ITM-0002", got.Code)
	assert.Equal(t, 2, runner.calls)
}

func TestItemCreate_RejectsNegativeStock(t *testing.T) {
	store := memory.NewStore()
	uc := NewItemUseCase(store.Repositories(), store, NewStockLedger(store), identifier.NewGenerator())
	_, err := uc.Create(context.Background(), dto.CreateInventoryItemRequest{Name: "A", Category: "C", Unit: "pcs", CurrentStock: dec(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestItemAdjust_ReturnsItemAndMovement(t *testing.T) {
	ctx := context.Background()
	_, uc, id := newItemFixture(t)

	res, err := uc.Adjust(ctx, "", id, dto.AdjustStockRequest{MovementType: "remove", Quantity: dec(90), Reason: "ship"})
	require.NoError(t, err)
	assert.True(t, res.Item.CurrentStock.Equal(dec(10)))
	assert.Equal(t, string(entity.StockStatusLowStock), res.Item.Status)
	assert.Equal(t, "remove", res.Movement.MovementType)
}

func TestItemUpdate_DirectStockChangeRecordsAdjust(t *testing.T) {
	ctx := context.Background()
	_, uc, id := newItemFixture(t)
	name := "Steel bolt M8"
	stock := decimal.NewFromInt(75)

	res, err := uc.Update(ctx, "", id, dto.UpdateInventoryItemRequest{Name: &name, CurrentStock: &stock})
	require.NoError(t, err)
	assert.Equal(t, name, res.Name)
	assert.True(t, res.CurrentStock.Equal(stock))

	detail, err := uc.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, detail.StockMovements, 1)
	mv := detail.StockMovements[0]
	assert.Equal(t, "adjust", mv.MovementType)
	assert.Equal(t, DefaultDirectReason, mv.Reason)
	assert.True(t, mv.PreviousStock.Equal(dec(100)))
}

func TestItemUpdate_SameStockNoMovement(t *testing.T) {
	ctx := context.Background()
	_, uc, id := newItemFixture(t)
	same := dec(100)

	_, err := uc.Update(ctx, "", id, dto.UpdateInventoryItemRequest{CurrentStock: &same})
	require.NoError(t, err)
	detail, err := uc.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, detail.StockMovements)
}

func TestItemDelete_NotFound(t *testing.T) {
	_, uc, _ := newItemFixture(t)
	_, err := uc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
