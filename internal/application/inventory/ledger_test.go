package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/domain/inventory"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/internal/infrastructure/memory"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newItemFixture(t *testing.T) (*memory.Store, *ItemUseCase, string) {
	t.Helper()
	store := memory.NewStore()
	uc := NewItemUseCase(store.Repositories(), store, NewStockLedger(store), identifier.NewGenerator())
	created, err := uc.Create(context.Background(), dto.CreateInventoryItemRequest{
		Name: "Steel bolt", Category: "Hardware", CurrentStock: dec(100), MinLevel: dec(20), MaxLevel: dec(500), Unit: "pcs",
	})
	require.NoError(t, err)
	return store, uc, created.ID
}

func TestApply_AddRemoveAdjust(t *testing.T) {
	ctx := context.Background()
	store, _, id := newItemFixture(t)
	ledger := NewStockLedger(store)

	snap, mov, err := ledger.Apply(ctx, MovementInput{
		EntityType: entity.StockedInventoryItem, EntityID: id, Kind: entity.MovementAdd, Quantity: dec(30), Reason: "restock",
	})
	require.NoError(t, err)
	assert.True(t, snap.CurrentStock.Equal(dec(130)))
	assert.Equal(t, entity.StockStatusInStock, snap.Status())
	assert.True(t, mov.PreviousStock.Equal(dec(100)))
	assert.True(t, mov.NewStock.Equal(dec(130)))

	_, _, err = ledger.Apply(ctx, MovementInput{
		EntityType: entity.StockedInventoryItem, EntityID: id, Kind: entity.MovementRemove, Quantity: dec(150), Reason: "ship",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	snap, mov, err = ledger.Apply(ctx, MovementInput{
		EntityType: entity.StockedInventoryItem, EntityID: id, Kind: entity.MovementAdjust, Quantity: decimal.Zero, Reason: "count",
	})
	require.NoError(t, err)
	assert.True(t, snap.CurrentStock.IsZero())
	assert.Equal(t, entity.StockStatusOutOfStock, snap.Status())
	assert.True(t, mov.Quantity.IsZero())

	movs, err := store.Repositories().Movements.ListByEntity(ctx, entity.StockedInventoryItem, id)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.True(t, inventory.Replay(dec(100), movs).IsZero())
}

func TestApply_FailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store, _, id := newItemFixture(t)
	ledger := NewStockLedger(store)

	cases := []struct {
		name string
		in   MovementInput
		want error
	}{
		{"negative quantity", MovementInput{Kind: entity.MovementAdd, Quantity: dec(-1), Reason: "x"}, domain.ErrInvalidQuantity},
		{"zero add", MovementInput{Kind: entity.MovementAdd, Quantity: decimal.Zero, Reason: "x"}, domain.ErrInvalidQuantity},
		{"unknown kind", MovementInput{Kind: "transfer", Quantity: dec(1), Reason: "x"}, domain.ErrInvalidMovementType},
		{"insufficient", MovementInput{Kind: entity.MovementRemove, Quantity: dec(101), Reason: "x"}, domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.EntityType = entity.StockedInventoryItem
			tc.in.EntityID = id
			_, _, err := ledger.Apply(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	item, err := store.Repositories().Items.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, item.CurrentStock.Equal(dec(100)))
	movs, err := store.Repositories().Movements.ListByEntity(ctx, entity.StockedInventoryItem, id)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

// faultyRunner envuelve el store y permite sustituir repositorios dentro de la transacción.
type faultyRunner struct {
	store *memory.Store
	patch func(repos *repository.TxRepositories)
}

func (r faultyRunner) Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	return r.store.Run(ctx, func(repos repository.TxRepositories) error {
		r.patch(&repos)
		return fn(repos)
	})
}

// failingMovements falla al insertar y guarda el stock visible dentro de la transacción en ese momento.
type failingMovements struct {
	repository.StockMovementRepository
	items  repository.InventoryItemRepository
	itemID string
	seen   decimal.Decimal
	err    error
}

func (f *failingMovements) Create(ctx context.Context, _ *entity.StockMovement) error {
	it, err := f.items.GetByID(ctx, f.itemID)
	if err != nil {
		return err
	}
	f.seen = it.CurrentStock
	return f.err
}

func TestApply_MovementWriteFailureRollsBackStock(t *testing.T) {
	ctx := context.Background()
	store, _, id := newItemFixture(t)
	boom := errors.New("insert stock_movements: connection reset")

	var fm *failingMovements
	ledger := NewStockLedger(faultyRunner{store: store, patch: func(repos *repository.TxRepositories) {
		fm = &failingMovements{StockMovementRepository: repos.Movements, items: repos.Items, itemID: id, err: boom}
		repos.Movements = fm
	}})

	_, _, err := ledger.Apply(ctx, MovementInput{
		EntityType: entity.StockedInventoryItem, EntityID: id, Kind: entity.MovementRemove, Quantity: dec(40), Reason: "ship",
	})
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, fm)
	assert.True(t, fm.seen.Equal(dec(60)), "el stock ya estaba escrito dentro de la transacción")

	item, err := store.Repositories().Items.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, item.CurrentStock.Equal(dec(100)))
	movs, err := store.Repositories().Movements.ListByEntity(ctx, entity.StockedInventoryItem, id)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestApply_EmptyReasonAccepted(t *testing.T) {
	ctx := context.Background()
	store, _, id := newItemFixture(t)

	_, mov, err := NewStockLedger(store).Apply(ctx, MovementInput{
		EntityType: entity.StockedInventoryItem, EntityID: id, Kind: entity.MovementAdd, Quantity: dec(5),
	})
	require.NoError(t, err)
	assert.Empty(t, mov.Reason)
	assert.True(t, mov.NewStock.Equal(dec(105)))
}

func TestApply_NotFound(t *testing.T) {
	store := memory.NewStore()
	_, _, err := NewStockLedger(store).Apply(context.Background(), MovementInput{
		EntityType: entity.StockedRawMaterial, EntityID: "missing", Kind: entity.MovementAdd, Quantity: dec(1), Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetDirect_RecordsOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	store, _, id := newItemFixture(t)
	ledger := NewStockLedger(store)

	var mov *entity.StockMovement
	err := store.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		mov, err = ledger.SetDirect(ctx, repos, entity.StockedInventoryItem, id, dec(100), "", "")
		return err
	})
	require.NoError(t, err)
	assert.Nil(t, mov)

	err = store.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		mov, err = ledger.SetDirect(ctx, repos, entity.StockedInventoryItem, id, dec(40), "", "")
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementAdjust, mov.Kind)
	assert.Equal(t, DefaultDirectReason, mov.Reason)
	assert.Empty(t, mov.MovedBy)
	assert.True(t, mov.PreviousStock.Equal(dec(100)))
	assert.True(t, mov.NewStock.Equal(dec(40)))

	err = store.Run(ctx, func(repos repository.TxRepositories) error {
		_, err := ledger.SetDirect(ctx, repos, entity.StockedInventoryItem, id, dec(-5), "", "")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}
