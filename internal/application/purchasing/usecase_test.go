package purchasing

import (
	"context"
	"errors"
	"time"
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

func newUseCase() (*memory.Store, *PurchaseOrderUseCase) {
	store := memory.NewStore()
	return store, NewPurchaseOrderUseCase(store.Repositories(), store, identifier.NewGenerator())
}

func poRequest(name string, qty int64) dto.CreatePurchaseOrderRequest {
	return dto.CreatePurchaseOrderRequest{
		MaterialName: name, Category: "Metals", Quantity: decimal.NewFromInt(qty), Unit: "kg",
		UnitPrice: decimal.RequireFromString("2.5"), Supplier: "Steel Co",
		OrderDate: "2025-01-10", ExpectedDelivery: "2025-01-20",
	}
}

func TestCreate_ComputesTotal(t *testing.T) {
	_, uc := newUseCase()
	po, err := uc.Create(context.Background(), "", poRequest("Steel Sheets", 100))
	require.NoError(t, err)
	assert.Equal(t, "PO-0001", po.Code)
	assert.Equal(t, "ordered", po.Status)
	assert.True(t, po.TotalCost.Equal(decimal.NewFromInt(250)))
}

func TestReceive_ExistingMaterialAddsStockWithoutMovement(t *testing.T) {
	ctx := context.Background()
	store, uc := newUseCase()
	repos := store.Repositories()
	require.NoError(t, repos.Materials.Create(ctx, &entity.RawMaterial{
		ID: "m1", Code: "MAT-0001", Name: "Steel Sheets", CurrentStock: decimal.NewFromInt(40), MinLevel: decimal.NewFromInt(10),
	}))
	po, err := uc.Create(ctx, "", poRequest("Steel Sheets", 100))
	require.NoError(t, err)

	res, err := uc.Receive(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "received", res.PurchaseOrder.Status)
	assert.Equal(t, "m1", res.Material.ID)
	assert.True(t, res.Material.CurrentStock.Equal(decimal.NewFromInt(140)))

	movs, err := repos.Movements.ListByEntity(ctx, entity.StockedRawMaterial, "m1")
	require.NoError(t, err)
	assert.Empty(t, movs)

	_, err = uc.Receive(ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyReceived)
	m, err := repos.Materials.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, m.CurrentStock.Equal(decimal.NewFromInt(140)))
}

func TestReceive_CreatesMissingMaterial(t *testing.T) {
	ctx := context.Background()
	_, uc := newUseCase()
	po, err := uc.Create(ctx, "", poRequest("Copper Wire", 30))
	require.NoError(t, err)

	res, err := uc.Receive(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "MAT-0001", res.Material.Code)
	assert.Equal(t, "Copper Wire", res.Material.Name)
	assert.True(t, res.Material.CurrentStock.Equal(decimal.NewFromInt(30)))
	assert.True(t, res.Material.MinLevel.IsZero())
	assert.Equal(t, "Steel Co", res.Material.Supplier)
}

func TestReceive_NameMatchIsExact(t *testing.T) {
	ctx := context.Background()
	store, uc := newUseCase()
	require.NoError(t, store.Repositories().Materials.Create(ctx, &entity.RawMaterial{ID: "m1", Code: "MAT-0001", Name: "steel sheets"}))
	po, err := uc.Create(ctx, "", poRequest("Steel Sheets", 5))
	require.NoError(t, err)

	res, err := uc.Receive(ctx, po.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "m1", res.Material.ID)
	assert.Equal(t, "MAT-0002", res.Material.Code)
}

func TestReceive_NotFound(t *testing.T) {
	_, uc := newUseCase()
	_, err := uc.Receive(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_StatusRules(t *testing.T) {
	ctx := context.Background()
	_, uc := newUseCase()
	po, err := uc.Create(ctx, "", poRequest("Steel Sheets", 10))
	require.NoError(t, err)

	received := "received"
	_, err = uc.Update(ctx, po.ID, dto.UpdatePurchaseOrderRequest{Status: &received})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	qty := decimal.NewFromInt(20)
	upd, err := uc.Update(ctx, po.ID, dto.UpdatePurchaseOrderRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, upd.TotalCost.Equal(decimal.NewFromInt(50)))

	_, err = uc.Receive(ctx, po.ID)
	require.NoError(t, err)
	ordered := "ordered"
	_, err = uc.Update(ctx, po.ID, dto.UpdatePurchaseOrderRequest{Status: &ordered})
	assert.ErrorIs(t, err, domain.ErrAlreadyReceived)
}

// faultyRunner envuelve el store y sustituye el repositorio de materias primas dentro de la transacción.
type faultyRunner struct {
	store *memory.Store
	err   error
}

func (r faultyRunner) Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	return r.store.Run(ctx, func(repos repository.TxRepositories) error {
		repos.Materials = failingMaterials{RawMaterialRepository: repos.Materials, err: r.err}
		return fn(repos)
	})
}

type failingMaterials struct {
	repository.RawMaterialRepository
	err error
}

func (f failingMaterials) Create(context.Context, *entity.RawMaterial) error { return f.err }

func (f failingMaterials) SetStock(context.Context, string, decimal.Decimal, time.Time) error {
	return f.err
}

func TestReceive_MaterialWriteFailureRollsBackStatus(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("insert raw_materials: connection reset")

	cases := []struct {
		name     string
		existing bool
	}{
		{"creating material", false},
		{"topping up material", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewStore()
			repos := store.Repositories()
			if tc.existing {
				require.NoError(t, repos.Materials.Create(ctx, &entity.RawMaterial{
					ID: "m1", Code: "MAT-0001", Name: "Steel Sheets", CurrentStock: decimal.NewFromInt(40),
				}))
			}
			gen := identifier.NewGenerator()
			po, err := NewPurchaseOrderUseCase(repos, store, gen).Create(ctx, "", poRequest("Steel Sheets", 100))
			require.NoError(t, err)

			uc := NewPurchaseOrderUseCase(repos, faultyRunner{store: store, err: boom}, gen)
			_, err = uc.Receive(ctx, po.ID)
			assert.ErrorIs(t, err, boom)

			got, err := repos.PurchaseOrders.GetByID(ctx, po.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.PurchaseOrderOrdered, got.Status)

			mats, err := repos.Materials.List(ctx, repository.StockFilter{})
			require.NoError(t, err)
			if tc.existing {
				require.Len(t, mats, 1)
				assert.True(t, mats[0].CurrentStock.Equal(decimal.NewFromInt(40)))
			} else {
				assert.Empty(t, mats)
			}
		})
	}
}
