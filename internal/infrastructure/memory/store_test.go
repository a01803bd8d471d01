package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

func TestRun_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.Run(ctx, func(repos repository.TxRepositories) error {
		require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{ID: "i1", Code: "ITM-0001", Name: "X"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Repositories().Items.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRun_CommitPublishesWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.Run(ctx, func(repos repository.TxRepositories) error {
		return repos.Items.Create(ctx, &entity.InventoryItem{ID: "i1", Code: "ITM-0001", Name: "X"})
	})
	require.NoError(t, err)

	got, err := s.Repositories().Items.GetByID(ctx, "i1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ITM-0001", got.Code)
}

func TestWriteOutsideTx_SurvivesConcurrentCommit(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repos := s.Repositories()
	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{ID: "i1", Code: "ITM-0001", Name: "X"}))

	started := make(chan struct{})
	release := make(chan struct{})
	committed := make(chan error, 1)
	go func() {
		committed <- s.Run(ctx, func(tx repository.TxRepositories) error {
			if err := tx.Items.Create(ctx, &entity.InventoryItem{ID: "i2", Code: "ITM-0002", Name: "Y"}); err != nil {
				return err
			}
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	deleted := make(chan error, 1)
	go func() { deleted <- repos.Items.Delete(ctx, "i1") }()
	close(release)
	require.NoError(t, <-committed)
	require.NoError(t, <-deleted)

	gone, err := repos.Items.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Nil(t, gone)
	kept, err := repos.Items.GetByID(ctx, "i2")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestCreate_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	require.NoError(t, repos.Orders.Create(ctx, &entity.Order{ID: "o1", Code: "ORD-0001"}))
	err := repos.Orders.Create(ctx, &entity.Order{ID: "o2", Code: "ORD-0001"})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
}

func TestDeleteItem_CascadesMovements(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{ID: "i1", Code: "ITM-0001"}))
	require.NoError(t, repos.Movements.Create(ctx, &entity.StockMovement{
		ID: "m1", EntityType: entity.StockedInventoryItem, EntityID: "i1", Kind: entity.MovementAdd, Quantity: decimal.NewFromInt(1),
	}))
	require.NoError(t, repos.Items.Delete(ctx, "i1"))

	list, err := repos.Movements.ListByEntity(ctx, entity.StockedInventoryItem, "i1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteUser_NullsActorReferences(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "u1", Code: "USR-001", Username: "a", Email: "a@x"}))
	require.NoError(t, repos.Orders.Create(ctx, &entity.Order{ID: "o1", Code: "ORD-0001", CreatedBy: "u1"}))
	require.NoError(t, repos.Orders.AppendHistory(ctx, &entity.OrderStatusHistory{ID: "h1", OrderID: "o1", ChangedBy: "u1"}))
	require.NoError(t, repos.Users.Delete(ctx, "u1"))

	hist, err := repos.Orders.ListHistory(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Empty(t, hist[0].ChangedBy)

	o, err := repos.Orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Empty(t, o.CreatedBy)
}

func TestActivityLog_PaginatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repos.Activity.Create(ctx, &entity.ActivityLog{
			ID: string(rune('a' + i)), Action: "Login", CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, total, err := repos.Activity.List(ctx, repository.ActivityLogFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].ID)
	assert.Equal(t, "b", page[1].ID)
}
