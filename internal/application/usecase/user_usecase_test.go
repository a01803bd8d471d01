package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/infrastructure/memory"
)

func newUserFixture(t *testing.T) (*memory.Store, *UserUseCase) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "a1", Code: "USR-001", Username: "admin", Email: "admin@factory.com", Role: entity.RoleAdmin, Status: entity.UserStatusActive}))
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "m1", Code: "USR-002", Username: "manager", Email: "manager@factory.com", Role: entity.RoleManager, Status: entity.UserStatusActive}))
	uc := NewUserUseCase(repos, store)
	uc.bcryptCost = bcrypt.MinCost
	return store, uc
}

func TestDelete_LastAdminRefused(t *testing.T) {
	ctx := context.Background()
	_, uc := newUserFixture(t)

	_, err := uc.Delete(ctx, "a1")
	assert.ErrorIs(t, err, domain.ErrLastAdmin)

	deleted, err := uc.Delete(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "manager", deleted.Username)

	_, err = uc.GetByID(ctx, "m1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_DemotingLastAdminRefused(t *testing.T) {
	_, uc := newUserFixture(t)
	role := entity.RoleManager
	_, err := uc.Update(context.Background(), "a1", dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrLastAdmin)
}

func TestUpdate_FieldsAndPassword(t *testing.T) {
	ctx := context.Background()
	store, uc := newUserFixture(t)
	name := "Plant Manager"
	email := "admin@factory.com"

	_, err := uc.Update(ctx, "m1", dto.UpdateUserRequest{Email: &email})
	assert.ErrorIs(t, err, domain.ErrEmailExists)

	res, err := uc.Update(ctx, "m1", dto.UpdateUserRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, res.FullName)

	_, err = uc.ResetPassword(ctx, "m1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ResetPassword(ctx, "m1", "newpass")
	require.NoError(t, err)
	u, err := store.Repositories().Users.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpass")))
}

func TestList_OrderedByCode(t *testing.T) {
	_, uc := newUserFixture(t)
	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "USR-001", list[0].Code)
}
