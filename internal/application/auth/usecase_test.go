package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/infrastructure/memory"
	"github.com/jhoicas/factory-api/pkg/jwt"
)

const testSecret = "test-secret"

func newUseCase() *AuthUseCase {
	store := memory.NewStore()
	uc := NewAuthUseCase(store.Repositories(), store, identifier.NewGenerator(), JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "test"})
	uc.bcryptCost = bcrypt.MinCost
	return uc
}

func register(t *testing.T, uc *AuthUseCase, username, role string) *dto.UserResponse {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Username: username, Email: username + "@factory.com", Password: "secret1", FullName: username, Role: role,
	})
	require.NoError(t, err)
	return u
}

func TestRegisterUser_AssignsCodes(t *testing.T) {
	uc := newUseCase()
	a := register(t, uc, "admin", "admin")
	m := register(t, uc, "manager", "manager")

	assert.Equal(t, "USR-001", a.Code)
	assert.Equal(t, "USR-002", m.Code)
	assert.Equal(t, "active", m.Status)
}

func TestRegisterUser_Duplicates(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	register(t, uc, "admin", "admin")

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "admin", Email: "x@factory.com", Password: "p", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "other", Email: "admin@factory.com", Password: "p", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "blank", Email: "b@factory.com", Password: "  ", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_ByUsernameOrCode(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	u := register(t, uc, "admin", "admin")

	res, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, res.User.LastLogin)
	userID, code, role, err := jwt.Parse(testSecret, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, "USR-001", code)
	assert.Equal(t, "admin", role)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "USR-001", Password: "secret1"})
	require.NoError(t, err)

	me, err := uc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, me.LastLogin)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Username: "off", Email: "off@factory.com", Password: "secret1", FullName: "Off", Role: "manager", Status: "inactive",
	})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "off", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "off", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}
