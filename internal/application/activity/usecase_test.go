package activity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/internal/infrastructure/memory"
	"github.com/jhoicas/factory-api/pkg/logger"
)

type failingRepo struct{}

func (failingRepo) Create(context.Context, *entity.ActivityLog) error { return errors.New("db down") }
func (failingRepo) List(context.Context, repository.ActivityLogFilter) ([]*entity.ActivityLogEntry, int, error) {
	return nil, 0, nil
}

func TestRecord_SwallowsErrors(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(failingRepo{}, logger.NewWithWriter(&buf, "warn"))

	assert.NotPanics(t, func() { r.Record(context.Background(), "", ActionLogin, "x", "127.0.0.1") })
	assert.Contains(t, buf.String(), "db down")
}

func TestList_PaginatesWithUserSummary(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "u1", Code: "USR-001", Username: "admin", Email: "a@f.com", FullName: "Admin", Role: "admin"}))

	rec := NewRecorder(repos.Activity, logger.Nop())
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		rec.now = func() time.Time { return at }
		rec.Record(ctx, "u1", ActionOrderCreated, fmt.Sprintf("order %d", i), "")
	}
	rec.Record(ctx, "", ActionLogin, "anonymous", "")

	uc := NewQueryUseCase(repos.Activity)
	page, err := uc.List(ctx, dto.ActivityLogFilter{PageRequest: dto.PageRequest{Page: 2, PerPage: 2}, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Logs, 2)
	assert.Equal(t, "order 2", page.Logs[0].Details)
	require.NotNil(t, page.Logs[0].User)
	assert.Equal(t, "admin", page.Logs[0].User.Username)

	all, err := uc.List(ctx, dto.ActivityLogFilter{Action: "login"})
	require.NoError(t, err)
	assert.Equal(t, 1, all.Total)
	assert.Nil(t, all.Logs[0].User)
	assert.Equal(t, 50, all.PerPage)
}
