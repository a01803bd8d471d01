package repository

import (
	"context"
	"time"

	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByCode(ctx context.Context, code string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context) ([]*entity.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
	Delete(ctx context.Context, id string) error
}
