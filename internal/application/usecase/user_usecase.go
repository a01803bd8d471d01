package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/factory-api/internal/application/auth"
	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para la administración de usuarios.
type UserUseCase struct {
	repos      repository.TxRepositories
	txRunner   repository.TxRunner
	bcryptCost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repos repository.TxRepositories, txRunner repository.TxRunner) *UserUseCase {
	return &UserUseCase{repos: repos, txRunner: txRunner, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost cambia el costo de bcrypt usado al rehashear contraseñas.
func (uc *UserUseCase) WithBcryptCost(cost int) *UserUseCase {
	uc.bcryptCost = cost
	return uc
}

// List lista todos los usuarios ordenados por código.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repos.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(user), nil
}

// Update aplica los campos presentes. Una contraseña presente se vuelve a hashear
// y no puede ser vacía. No se permite dejar el sistema sin administradores.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var out *entity.User
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		user, err := repos.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		if in.Email != nil && *in.Email != user.Email {
			existing, err := repos.Users.GetByEmail(ctx, *in.Email)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrEmailExists
			}
			user.Email = *in.Email
		}
		if in.Role != nil && *in.Role != user.Role {
			if user.IsAdmin() {
				if err := ensureAnotherAdmin(ctx, repos); err != nil {
					return err
				}
			}
			user.Role = *in.Role
		}
		if in.FullName != nil {
			user.FullName = *in.FullName
		}
		if in.Department != nil {
			user.Department = *in.Department
		}
		if in.Phone != nil {
			user.Phone = *in.Phone
		}
		if in.Status != nil {
			user.Status = *in.Status
		}
		if in.Password != nil {
			hash, err := auth.HashPassword(*in.Password, uc.bcryptCost)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		if err := repos.Users.Update(ctx, user); err != nil {
			return err
		}
		out = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(out), nil
}

// ResetPassword fija una nueva contraseña.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id, password string) (*dto.UserResponse, error) {
	return uc.Update(ctx, id, dto.UpdateUserRequest{Password: &password})
}

// Delete elimina el usuario; su historial queda sin actor. Rechaza borrar el último admin.
func (uc *UserUseCase) Delete(ctx context.Context, id string) (*entity.User, error) {
	var deleted *entity.User
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		user, err := repos.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		if user.IsAdmin() {
			if err := ensureAnotherAdmin(ctx, repos); err != nil {
				return err
			}
		}
		if err := repos.Users.Delete(ctx, id); err != nil {
			return err
		}
		deleted = user
		return nil
	})
	return deleted, err
}

func ensureAnotherAdmin(ctx context.Context, repos repository.TxRepositories) error {
	admins, err := repos.Users.CountByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return domain.ErrLastAdmin
	}
	return nil
}
