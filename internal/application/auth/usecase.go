// Package auth contiene login, registro de usuarios y consulta del usuario autenticado.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	repos      repository.TxRepositories
	txRunner   repository.TxRunner
	generator  *identifier.Generator
	jwtCfg     JWTConfig
	bcryptCost int
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(repos repository.TxRepositories, txRunner repository.TxRunner, generator *identifier.Generator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		repos:      repos,
		txRunner:   txRunner,
		generator:  generator,
		jwtCfg:     jwtCfg,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// WithBcryptCost cambia el costo de bcrypt (bcrypt.MinCost en pruebas).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.bcryptCost = cost
	return uc
}

// HashPassword hashea con bcrypt; rechaza contraseñas vacías o solo espacios.
func HashPassword(password string, cost int) (string, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return "", fmt.Errorf("%w: la contraseña no puede estar vacía", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// RegisterUser crea un usuario con código USR: hashea password con bcrypt y persiste.
// Devuelve ErrUsernameExists / ErrEmailExists si ya están registrados.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := HashPassword(in.Password, uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.UserStatusActive
	}

	var user *entity.User
	err = identifier.WithRetry(ctx, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
			if existing, err := repos.Users.GetByUsername(ctx, in.Username); err != nil {
				return err
			} else if existing != nil {
				return domain.ErrUsernameExists
			}
			if existing, err := repos.Users.GetByEmail(ctx, in.Email); err != nil {
				return err
			} else if existing != nil {
				return domain.ErrEmailExists
			}
			code, err := uc.generator.Next(ctx, repos.Identifiers, identifier.KindUser)
			if err != nil {
				return err
			}
			user = &entity.User{
				ID:           uuid.New().String(),
				Code:         code,
				Username:     in.Username,
				Email:        in.Email,
				PasswordHash: hash,
				FullName:     in.FullName,
				Role:         in.Role,
				Status:       status,
				Department:   in.Department,
				Phone:        in.Phone,
				CreatedAt:    uc.now(),
			}
			return repos.Users.Create(ctx, user)
		})
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica usuario (username o código USR) y password, actualiza last_login y genera JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	identity := strings.TrimSpace(in.Username)
	user, err := uc.repos.Users.GetByUsername(ctx, identity)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if user, err = uc.repos.Users.GetByCode(ctx, identity); err != nil {
			return nil, err
		}
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(in.Password))); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrInactiveAccount
	}

	now := uc.now()
	if err := uc.repos.Users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Code, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		User:        *ToUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return ToUserResponse(user), nil
}

// ToUserResponse convierte un usuario a DTO (sin hash de contraseña).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Code:       u.Code,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		Status:     u.Status,
		Department: u.Department,
		Phone:      u.Phone,
		CreatedAt:  u.CreatedAt,
		LastLogin:  u.LastLogin,
	}
}
