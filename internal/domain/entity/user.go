package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema (administrador o jefe de planta).
type User struct {
	ID           string
	Code         string // USR-001
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         string // admin, manager
	Status       string // active, inactive
	Department   string
	Phone        string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// IsAdmin informa si el usuario tiene rol privilegiado.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
