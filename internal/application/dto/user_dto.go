package dto

import "time"

// RegisterRequest entrada para registrar un usuario (solo admin). Password en texto, se hashea en use case.
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=80"`
	Email      string `json:"email" validate:"required,email,max=120"`
	Password   string `json:"password" validate:"required,min=6"`
	FullName   string `json:"full_name" validate:"required,max=120"`
	Role       string `json:"role" validate:"required,oneof=admin manager"`
	Department string `json:"department" validate:"omitempty,max=100"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateUserRequest actualización parcial: solo se aplican los campos presentes.
type UpdateUserRequest struct {
	FullName   *string `json:"full_name" validate:"omitempty,max=120"`
	Email      *string `json:"email" validate:"omitempty,email,max=120"`
	Role       *string `json:"role" validate:"omitempty,oneof=admin manager"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive"`
	Password   *string `json:"password"`
}

// ResetPasswordRequest nueva contraseña fijada por un admin.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string     `json:"id"`
	Code       string     `json:"user_id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	Department string     `json:"department"`
	Phone      string     `json:"phone"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login"`
}

// LoginRequest entrada para login: username o código de usuario (USR-001).
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
