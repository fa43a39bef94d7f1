package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=60"`
	Password   string `json:"password" validate:"required,min=6"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Email      string `json:"email" validate:"omitempty,email"`
	Role       string `json:"role" validate:"required,oneof=admin cajero gerente"`
	BranchID   string `json:"branch_id" validate:"omitempty,uuid"`
	RegisterID string `json:"register_id" validate:"omitempty,uuid"`
}

// UpdateUserRequest edición de usuario; Password vacío conserva el actual.
type UpdateUserRequest struct {
	Password   *string `json:"password" validate:"omitempty,min=6"`
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Role       *string `json:"role" validate:"omitempty,oneof=admin cajero gerente"`
	BranchID   *string `json:"branch_id"`
	RegisterID *string `json:"register_id"`
	Active     *bool   `json:"active"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role"`
	BranchID   string    `json:"branch_id,omitempty"`
	RegisterID string    `json:"register_id,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
