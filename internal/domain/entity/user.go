package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cajero"
	RoleManager = "gerente"
)

// ValidRole indica si el rol pertenece al conjunto cerrado de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCashier, RoleManager:
		return true
	}
	return false
}

// User representa un usuario que opera el punto de venta.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Name         string
	Email        string
	Role         string // admin, cajero, gerente
	BranchID     string
	RegisterID   string // caja asignada, opcional
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CashierContext identifica a quien opera una venta o abono. Lo construye la capa de autenticación.
type CashierContext struct {
	UserID     string
	Role       string
	BranchID   string
	RegisterID string
}
