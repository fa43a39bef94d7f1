package entity

import "time"

// Branch representa una sucursal.
type Branch struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Register representa una caja registradora de una sucursal.
type Register struct {
	ID        string
	BranchID  string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
