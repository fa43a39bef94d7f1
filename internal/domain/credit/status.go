// Package credit define las vistas derivadas del estado de un crédito.
// Nada aquí modifica el crédito: el estado persistido solo es pendiente o pagado.
package credit

import (
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// DueSoonWindow ventana para marcar un crédito como "por vencer".
const DueSoonWindow = 7 * 24 * time.Hour

// DisplayStatus estado que se muestra al usuario.
type DisplayStatus string

const (
	StatusPending DisplayStatus = "pendiente"
	StatusDueSoon DisplayStatus = "por_vencer"
	StatusOverdue DisplayStatus = "vencido"
	StatusPaid    DisplayStatus = "pagado"
)

// IsOverdue indica si un crédito pendiente con saldo pasó su fecha de vencimiento en asOf.
func IsOverdue(c *entity.Credit, asOf time.Time) bool {
	if c == nil {
		return false
	}
	return c.Status == entity.CreditStatusPending &&
		c.Balance.IsPositive() &&
		asOf.After(c.DueDate)
}

// Status calcula el estado de presentación.
func Status(c *entity.Credit, asOf time.Time) DisplayStatus {
	switch {
	case c.Status == entity.CreditStatusPaid:
		return StatusPaid
	case IsOverdue(c, asOf):
		return StatusOverdue
	case c.DueDate.Sub(asOf) <= DueSoonWindow:
		return StatusDueSoon
	default:
		return StatusPending
	}
}
