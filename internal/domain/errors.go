package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrEmptyCart             = errors.New("el carrito está vacío")
	ErrMissingClient         = errors.New("la venta a crédito requiere un cliente existente")
	ErrInsufficientCredit    = errors.New("crédito disponible insuficiente")
	ErrInvalidAmount         = errors.New("el monto debe ser mayor a cero")
	ErrOverpayment           = errors.New("el abono excede el saldo del crédito")
	ErrCreditClosed          = errors.New("el crédito no admite abonos")
	ErrIntegrity             = errors.New("violación de integridad de datos")
	ErrCategoryInUse         = errors.New("la categoría tiene productos asociados")
	ErrClientHasOpenCredits  = errors.New("el cliente tiene créditos pendientes")
)

// InsufficientStockError indica qué producto no alcanza la cantidad pedida.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("stock insuficiente para %s: disponible %s, solicitado %s",
		name, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InsufficientCreditError reporta el crédito disponible del cliente al momento de rechazar la venta.
type InsufficientCreditError struct {
	Available decimal.Decimal
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("crédito insuficiente: disponible %s", e.Available.StringFixed(2))
}

func (e *InsufficientCreditError) Unwrap() error { return ErrInsufficientCredit }

// IntegrityError describe un estado imposible detectado durante un commit (saldo o stock negativo).
// Nunca se corrige en silencio: aborta la transacción.
type IntegrityError struct {
	Entity string
	ID     string
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integridad %s %s: %s", e.Entity, e.ID, e.Detail)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }
