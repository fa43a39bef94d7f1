package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod forma de pago de una venta o abono.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentCard     PaymentMethod = "tarjeta"
	PaymentTransfer PaymentMethod = "transferencia"
	PaymentCredit   PaymentMethod = "credito"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentCredit:
		return true
	}
	return false
}

// ValidForInstallment indica si el método sirve para abonar a un crédito (no se abona a crédito).
func (m PaymentMethod) ValidForInstallment() bool {
	return m.Valid() && m != PaymentCredit
}

// DocumentType tipo de comprobante emitido.
type DocumentType string

const (
	DocumentTicket  DocumentType = "ticket"
	DocumentInvoice DocumentType = "factura"
)

func (d DocumentType) Valid() bool {
	return d == DocumentTicket || d == DocumentInvoice
}

// Estados de venta.
const (
	SaleStatusCompleted = "completada"
	SaleStatusCancelled = "cancelada"
)

// Sale venta confirmada. Inmutable una vez creada; es dueña de sus Items.
type Sale struct {
	ID             string
	Folio          string
	ClientID       string // vacío = público en general
	CashierID      string
	BranchID       string
	RegisterID     string
	Subtotal       decimal.Decimal
	DiscountRate   decimal.Decimal // porcentaje aplicado al subtotal
	DiscountAmount decimal.Decimal
	TaxRate        decimal.Decimal // porcentaje; cero si no se cobró IVA
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	PaymentMethod  PaymentMethod
	DocumentType   DocumentType
	Status         string
	Items          []SaleItem
	CreatedAt      time.Time
}

// SaleItem renglón de venta. ProductName y ProductCode son una copia al momento de vender.
type SaleItem struct {
	ProductID   string
	ProductName string
	ProductCode string
	PriceTier   PriceTier
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Subtotal    decimal.Decimal // Quantity*UnitPrice - Discount
}
