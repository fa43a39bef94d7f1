package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest renglón del carrito.
type SaleLineRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	PriceTier string           `json:"price_tier" validate:"omitempty,oneof=price1 price2 price3 price4"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Discount  decimal.Decimal  `json:"discount"`
}

// CompleteSaleRequest body de POST /api/sales y /api/sales/quote.
type CompleteSaleRequest struct {
	Items           []SaleLineRequest `json:"items" validate:"dive"`
	ClientID        string            `json:"client_id"`
	PaymentMethod   string            `json:"payment_method" validate:"required,oneof=efectivo tarjeta transferencia credito"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	TaxEnabled      bool              `json:"tax_enabled"`
	DocumentType    string            `json:"document_type" validate:"omitempty,oneof=ticket factura"`
}

// SaleListRequest filtros de GET /api/sales. Fechas YYYY-MM-DD.
type SaleListRequest struct {
	PageRequest
	BranchID  string `query:"branch_id"`
	CashierID string `query:"cashier_id"`
	ClientID  string `query:"client_id"`
	From      string `query:"from"`
	To        string `query:"to"`
}

// SaleItemResponse renglón congelado de una venta.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	PriceTier   string          `json:"price_tier"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID             string             `json:"id"`
	Folio          string             `json:"folio"`
	ClientID       string             `json:"client_id,omitempty"`
	CashierID      string             `json:"cashier_id"`
	BranchID       string             `json:"branch_id"`
	RegisterID     string             `json:"register_id,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountRate   decimal.Decimal    `json:"discount_rate"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxRate        decimal.Decimal    `json:"tax_rate"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	DocumentType   string             `json:"document_type"`
	Status         string             `json:"status"`
	Items          []SaleItemResponse `json:"items"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// QuoteResponse totales calculados sin registrar la venta.
type QuoteResponse struct {
	Items          []SaleItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxRate        decimal.Decimal    `json:"tax_rate"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	Total          decimal.Decimal    `json:"total"`
}
