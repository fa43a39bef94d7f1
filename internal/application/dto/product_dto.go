package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock es el stock inicial.
type CreateProductRequest struct {
	Code        string          `json:"code" validate:"required,min=1,max=64"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	CategoryID  string          `json:"category_id" validate:"omitempty,uuid"`
	Price1      decimal.Decimal `json:"price1"`
	Price2      decimal.Decimal `json:"price2"`
	Price3      decimal.Decimal `json:"price3"`
	Price4      decimal.Decimal `json:"price4"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	BranchID    string          `json:"branch_id" validate:"omitempty,uuid"`
	ImageRef    string          `json:"image_ref" validate:"max=500"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost ni Stock).
type UpdateProductRequest struct {
	Code        *string          `json:"code" validate:"omitempty,min=1,max=64"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	CategoryID  *string          `json:"category_id"`
	Price1      *decimal.Decimal `json:"price1"`
	Price2      *decimal.Decimal `json:"price2"`
	Price3      *decimal.Decimal `json:"price3"`
	Price4      *decimal.Decimal `json:"price4"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	Active      *bool            `json:"active"`
	ImageRef    *string          `json:"image_ref" validate:"omitempty,max=500"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	CategoryID string `query:"category_id"`
	BranchID   string `query:"branch_id"`
	Search     string `query:"q"`
	ActiveOnly bool   `query:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id,omitempty"`
	Price1      decimal.Decimal `json:"price1"`
	Price2      decimal.Decimal `json:"price2"`
	Price3      decimal.Decimal `json:"price3"`
	Price4      decimal.Decimal `json:"price4"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	LowStock    bool            `json:"low_stock"`
	BranchID    string          `json:"branch_id,omitempty"`
	Active      bool            `json:"active"`
	ImageRef    string          `json:"image_ref,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=500"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
