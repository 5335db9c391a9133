package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialStock inicializa el contador de stock en el almacén atómico.
type CreateProductRequest struct {
	Name               string          `json:"name" validate:"required,min=1,max=200"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Images             []string        `json:"images"`
	PromoActive        bool            `json:"promo_active"`
	IsPublicDiscount   bool            `json:"is_public_discount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	CategoryIDs        []string        `json:"category_ids"`
	InitialStock       *int64          `json:"initial_stock"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description        *string          `json:"description"`
	Price              *decimal.Decimal `json:"price"`
	Images             []string         `json:"images"`
	PromoActive        *bool            `json:"promo_active"`
	IsPublicDiscount   *bool            `json:"is_public_discount"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	CategoryIDs        []string         `json:"category_ids"`
}

// SetStockRequest fija el contador de stock de un producto (operación administrativa).
type SetStockRequest struct {
	Quantity int64 `json:"quantity" validate:"min=0"`
}

// ProductResponse salida de un producto. Stock se agrega desde el contador atómico.
type ProductResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	EffectivePrice     decimal.Decimal `json:"effective_price"`
	Images             []string        `json:"images"`
	PromoActive        bool            `json:"promo_active"`
	IsPublicDiscount   bool            `json:"is_public_discount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	CategoryIDs        []string        `json:"category_ids"`
	Stock              int64           `json:"stock"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
