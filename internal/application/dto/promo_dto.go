package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePromoCodeRequest entrada para crear un código promocional.
type CreatePromoCodeRequest struct {
	Code       string          `json:"code" validate:"required,min=3,max=50"`
	Percentage decimal.Decimal `json:"percentage"`
	Active     bool            `json:"active"`
}

// UpdatePromoCodeRequest entrada para actualizar un código promocional.
type UpdatePromoCodeRequest struct {
	Percentage *decimal.Decimal `json:"percentage"`
	Active     *bool            `json:"active"`
}

// PromoCodeResponse salida de un código promocional (solo panel de administración).
type PromoCodeResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Percentage decimal.Decimal `json:"percentage"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PromoCodeListResponse lista de códigos promocionales.
type PromoCodeListResponse struct {
	Items []PromoCodeResponse `json:"items"`
}
