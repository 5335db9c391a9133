package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Las líneas del carrito guardan
// una copia (snapshot) de estos campos al momento de agregar, así un cambio
// posterior de precio en el catálogo no altera líneas ya agregadas.
type Product struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Images             []string        `json:"images"`
	PromoActive        bool            `json:"promo_active"`        // tiene un descuento configurado
	IsPublicDiscount   bool            `json:"is_public_discount"`  // descuento visible para todos (sin código promo)
	DiscountPercentage decimal.Decimal `json:"discount_percentage"` // 0 - 100
	CategoryIDs        []string        `json:"category_ids"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// EffectivePrice devuelve el precio con el descuento público aplicado:
// price * (1 - pct/100) solo si el descuento está activo y es público.
// Los descuentos por código promo NO se aplican aquí; solo en checkout.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.PromoActive && p.IsPublicDiscount && p.DiscountPercentage.GreaterThan(decimal.Zero) {
		factor := decimal.NewFromInt(100).Sub(p.DiscountPercentage).Div(decimal.NewFromInt(100))
		return p.Price.Mul(factor)
	}
	return p.Price
}
