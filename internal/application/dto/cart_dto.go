package dto

import (
	"github.com/shopspring/decimal"

	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
)

// AddToCartRequest entrada para agregar una unidad de un producto al carrito.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// UpdateQuantityRequest entrada para fijar la cantidad de una línea.
// Quantity <= 0 elimina la línea.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse una línea del carrito con su snapshot de producto.
type CartLineResponse struct {
	Product  entity.Product  `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito con totales derivados.
type CartResponse struct {
	SessionID  string             `json:"session_id"`
	Lines      []CartLineResponse `json:"lines"`
	TotalItems int                `json:"total_items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Notice     *Notice            `json:"notice,omitempty"`
}

// CheckoutRequest entrada del resumen de checkout; el código promo es opcional.
type CheckoutRequest struct {
	PromoCode string `json:"promo_code"`
}

// CheckoutResponse resumen de checkout: subtotal con descuentos públicos por
// línea y total con el código promo aplicado (si es válido).
type CheckoutResponse struct {
	TotalItems      int             `json:"total_items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	PromoCode       string          `json:"promo_code,omitempty"`
	PromoPercentage decimal.Decimal `json:"promo_percentage"`
	Total           decimal.Decimal `json:"total"`
}

// ToCartResponse arma la respuesta a partir de la entidad.
func ToCartResponse(c *entity.Cart, notice *Notice) *CartResponse {
	lines := make([]CartLineResponse, 0, len(c.Lines))
	for i := range c.Lines {
		line := c.Lines[i]
		lines = append(lines, CartLineResponse{
			Product:  line.Product,
			Quantity: line.Quantity,
			Subtotal: line.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return &CartResponse{
		SessionID:  c.SessionID,
		Lines:      lines,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		Notice:     notice,
	}
}
