package cart

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/osqelasadqw/storefront-api/internal/domain"
	"github.com/osqelasadqw/storefront-api/internal/domain/repository"
)

// CheckoutSummary totales del carrito al momento de checkout. El subtotal ya
// incluye los descuentos públicos por línea; el código promo (si es válido)
// se aplica sobre ese subtotal.
type CheckoutSummary struct {
	TotalItems      int
	Subtotal        decimal.Decimal
	PromoCode       string
	PromoPercentage decimal.Decimal
	Total           decimal.Decimal
}

// CheckoutService calcula el resumen de checkout validando el código promo.
// No vacía el carrito ni toca el contador de stock: las unidades ya fueron
// reservadas línea a línea al agregarlas.
type CheckoutService struct {
	cartSvc *Service
	promos  repository.PromoCodeRepository
}

// NewCheckoutService construye el servicio de checkout.
func NewCheckoutService(cartSvc *Service, promos repository.PromoCodeRepository) *CheckoutService {
	return &CheckoutService{cartSvc: cartSvc, promos: promos}
}

// Checkout devuelve el resumen. Un código vacío es válido (sin promo); un
// código desconocido o inactivo retorna ErrPromoInvalid.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID, promoCode string) (*CheckoutSummary, error) {
	c, err := s.cartSvc.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := &CheckoutSummary{
		TotalItems:      c.TotalItems(),
		Subtotal:        c.TotalPrice(),
		PromoPercentage: decimal.Zero,
	}
	summary.Total = summary.Subtotal

	promoCode = strings.ToUpper(strings.TrimSpace(promoCode))
	if promoCode == "" {
		return summary, nil
	}

	promo, err := s.promos.GetByCode(promoCode)
	if err != nil {
		return nil, err
	}
	if promo == nil || !promo.Active || !promo.Percentage.GreaterThan(decimal.Zero) {
		return nil, domain.ErrPromoInvalid
	}

	factor := decimal.NewFromInt(100).Sub(promo.Percentage).Div(decimal.NewFromInt(100))
	summary.PromoCode = promo.Code
	summary.PromoPercentage = promo.Percentage
	summary.Total = summary.Subtotal.Mul(factor)
	return summary, nil
}
