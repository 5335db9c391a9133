package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcart "github.com/osqelasadqw/storefront-api/internal/application/cart"
	"github.com/osqelasadqw/storefront-api/internal/domain"
	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
)

// fakePromoRepo repositorio de códigos promo en memoria.
type fakePromoRepo struct {
	byCode map[string]*entity.PromoCode
}

func (f *fakePromoRepo) Create(p *entity.PromoCode) error { f.byCode[p.Code] = p; return nil }
func (f *fakePromoRepo) GetByCode(code string) (*entity.PromoCode, error) {
	return f.byCode[code], nil
}
func (f *fakePromoRepo) Update(p *entity.PromoCode) error   { f.byCode[p.Code] = p; return nil }
func (f *fakePromoRepo) List() ([]*entity.PromoCode, error) { return nil, nil }
func (f *fakePromoRepo) Delete(id string) error             { return nil }

func setupCheckout(t *testing.T) (*appcart.Service, *appcart.CheckoutService, *fakeStockStore) {
	t.Helper()
	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	cartSvc := appcart.NewService(stock, carts, nil, 0)
	promos := &fakePromoRepo{byCode: map[string]*entity.PromoCode{
		"VERANO20": {
			ID:         "pc1",
			Code:       "VERANO20",
			Percentage: decimal.NewFromInt(20),
			Active:     true,
			CreatedAt:  time.Now(),
		},
		"VIEJO": {
			ID:         "pc2",
			Code:       "VIEJO",
			Percentage: decimal.NewFromInt(50),
			Active:     false,
		},
	}}
	return cartSvc, appcart.NewCheckoutService(cartSvc, promos), stock
}

func TestCheckout_SinCodigo_TotalIgualSubtotal(t *testing.T) {
	cartSvc, checkout, stock := setupCheckout(t)
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "p1", 3))
	_, err := cartSvc.AddToCart(ctx, "sess", testProduct("p1", 100))
	require.NoError(t, err)

	sum, err := checkout.Checkout(ctx, "sess", "")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.TotalItems)
	assert.True(t, sum.Total.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, sum.PromoCode)
}

// El código promo se aplica sobre el subtotal que ya incluye descuentos
// públicos por línea.
func TestCheckout_CodigoValido_AplicaPorcentaje(t *testing.T) {
	cartSvc, checkout, stock := setupCheckout(t)
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "p1", 3))
	_, err := cartSvc.AddToCart(ctx, "sess", testProduct("p1", 100))
	require.NoError(t, err)

	// acepta minúsculas y espacios alrededor
	sum, err := checkout.Checkout(ctx, "sess", "  verano20 ")
	require.NoError(t, err)
	assert.Equal(t, "VERANO20", sum.PromoCode)
	assert.True(t, sum.Total.Equal(decimal.NewFromInt(80)),
		"100 con 20%% de descuento debe dar 80, dio %s", sum.Total)
}

func TestCheckout_CodigoInactivo_Invalido(t *testing.T) {
	cartSvc, checkout, stock := setupCheckout(t)
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "p1", 3))
	_, err := cartSvc.AddToCart(ctx, "sess", testProduct("p1", 100))
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, "sess", "VIEJO")
	assert.ErrorIs(t, err, domain.ErrPromoInvalid)
}

func TestCheckout_CodigoDesconocido_Invalido(t *testing.T) {
	_, checkout, _ := setupCheckout(t)

	_, err := checkout.Checkout(context.Background(), "sess", "NOEXISTE")
	assert.ErrorIs(t, err, domain.ErrPromoInvalid)
}
