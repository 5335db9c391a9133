package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
)

// Escenario C: línea con precio 100, descuento público del 20% y cantidad 2:
// el total debe ser 100 * 0.8 * 2 = 160.
func TestTotalPrice_AplicaDescuentoPublico(t *testing.T) {
	c := entity.NewCart("sess")
	c.Lines = []entity.CartLine{{
		Product: entity.Product{
			ID:                 "p3",
			Price:              decimal.NewFromInt(100),
			PromoActive:        true,
			IsPublicDiscount:   true,
			DiscountPercentage: decimal.NewFromInt(20),
		},
		Quantity: 2,
	}}

	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(160)),
		"esperaba 160.00, dio %s", c.TotalPrice())
}

// Un descuento no público (código promo) no se aplica en el total del carrito.
func TestTotalPrice_IgnoraDescuentoNoPublico(t *testing.T) {
	c := entity.NewCart("sess")
	c.Lines = []entity.CartLine{{
		Product: entity.Product{
			ID:                 "p1",
			Price:              decimal.NewFromInt(100),
			PromoActive:        true,
			IsPublicDiscount:   false,
			DiscountPercentage: decimal.NewFromInt(20),
		},
		Quantity: 1,
	}}

	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(100)))
}

// Escenario D: líneas con cantidades 2 y 3 suman 5 artículos.
func TestTotalItems_SumaCantidades(t *testing.T) {
	c := entity.NewCart("sess")
	c.Lines = []entity.CartLine{
		{Product: entity.Product{ID: "a", Price: decimal.NewFromInt(1)}, Quantity: 2},
		{Product: entity.Product{ID: "b", Price: decimal.NewFromInt(2)}, Quantity: 3},
	}

	assert.Equal(t, 5, c.TotalItems())
}

func TestAddUnit_UnaLineaPorProducto(t *testing.T) {
	c := entity.NewCart("sess")
	p := entity.Product{ID: "p1", Price: decimal.NewFromInt(10)}

	c.AddUnit(p)
	c.AddUnit(p)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestSetQuantity_NoCreaLineasNuevas(t *testing.T) {
	c := entity.NewCart("sess")
	c.SetQuantity("fantasma", 3)
	assert.Empty(t, c.Lines, "fijar cantidad de un producto ausente no crea línea")
}

// Round-trip: serializar un carrito con N líneas y deserializarlo reproduce
// las mismas líneas con cantidades y snapshots idénticos.
func TestCart_RoundTripJSON(t *testing.T) {
	c := entity.NewCart("sess-9")
	c.Lines = []entity.CartLine{
		{
			Product: entity.Product{
				ID:                 "p1",
				Name:               "Taza café",
				Price:              decimal.RequireFromString("12.50"),
				Images:             []string{"a.webp", "b.webp"},
				PromoActive:        true,
				IsPublicDiscount:   true,
				DiscountPercentage: decimal.NewFromInt(15),
			},
			Quantity: 2,
		},
		{
			Product:  entity.Product{ID: "p2", Name: "Plato", Price: decimal.NewFromInt(30)},
			Quantity: 4,
		},
	}

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var restored entity.Cart
	require.NoError(t, json.Unmarshal(raw, &restored))

	require.Len(t, restored.Lines, 2)
	assert.Equal(t, "sess-9", restored.SessionID)
	assert.Equal(t, 2, restored.Lines[0].Quantity)
	assert.Equal(t, 4, restored.Lines[1].Quantity)
	assert.True(t, restored.Lines[0].Product.Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, []string{"a.webp", "b.webp"}, restored.Lines[0].Product.Images)
	assert.True(t, restored.TotalPrice().Equal(c.TotalPrice()))
}
