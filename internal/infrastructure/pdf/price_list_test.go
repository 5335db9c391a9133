package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
)

func TestGenerate_ListaDePrecios(t *testing.T) {
	items := []PriceListItem{
		{
			Product: &entity.Product{Name: "Taza de café", Price: decimal.NewFromInt(100)},
			Stock:   5,
		},
		{
			Product: &entity.Product{
				Name:               "Plato hondo",
				Price:              decimal.NewFromInt(200),
				PromoActive:        true,
				IsPublicDiscount:   true,
				DiscountPercentage: decimal.NewFromInt(25),
			},
			Stock: 0,
		},
	}

	out, err := NewPriceListGenerator().Generate("Mi Tienda", items)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "la salida debe ser un PDF")
}

func TestGenerate_CatalogoVacio(t *testing.T) {
	out, err := NewPriceListGenerator().Generate("Mi Tienda", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
