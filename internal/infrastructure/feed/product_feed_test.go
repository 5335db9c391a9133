package feed

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
)

func buildTestItems() []Item {
	return []Item{
		{
			Product: &entity.Product{
				ID:          "p1",
				Name:        "Taza de café",
				Description: "Cerámica 300ml",
				Price:       decimal.NewFromInt(100),
				Images:      []string{"https://cdn.example.com/p1-a.jpg", "https://cdn.example.com/p1-b.jpg"},
			},
			Stock: 5,
		},
		{
			Product: &entity.Product{
				ID:                 "p2",
				Name:               "Plato hondo",
				Price:              decimal.NewFromInt(200),
				PromoActive:        true,
				IsPublicDiscount:   true,
				DiscountPercentage: decimal.NewFromInt(25),
			},
			Stock: 0,
		},
	}
}

func TestBuild_FeedCompleto(t *testing.T) {
	out, err := NewBuilder("https://tienda.example.com/", "Mi Tienda").Build(buildTestItems())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out), "el feed debe ser XML válido")

	channel := doc.FindElement("/rss/channel")
	require.NotNil(t, channel)
	assert.Equal(t, "Mi Tienda", channel.SelectElement("title").Text())
	assert.Equal(t, "https://tienda.example.com", channel.SelectElement("link").Text(),
		"el slash final de la base URL se recorta")

	items := channel.SelectElements("item")
	require.Len(t, items, 2)
}

// El precio publicado es el efectivo y la disponibilidad sale del contador.
func TestBuild_PrecioEfectivoYDisponibilidad(t *testing.T) {
	out, err := NewBuilder("https://tienda.example.com", "Mi Tienda").Build(buildTestItems())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	items := doc.FindElements("/rss/channel/item")
	require.Len(t, items, 2)

	assert.Equal(t, "100.00", items[0].SelectElement("g:price").Text())
	assert.Equal(t, "in stock", items[0].SelectElement("g:availability").Text())
	assert.Equal(t, "https://tienda.example.com/products/p1", items[0].SelectElement("g:link").Text())

	// 200 con 25% de descuento público = 150
	assert.Equal(t, "150.00", items[1].SelectElement("g:price").Text())
	assert.Equal(t, "out of stock", items[1].SelectElement("g:availability").Text())
}

func TestBuild_Imagenes(t *testing.T) {
	out, err := NewBuilder("https://tienda.example.com", "Mi Tienda").Build(buildTestItems())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	items := doc.FindElements("/rss/channel/item")

	assert.Equal(t, "https://cdn.example.com/p1-a.jpg", items[0].SelectElement("g:image_link").Text())
	assert.Len(t, items[0].SelectElements("g:additional_image_link"), 1)
	assert.Nil(t, items[1].SelectElement("g:image_link"), "sin imágenes no se emite el elemento")
}
