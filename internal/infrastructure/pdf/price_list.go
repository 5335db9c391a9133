// Package pdf genera la lista de precios del catálogo en PDF (Maroto v2),
// descargable desde el panel de administración.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda + fecha de emisión     │
//	│  ───────────────────────────────────────────────── │
//	│  TABLA: Producto | Precio | Precio c/dto | Stock    │
//	│  ───────────────────────────────────────────────── │
//	│  FOOTER: total de productos listados                │
//	└─────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PriceListItem producto de la lista con su stock actual.
type PriceListItem struct {
	Product *entity.Product
	Stock   int64
}

// PriceListGenerator genera la lista de precios usando Maroto v2.
type PriceListGenerator struct{}

// NewPriceListGenerator construye el generador.
func NewPriceListGenerator() *PriceListGenerator { return &PriceListGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *PriceListGenerator) Generate(storeName string, items []PriceListItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de Precios", true).
		WithAuthor(storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(storeName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, it := range items {
		m.AddRows(itemRow(it))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(items)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la tienda (izq) y fecha de emisión (der).
func headerRow(storeName string) core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(14).Add(
		col.New(8).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Lista de precios del catálogo", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 5, align.Left),
		h("Precio", 2, align.Right),
		h("Precio c/dto.", 3, align.Right),
		h("Stock", 2, align.Center),
	)
}

// itemRow: una fila por producto. Si no hay descuento público activo la
// columna de precio con descuento queda con guión.
func itemRow(it PriceListItem) core.Row {
	p := it.Product

	discounted := "—"
	if !p.EffectivePrice().Equal(p.Price) {
		discounted = "$" + p.EffectivePrice().StringFixed(2)
	}

	return row.New(7).Add(
		col.New(5).Add(text.New(p.Name, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(2).Add(text.New("$"+p.Price.StringFixed(2), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(3).Add(text.New(discounted, props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", it.Stock), props.Text{
			Size: 8, Align: align.Center, Top: 1,
		})),
	)
}

func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("%d productos listados", total),
			props.Text{Size: 8, Align: align.Right, Top: 2, Color: colorGray},
		)),
	)
}
