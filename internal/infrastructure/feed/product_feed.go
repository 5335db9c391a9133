// Package feed genera el feed XML de productos de la tienda (RSS 2.0 con el
// namespace de Google Merchant), consumible por buscadores y comparadores.
package feed

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
)

const merchantNamespace = "http://base.google.com/ns/1.0"

// Item producto del feed con su disponibilidad ya resuelta.
type Item struct {
	Product *entity.Product
	Stock   int64
}

// Builder arma el documento XML del feed.
type Builder struct {
	baseURL   string
	storeName string
}

// NewBuilder construye el generador del feed. baseURL es la URL pública de la
// tienda, usada para los links de cada producto.
func NewBuilder(baseURL, storeName string) *Builder {
	return &Builder{baseURL: strings.TrimRight(baseURL, "/"), storeName: storeName}
}

// Build genera el feed completo y devuelve sus bytes con cabecera XML.
// El precio publicado es el efectivo (descuento público ya aplicado) y la
// disponibilidad sale del contador de stock: 0 unidades = "out of stock".
func (b *Builder) Build(items []Item) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:g", merchantNamespace)

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(b.storeName)
	channel.CreateElement("link").SetText(b.baseURL)
	channel.CreateElement("description").SetText("Catálogo de productos de " + b.storeName)

	for _, it := range items {
		b.addItem(channel, it)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("feed: serializar XML: %w", err)
	}
	return out, nil
}

func (b *Builder) addItem(channel *etree.Element, it Item) {
	p := it.Product

	item := channel.CreateElement("item")
	item.CreateElement("g:id").SetText(p.ID)
	item.CreateElement("g:title").SetText(p.Name)
	if p.Description != "" {
		item.CreateElement("g:description").SetText(p.Description)
	}
	item.CreateElement("g:link").SetText(b.baseURL + "/products/" + p.ID)
	item.CreateElement("g:price").SetText(p.EffectivePrice().StringFixed(2))

	availability := "in stock"
	if it.Stock <= 0 {
		availability = "out of stock"
	}
	item.CreateElement("g:availability").SetText(availability)

	if len(p.Images) > 0 {
		item.CreateElement("g:image_link").SetText(p.Images[0])
		for _, img := range p.Images[1:] {
			item.CreateElement("g:additional_image_link").SetText(img)
		}
	}
}
