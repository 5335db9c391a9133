package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/osqelasadqw/storefront-api/internal/application/dto"
	"github.com/osqelasadqw/storefront-api/internal/application/usecase"
	"github.com/osqelasadqw/storefront-api/internal/infrastructure/feed"
	"github.com/osqelasadqw/storefront-api/internal/infrastructure/pdf"
)

// feedMaxItems tope de productos incluidos en una exportación.
const feedMaxItems = 1000

// ExportHandler genera las exportaciones del catálogo: feed XML público y
// lista de precios en PDF para el panel.
type ExportHandler struct {
	products *usecase.ProductUseCase
	settings *usecase.SettingsUseCase
	pdfGen   *pdf.PriceListGenerator
	baseURL  string
}

// NewExportHandler construye el handler.
func NewExportHandler(products *usecase.ProductUseCase, settings *usecase.SettingsUseCase, baseURL string) *ExportHandler {
	return &ExportHandler{
		products: products,
		settings: settings,
		pdfGen:   pdf.NewPriceListGenerator(),
		baseURL:  baseURL,
	}
}

// storeName lee el nombre de la tienda de site_settings, con fallback.
func (h *ExportHandler) storeName() string {
	out, err := h.settings.GetAll()
	if err == nil {
		if name := out.Settings["store_name"]; name != "" {
			return name
		}
	}
	return "Tienda"
}

// ProductFeed sirve el feed XML de productos (RSS 2.0 / Google Merchant).
func (h *ExportHandler) ProductFeed(c *fiber.Ctx) error {
	list, stock, err := h.products.Snapshot(c.Context(), feedMaxItems)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	items := make([]feed.Item, 0, len(list))
	for _, p := range list {
		items = append(items, feed.Item{Product: p, Stock: stock[p.ID]})
	}

	out, err := feed.NewBuilder(h.baseURL, h.storeName()).Build(items)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(out)
}

// PriceList genera la lista de precios del catálogo en PDF (admin).
func (h *ExportHandler) PriceList(c *fiber.Ctx) error {
	list, stock, err := h.products.Snapshot(c.Context(), feedMaxItems)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	items := make([]pdf.PriceListItem, 0, len(list))
	for _, p := range list {
		items = append(items, pdf.PriceListItem{Product: p, Stock: stock[p.ID]})
	}

	out, err := h.pdfGen.Generate(h.storeName(), items)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="lista-de-precios.pdf"`)
	return c.Send(out)
}
