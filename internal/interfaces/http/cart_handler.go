package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/osqelasadqw/storefront-api/internal/application/cart"
	"github.com/osqelasadqw/storefront-api/internal/application/dto"
	"github.com/osqelasadqw/storefront-api/internal/domain"
	"github.com/osqelasadqw/storefront-api/internal/domain/repository"
)

// CartHandler maneja el carrito de la sesión y el resumen de checkout.
// Todas las rutas exigen el header X-Session-ID.
type CartHandler struct {
	svc      *cart.Service
	checkout *cart.CheckoutService
	products repository.ProductRepository
}

// NewCartHandler construye el handler.
func NewCartHandler(svc *cart.Service, checkout *cart.CheckoutService, products repository.ProductRepository) *CartHandler {
	return &CartHandler{svc: svc, checkout: checkout, products: products}
}

func requireSession(c *fiber.Ctx) (string, error) {
	sessionID := getSessionID(c)
	if sessionID == "" {
		return "", c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SESSION", Message: "header X-Session-ID requerido"})
	}
	return sessionID, nil
}

// Get devuelve el carrito de la sesión (vacío si no existe).
func (h *CartHandler) Get(c *fiber.Ctx) error {
	sessionID, err := requireSession(c)
	if sessionID == "" {
		return err
	}
	out, err := h.svc.GetCart(c.Context(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToCartResponse(out, nil))
}

// Add agrega una unidad de un producto al carrito. La unidad solo entra si el
// decremento atómico del contador de stock la reservó antes.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sessionID, err := requireSession(c)
	if sessionID == "" {
		return err
	}
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}

	product, err := h.products.GetByID(in.ProductID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}

	out, err := h.svc.AddToCart(c.Context(), sessionID, *product)
	if err != nil {
		if errors.Is(err, domain.ErrOutOfStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OUT_OF_STOCK", Message: "producto agotado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo completar la operación"})
	}
	notice := &dto.Notice{Kind: cart.NoticeSuccess, Text: "producto agregado al carrito"}
	return c.JSON(dto.ToCartResponse(out, notice))
}

// Remove elimina la línea de un producto. Idempotente; no restituye stock.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sessionID, err := requireSession(c)
	if sessionID == "" {
		return err
	}
	out, err := h.svc.RemoveFromCart(c.Context(), sessionID, c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToCartResponse(out, nil))
}

// UpdateQuantity fija la cantidad de una línea; <= 0 la elimina.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	sessionID, err := requireSession(c)
	if sessionID == "" {
		return err
	}
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.UpdateQuantity(c.Context(), sessionID, c.Params("productId"), in.Quantity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToCartResponse(out, nil))
}

// Clear vacía el carrito de la sesión.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sessionID, err := requireSession(c)
	if sessionID == "" {
		return err
	}
	out, err := h.svc.ClearCart(c.Context(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToCartResponse(out, nil))
}

// Checkout devuelve el resumen de totales aplicando el código promo si viene.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	sessionID, err := requireSession(c)
	if sessionID == "" {
		return err
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	summary, err := h.checkout.Checkout(c.Context(), sessionID, in.PromoCode)
	if err != nil {
		if errors.Is(err, domain.ErrPromoInvalid) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "PROMO_INVALID", Message: "código promocional inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.CheckoutResponse{
		TotalItems:      summary.TotalItems,
		Subtotal:        summary.Subtotal,
		PromoCode:       summary.PromoCode,
		PromoPercentage: summary.PromoPercentage,
		Total:           summary.Total,
	})
}
