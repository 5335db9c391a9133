package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osqelasadqw/storefront-api/internal/application/cart"
	"github.com/osqelasadqw/storefront-api/internal/application/dto"
	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
	apphttp "github.com/osqelasadqw/storefront-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memStockStore struct {
	mu    sync.Mutex
	stock map[string]int64
}

func newMemStockStore() *memStockStore {
	return &memStockStore{stock: make(map[string]int64)}
}

func (s *memStockStore) GetStock(_ context.Context, productID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock[productID]
}

func (s *memStockStore) SetStock(_ context.Context, productID string, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[productID] = quantity
	return nil
}

func (s *memStockStore) DecrementIfAvailable(_ context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stock[productID] <= 0 {
		return false, nil
	}
	s.stock[productID]--
	return true, nil
}

type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*entity.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*entity.Cart)}
}

func (r *memCartRepo) Get(_ context.Context, sessionID string) (*entity.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[sessionID]; ok {
		clone := *c
		clone.Lines = append([]entity.CartLine(nil), c.Lines...)
		return &clone, nil
	}
	return entity.NewCart(sessionID), nil
}

func (r *memCartRepo) Save(_ context.Context, c *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	clone.Lines = append([]entity.CartLine(nil), c.Lines...)
	r.carts[c.SessionID] = &clone
	return nil
}

func (r *memCartRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}

// memProductRepo solo implementa GetByID; el resto no se usa en estos tests.
type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *memProductRepo) Create(*entity.Product) error         { return nil }
func (r *memProductRepo) Update(*entity.Product) error         { return nil }
func (r *memProductRepo) Delete(string) error                  { return nil }
func (r *memProductRepo) SetCategories(string, []string) error { return nil }

func (r *memProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) ListByCategory(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) ListDiscounted(int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Search(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

// buildCartApp monta las rutas del carrito con fakes en memoria.
func buildCartApp(stock *memStockStore, products map[string]*entity.Product) *fiber.App {
	svc := cart.NewService(stock, newMemCartRepo(), nil, 0)
	handler := apphttp.NewCartHandler(svc, nil, &memProductRepo{products: products})

	app := fiber.New()
	app.Get("/api/cart", handler.Get)
	app.Post("/api/cart/items", handler.Add)
	app.Delete("/api/cart/items/:productId", handler.Remove)
	return app
}

func addItemRequest(sessionID, productID string) *http.Request {
	body, _ := json.Marshal(dto.AddToCartRequest{ProductID: productID})
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(apphttp.HeaderSessionID, sessionID)
	}
	return req
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCartHandler_SinSessionID_Retorna400(t *testing.T) {
	app := buildCartApp(newMemStockStore(), nil)

	resp, err := app.Test(addItemRequest("", "p1"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"sin X-Session-ID no hay carrito que mutar")
}

func TestCartHandler_ProductoInexistente_Retorna404(t *testing.T) {
	app := buildCartApp(newMemStockStore(), map[string]*entity.Product{})

	resp, err := app.Test(addItemRequest("sess-1", "no-existe"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Con stock 1: el primer agregado entra con aviso de éxito, el segundo
// responde 409 OUT_OF_STOCK y el carrito queda con una sola unidad.
func TestCartHandler_StockUno_SegundoAgregadoRechazado(t *testing.T) {
	stock := newMemStockStore()
	require.NoError(t, stock.SetStock(context.Background(), "p1", 1))
	products := map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Taza", Price: decimal.NewFromInt(10)},
	}
	app := buildCartApp(stock, products)

	resp, err := app.Test(addItemRequest("sess-1", "p1"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.CartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 1, out.TotalItems)
	require.NotNil(t, out.Notice)
	assert.Equal(t, cart.NoticeSuccess, out.Notice.Kind)

	resp2, err := app.Test(addItemRequest("sess-1", "p1"), -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusConflict, resp2.StatusCode,
		"la segunda unidad no existe: debe rechazarse")
}

// Producto con contador nunca inicializado: se trata como agotado.
func TestCartHandler_StockSinInicializar_Retorna409(t *testing.T) {
	products := map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Taza", Price: decimal.NewFromInt(10)},
	}
	app := buildCartApp(newMemStockStore(), products)

	resp, err := app.Test(addItemRequest("sess-1", "p1"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCartHandler_RemoveEsIdempotente(t *testing.T) {
	app := buildCartApp(newMemStockStore(), nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/p-fantasma", nil)
	req.Header.Set(apphttp.HeaderSessionID, "sess-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"quitar una línea inexistente no es error")
}
