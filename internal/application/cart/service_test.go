package cart_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcart "github.com/osqelasadqw/storefront-api/internal/application/cart"
	"github.com/osqelasadqw/storefront-api/internal/domain"
	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeStockStore contador de stock en memoria con la misma semántica que el
// almacén real: clave ausente cuenta como cero y el decremento es atómico.
type fakeStockStore struct {
	mu     sync.Mutex
	stock  map[string]int64
	getErr bool  // simula falla de red en lectura (GetStock responde 0)
	decErr error // simula falla de red en el decremento (se propaga)

	decrementCalls atomic.Int32
}

func newFakeStockStore() *fakeStockStore {
	return &fakeStockStore{stock: make(map[string]int64)}
}

func (f *fakeStockStore) GetStock(_ context.Context, productID string) int64 {
	if productID == "" || f.getErr {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[productID]
}

func (f *fakeStockStore) SetStock(_ context.Context, productID string, quantity int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stock[productID] = quantity
	return nil
}

func (f *fakeStockStore) DecrementIfAvailable(_ context.Context, productID string) (bool, error) {
	f.decrementCalls.Add(1)
	if f.decErr != nil {
		return false, f.decErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stock[productID] > 0 {
		f.stock[productID]--
		return true, nil
	}
	return false, nil
}

// fakeCartRepo guarda el carrito serializado a JSON, como el almacén real,
// para que los tests ejerciten el round-trip completo.
type fakeCartRepo struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	saveErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{blobs: make(map[string][]byte)}
}

func (f *fakeCartRepo) Get(_ context.Context, sessionID string) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.blobs[sessionID]
	if !ok {
		return entity.NewCart(sessionID), nil
	}
	var c entity.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		// Valor corrupto: se descarta y se parte de un carrito vacío.
		return entity.NewCart(sessionID), nil
	}
	return &c, nil
}

func (f *fakeCartRepo) Save(_ context.Context, cart *entity.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[cart.SessionID] = raw
	return nil
}

func (f *fakeCartRepo) Delete(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, sessionID)
	return nil
}

// noticeRecorder acumula las notificaciones emitidas.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []string // "kind:text"
}

func (r *noticeRecorder) Notify(kind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, kind+":"+text)
}

func (r *noticeRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return ""
	}
	return r.notices[len(r.notices)-1]
}

func testProduct(id string, price int64) entity.Product {
	return entity.Product{
		ID:    id,
		Name:  "producto " + id,
		Price: decimal.NewFromInt(price),
	}
}

func newTestService(stock *fakeStockStore, carts *fakeCartRepo, rec *noticeRecorder) *appcart.Service {
	return appcart.NewService(stock, carts, rec, 0)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddToCart
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: stock 1, dos agregados seguidos. El primero entra; el segundo
// se rechaza por agotado y el carrito queda con una sola línea de cantidad 1.
func TestAddToCart_StockUno_SegundoAgregadoRechazado(t *testing.T) {
	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	rec := &noticeRecorder{}
	svc := newTestService(stock, carts, rec)
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "p1", 1))

	c, err := svc.AddToCart(ctx, "sess", testProduct("p1", 10))
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, int64(0), stock.GetStock(ctx, "p1"), "el stock debe quedar en 0")
	assert.Equal(t, "success:producto agregado al carrito", rec.last())

	_, err = svc.AddToCart(ctx, "sess", testProduct("p1", 10))
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Equal(t, "error:producto agotado", rec.last())

	c, err = svc.GetCart(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, c.Lines, 1, "el carrito no debe mutarse en el rechazo")
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

// Escenario B: producto sin stock inicializado. GetStock reporta 0 y el
// chequeo previo rechaza sin intentar siquiera el decremento.
func TestAddToCart_StockNuncaInicializado_RechazaSinDecrementar(t *testing.T) {
	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	rec := &noticeRecorder{}
	svc := newTestService(stock, carts, rec)
	ctx := context.Background()

	assert.Equal(t, int64(0), stock.GetStock(ctx, "p2"))

	_, err := svc.AddToCart(ctx, "sess", testProduct("p2", 5))
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Equal(t, int32(0), stock.decrementCalls.Load(),
		"con stock 0 no debe intentarse el decremento")

	c, err := svc.GetCart(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

// El chequeo previo puede pasar y aun así perderse la última unidad contra
// otro comprador: el decremento es quien decide y el carrito no se muta.
func TestAddToCart_CarreraPerdida_DecrementoDecide(t *testing.T) {
	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	rec := &noticeRecorder{}
	svc := newTestService(stock, carts, rec)
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "p1", 1))

	// Otro cliente reserva la última unidad entre el chequeo previo y la
	// reserva de este; se simula agotando el contador tras la lectura.
	raced := &racingStockStore{inner: stock}
	svcRaced := appcart.NewService(raced, carts, rec, 0)

	_, err := svcRaced.AddToCart(ctx, "sess", testProduct("p1", 10))
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Equal(t, "error:producto agotado", rec.last())

	c, err := svc.GetCart(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, c.Lines, "el carrito no debe mutarse si el decremento no confirma")
}

// racingStockStore reporta stock disponible en la lectura pero agota el
// contador antes del decremento, emulando a un comprador concurrente.
type racingStockStore struct {
	inner *fakeStockStore
}

func (r *racingStockStore) GetStock(ctx context.Context, productID string) int64 {
	v := r.inner.GetStock(ctx, productID)
	_ = r.inner.SetStock(ctx, productID, 0) // el rival compra justo después de la lectura
	return v
}

func (r *racingStockStore) SetStock(ctx context.Context, productID string, q int64) error {
	return r.inner.SetStock(ctx, productID, q)
}

func (r *racingStockStore) DecrementIfAvailable(ctx context.Context, productID string) (bool, error) {
	return r.inner.DecrementIfAvailable(ctx, productID)
}

// Falla del almacén en el decremento: se propaga, se notifica falla genérica
// y el carrito queda intacto.
func TestAddToCart_FallaDelAlmacen_CarritoIntacto(t *testing.T) {
	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	rec := &noticeRecorder{}
	svc := newTestService(stock, carts, rec)
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "p1", 5))
	stock.decErr = errors.New("conexión rechazada")

	_, err := svc.AddToCart(ctx, "sess", testProduct("p1", 10))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrOutOfStock)
	assert.Equal(t, "error:no se pudo completar la operación", rec.last())

	c, err := svc.GetCart(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

// Lectura de stock fail-closed: si la lectura falla se asume 0 y se rechaza,
// nunca se interpreta como stock infinito.
func TestAddToCart_LecturaFallida_SeAsumeCero(t *testing.T) {
	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	rec := &noticeRecorder{}
	svc := newTestService(stock, carts, rec)
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "p1", 100))
	stock.getErr = true

	_, err := svc.AddToCart(ctx, "sess", testProduct("p1", 10))
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestAddToCart_EntradaInvalida(t *testing.T) {
	svc := newTestService(newFakeStockStore(), newFakeCartRepo(), &noticeRecorder{})

	_, err := svc.AddToCart(context.Background(), "sess", entity.Product{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AddToCart(context.Background(), "", testProduct("p1", 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Invariante: para stock real S, los agregados exitosos nunca superan S sin
// importar cuántos se intenten — clientes concurrentes e independientes
// compartiendo el mismo contador.
func TestAddToCart_Concurrente_NoSobrevende(t *testing.T) {
	initialStock := int64(20)
	totalRequests := 50

	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	svc := appcart.NewService(stock, carts, nil, 0)
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "hot", initialStock))

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session := fmt.Sprintf("sess-%d", n)
			if _, err := svc.AddToCart(ctx, session, testProduct("hot", 10)); err == nil {
				successCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(initialStock), successCount.Load(),
		"los agregados exitosos deben igualar el stock inicial")
	assert.Equal(t, int64(0), stock.GetStock(ctx, "hot"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones del carrito
// ──────────────────────────────────────────────────────────────────────────────

// Quitar dos veces la misma línea produce el mismo estado que quitarla una vez.
func TestRemoveFromCart_Idempotente(t *testing.T) {
	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	svc := newTestService(stock, carts, &noticeRecorder{})
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "p1", 3))
	_, err := svc.AddToCart(ctx, "sess", testProduct("p1", 10))
	require.NoError(t, err)

	c, err := svc.RemoveFromCart(ctx, "sess", "p1")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)

	c, err = svc.RemoveFromCart(ctx, "sess", "p1")
	require.NoError(t, err)
	assert.Empty(t, c.Lines, "quitar una línea inexistente no debe ser error")

	// La unidad reservada no vuelve al stock al quitar la línea.
	assert.Equal(t, int64(2), stock.GetStock(ctx, "p1"))
}

// Cantidad 0 y negativa eliminan la línea por completo.
func TestUpdateQuantity_CeroYNegativoEliminanLinea(t *testing.T) {
	for _, qty := range []int{0, -5} {
		stock := newFakeStockStore()
		carts := newFakeCartRepo()
		svc := newTestService(stock, carts, &noticeRecorder{})
		ctx := context.Background()

		require.NoError(t, stock.SetStock(ctx, "p1", 2))
		_, err := svc.AddToCart(ctx, "sess", testProduct("p1", 10))
		require.NoError(t, err)

		c, err := svc.UpdateQuantity(ctx, "sess", "p1", qty)
		require.NoError(t, err)
		assert.Empty(t, c.Lines, "cantidad %d debe eliminar la línea", qty)
	}
}

// UpdateQuantity sobrescribe sin revalidar stock (comportamiento preservado).
func TestUpdateQuantity_SobrescribeSinRevalidarStock(t *testing.T) {
	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	svc := newTestService(stock, carts, &noticeRecorder{})
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "p1", 1))
	_, err := svc.AddToCart(ctx, "sess", testProduct("p1", 10))
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, "sess", "p1", 99)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 99, c.Lines[0].Quantity)
	assert.Equal(t, int64(0), stock.GetStock(ctx, "p1"),
		"este camino no toca el contador de stock")
}

func TestClearCart_VaciaTodo(t *testing.T) {
	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	svc := newTestService(stock, carts, &noticeRecorder{})
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "p1", 2))
	require.NoError(t, stock.SetStock(ctx, "p2", 2))
	_, err := svc.AddToCart(ctx, "sess", testProduct("p1", 10))
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "sess", testProduct("p2", 20))
	require.NoError(t, err)

	c, err := svc.ClearCart(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
	assert.Equal(t, 0, c.TotalItems())
}

// El carrito persiste y se restaura con las mismas líneas, cantidades y
// snapshots de producto.
func TestCarrito_RoundTripDePersistencia(t *testing.T) {
	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	svc := newTestService(stock, carts, &noticeRecorder{})
	ctx := context.Background()

	require.NoError(t, stock.SetStock(ctx, "p1", 5))
	p := testProduct("p1", 150)
	p.PromoActive = true
	p.IsPublicDiscount = true
	p.DiscountPercentage = decimal.NewFromInt(10)

	_, err := svc.AddToCart(ctx, "sess", p)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "sess", p)
	require.NoError(t, err)

	restored, err := svc.GetCart(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, restored.Lines, 1)
	assert.Equal(t, 2, restored.Lines[0].Quantity)
	assert.True(t, restored.Lines[0].Product.Price.Equal(decimal.NewFromInt(150)))
	assert.True(t, restored.Lines[0].Product.IsPublicDiscount,
		"el snapshot debe conservar los campos de descuento")
}

// Un blob corrupto en el almacén se descarta y se parte de un carrito vacío.
func TestCarrito_BlobCorrupto_SeDescarta(t *testing.T) {
	stock := newFakeStockStore()
	carts := newFakeCartRepo()
	carts.blobs["sess"] = []byte("{esto no es json")
	svc := newTestService(stock, carts, &noticeRecorder{})

	c, err := svc.GetCart(context.Background(), "sess")
	require.NoError(t, err, "un carrito corrupto nunca debe llegar como error")
	assert.Empty(t, c.Lines)
}
