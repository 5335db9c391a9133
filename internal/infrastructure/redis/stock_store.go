package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/osqelasadqw/storefront-api/internal/application/cart"
)

const stockKeyPrefix = "stock:"

// decrementIfAvailableScript lectura-decisión-decremento en un solo paso
// atómico del lado del servidor: dos compradores concurrentes sobre la misma
// clave quedan serializados por Redis. Clave ausente cuenta como cero (nunca
// hay "una unidad gratis" en un producto sin inicializar).
var decrementIfAvailableScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if not current then
	return 0
end
current = tonumber(current)
if current > 0 then
	redis.call('DECR', KEYS[1])
	return 1
end
return 0
`)

var _ cart.StockStore = (*StockStore)(nil)

// StockStore contador de stock por producto sobre Redis.
type StockStore struct {
	client *redis.Client
}

// NewStockStore construye el accesor de stock.
func NewStockStore(client *redis.Client) *StockStore {
	return &StockStore{client: client}
}

// GetStock devuelve el stock actual. ID vacío o clave ausente valen 0, y
// cualquier falla del almacén también: fail-closed, preferimos vender de
// menos que vender de más. Este camino nunca retorna error.
func (s *StockStore) GetStock(ctx context.Context, productID string) int64 {
	if productID == "" {
		return 0
	}
	val, err := s.client.Get(ctx, stockKeyPrefix+productID).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("product_id", productID).
				Msg("lectura de stock falló; se asume 0")
		}
		return 0
	}
	if val < 0 {
		return 0
	}
	return val
}

// SetStock sobrescribe el contador sin condición. Camino administrativo:
// las fallas SÍ se propagan.
func (s *StockStore) SetStock(ctx context.Context, productID string, quantity int64) error {
	if productID == "" {
		return fmt.Errorf("set stock: product id vacío")
	}
	if err := s.client.Set(ctx, stockKeyPrefix+productID, quantity, 0).Err(); err != nil {
		return fmt.Errorf("set stock %s: %w", productID, err)
	}
	return nil
}

// DecrementIfAvailable reserva una unidad si el contador es > 0. Devuelve
// true solo si el decremento se aplicó. Las fallas del almacén se propagan:
// este camino no puede fallar en silencio, porque un silencio aquí sería
// "unidad en el carrito sin reserva".
func (s *StockStore) DecrementIfAvailable(ctx context.Context, productID string) (bool, error) {
	if productID == "" {
		return false, fmt.Errorf("decrement stock: product id vacío")
	}
	result, err := decrementIfAvailableScript.Run(ctx, s.client, []string{stockKeyPrefix + productID}).Int()
	if err != nil {
		return false, fmt.Errorf("decrement stock %s: %w", productID, err)
	}
	return result == 1, nil
}
