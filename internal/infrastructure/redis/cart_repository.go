package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
	"github.com/osqelasadqw/storefront-api/internal/domain/repository"
)

const cartKeyPrefix = "cart:"

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo almacenamiento durable del carrito: un blob JSON por sesión.
type CartRepo struct {
	client *redis.Client
	ttl    time.Duration // 0 = sin expiración
}

// NewCartRepository construye el repositorio de carritos.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepo {
	return &CartRepo{client: client, ttl: ttl}
}

// Get carga el carrito de la sesión. Clave ausente -> carrito vacío. Un blob
// corrupto se descarta (con warning) y también se parte de vacío: la
// corrupción nunca llega al usuario como error. Las fallas de red sí se
// propagan para que el caso de uso decida.
func (r *CartRepo) Get(ctx context.Context, sessionID string) (*entity.Cart, error) {
	raw, err := r.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.NewCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart %s: %w", sessionID, err)
	}
	var c entity.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).
			Msg("carrito guardado corrupto; se descarta")
		return entity.NewCart(sessionID), nil
	}
	c.SessionID = sessionID
	if c.Lines == nil {
		c.Lines = []entity.CartLine{}
	}
	return &c, nil
}

// Save serializa y persiste el carrito completo (se escribe en cada mutación).
func (r *CartRepo) Save(ctx context.Context, cart *entity.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart %s: %w", cart.SessionID, err)
	}
	if err := r.client.Set(ctx, cartKeyPrefix+cart.SessionID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", cart.SessionID, err)
	}
	return nil
}

// Delete elimina el carrito de la sesión.
func (r *CartRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete cart %s: %w", sessionID, err)
	}
	return nil
}
