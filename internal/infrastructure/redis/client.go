// Package redis implementa sobre Redis los dos almacenes "en caliente" de la
// tienda: el contador atómico de stock por producto y el carrito durable por
// sesión. Es el único paquete que conoce las claves y su codificación.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/osqelasadqw/storefront-api/pkg/config"
)

// NewClient crea y verifica (PING) el cliente Redis con la configuración de la app.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
