package repository

import (
	"context"

	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
)

// CartRepository almacenamiento durable del carrito por sesión.
// Recibe context porque cada operación es un viaje de red al almacén;
// las fallas de deserialización NO se propagan: se descarta el valor
// guardado y se parte de un carrito vacío.
type CartRepository interface {
	Get(ctx context.Context, sessionID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
