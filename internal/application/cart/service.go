// Package cart implementa el flujo de carrito consciente de stock: una unidad
// entra al carrito si y solo si antes se reservó (decremento atómico) en el
// contador de stock. El orden reserva-luego-mutación es el mecanismo de
// seguridad; no hay acción compensatoria porque nada se muta antes de reservar.
package cart

import (
	"context"
	"time"

	"github.com/osqelasadqw/storefront-api/internal/domain"
	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
	"github.com/osqelasadqw/storefront-api/internal/domain/repository"
)

// Mensajes hacia el usuario.
const (
	msgOutOfStock = "producto agotado"
	msgAdded      = "producto agregado al carrito"
	msgFailure    = "no se pudo completar la operación"
)

// Service orquesta el carrito de una sesión sobre el contador de stock y el
// almacenamiento durable del carrito.
type Service struct {
	stock    StockStore
	carts    repository.CartRepository
	notifier Notifier
	timeout  time.Duration
}

// NewService construye el servicio. timeout acota cada operación contra los
// almacenes externos; <= 0 usa 5s.
func NewService(stock StockStore, carts repository.CartRepository, notifier Notifier, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if notifier == nil {
		notifier = NotifierFunc(func(kind, text string) {})
	}
	return &Service{stock: stock, carts: carts, notifier: notifier, timeout: timeout}
}

// AddToCart agrega una unidad del producto al carrito de la sesión.
//
// Secuencia: lectura de stock → chequeo previo contra la línea existente →
// decremento atómico (autoritativo) → mutación del carrito → persistencia.
// El chequeo previo solo acota el caso común; bajo carrera puede pasar y aun
// así fallar el decremento, que es quien decide. Ante cualquier error el
// carrito queda intacto.
func (s *Service) AddToCart(ctx context.Context, sessionID string, product entity.Product) (*entity.Cart, error) {
	if sessionID == "" || product.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	current := s.stock.GetStock(ctx, product.ID)

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		s.notifier.Notify(NoticeError, msgFailure)
		return nil, err
	}

	// Chequeo previo: con línea existente se necesita hueco para una unidad
	// más; sin línea, que haya al menos una unidad.
	if i := c.FindLine(product.ID); i >= 0 {
		if current <= int64(c.Lines[i].Quantity) {
			s.notifier.Notify(NoticeError, msgOutOfStock)
			return nil, domain.ErrOutOfStock
		}
	} else if current <= 0 {
		s.notifier.Notify(NoticeError, msgOutOfStock)
		return nil, domain.ErrOutOfStock
	}

	committed, err := s.stock.DecrementIfAvailable(ctx, product.ID)
	if err != nil {
		s.notifier.Notify(NoticeError, msgFailure)
		return nil, err
	}
	if !committed {
		// Otro comprador ganó la última unidad entre el chequeo previo y la reserva.
		s.notifier.Notify(NoticeError, msgOutOfStock)
		return nil, domain.ErrOutOfStock
	}

	c.AddUnit(product)
	if err := s.carts.Save(ctx, c); err != nil {
		// La unidad quedó reservada sin reflejarse en el carrito; el stock no
		// se restituye (misma asimetría que al eliminar líneas).
		s.notifier.Notify(NoticeError, msgFailure)
		return nil, err
	}

	s.notifier.Notify(NoticeSuccess, msgAdded)
	return c, nil
}

// GetCart devuelve el carrito de la sesión (vacío si no existe).
func (s *Service) GetCart(ctx context.Context, sessionID string) (*entity.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.carts.Get(ctx, sessionID)
}

// RemoveFromCart elimina la línea del producto. Idempotente: quitar una línea
// inexistente no es error. No restituye stock (asimetría documentada).
func (s *Service) RemoveFromCart(ctx context.Context, sessionID, productID string) (*entity.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity fija la cantidad de una línea directamente. quantity <= 0
// equivale a RemoveFromCart. Este camino NO revalida contra el contador de
// stock: así se comporta la tienda hoy y se preserva tal cual.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*entity.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.SetQuantity(productID, quantity)
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ClearCart vacía el carrito. No restituye stock.
func (s *Service) ClearCart(ctx context.Context, sessionID string) (*entity.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Clear()
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
