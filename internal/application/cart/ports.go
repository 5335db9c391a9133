package cart

import "context"

// StockStore acceso al contador atómico de stock por producto.
//
// GetStock es "fail-closed": ante cualquier falla del almacén devuelve 0 en
// lugar de error, para que una caída nunca se lea como stock infinito.
// DecrementIfAvailable es la única operación que debe ser segura bajo
// invocación concurrente de clientes independientes sobre la misma clave;
// la atomicidad la garantiza el almacén, no este proceso.
type StockStore interface {
	GetStock(ctx context.Context, productID string) int64
	SetStock(ctx context.Context, productID string, quantity int64) error
	DecrementIfAvailable(ctx context.Context, productID string) (bool, error)
}

// Tipos de notificación hacia el usuario.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notifier canal fire-and-forget de avisos cortos al usuario (toast).
// Se inyecta para que el servicio no dependa de la capa de presentación.
type Notifier interface {
	Notify(kind, text string)
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(kind, text string)

// Notify implementa Notifier.
func (f NotifierFunc) Notify(kind, text string) { f(kind, text) }
