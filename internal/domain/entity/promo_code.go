package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoCode descuento no público: requiere que el cliente ingrese el código
// en checkout. No se aplica automáticamente en los totales del carrito.
type PromoCode struct {
	ID         string
	Code       string // único, se compara en mayúsculas
	Percentage decimal.Decimal
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
