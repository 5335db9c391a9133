package entity

import "github.com/shopspring/decimal"

// CartLine una línea del carrito: snapshot del producto al momento de agregarlo
// más la cantidad. Quantity siempre >= 1; una línea que llega a 0 se elimina.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart carrito de una sesión. Cada producto aparece a lo sumo en una línea.
// Es propiedad exclusiva de una sesión: no hay escritores concurrentes.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
}

// NewCart construye un carrito vacío para la sesión.
func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Lines: []CartLine{}}
}

// FindLine devuelve el índice de la línea del producto, o -1 si no existe.
func (c *Cart) FindLine(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddUnit suma una unidad a la línea existente o crea una nueva con el snapshot.
// Solo debe llamarse después de una reserva de stock confirmada.
func (c *Cart) AddUnit(p Product) {
	if i := c.FindLine(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	c.Lines = append(c.Lines, CartLine{Product: p, Quantity: 1})
}

// Remove elimina la línea del producto si existe. Idempotente.
func (c *Cart) Remove(productID string) {
	if i := c.FindLine(productID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// SetQuantity fija la cantidad de la línea; quantity <= 0 equivale a Remove.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	if i := c.FindLine(productID); i >= 0 {
		c.Lines[i].Quantity = quantity
	}
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// TotalItems suma de cantidades de todas las líneas.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Lines {
		total += c.Lines[i].Quantity
	}
	return total
}

// TotalPrice suma de precio efectivo * cantidad por línea. Aplica solo el
// descuento público del snapshot; los códigos promo se resuelven en checkout.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Lines {
		line := &c.Lines[i]
		total = total.Add(line.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
