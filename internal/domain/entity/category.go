package entity

import "time"

// Category agrupa productos del catálogo para navegación de la tienda.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
