package repository

import "github.com/osqelasadqw/storefront-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error)
	// ListDiscounted productos con descuento público activo (portada de la tienda).
	ListDiscounted(limit int) ([]*entity.Product, error)
	// Search busca por nombre normalizado (minúsculas, sin diacríticos).
	Search(normalizedQuery string, limit, offset int) ([]*entity.Product, error)
	// SetCategories reemplaza las categorías del producto (tabla de unión).
	SetCategories(productID string, categoryIDs []string) error
	Delete(id string) error
}
