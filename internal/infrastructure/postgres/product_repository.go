package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osqelasadqw/storefront-api/internal/domain"
	"github.com/osqelasadqw/storefront-api/internal/domain/catalog"
	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
	"github.com/osqelasadqw/storefront-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// selectProduct trae el producto con sus categorías agregadas en un array.
const selectProduct = `
	SELECT p.id, p.name, p.description, p.price, p.images,
	       p.promo_active, p.is_public_discount, p.discount_percentage,
	       COALESCE(array_agg(pc.category_id) FILTER (WHERE pc.category_id IS NOT NULL), '{}'),
	       p.created_at, p.updated_at
	FROM products p
	LEFT JOIN product_categories pc ON pc.product_id = p.id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Images,
		&p.PromoActive, &p.IsPublicDiscount, &p.DiscountPercentage,
		&p.CategoryIDs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Create persiste un nuevo producto. El nombre normalizado (minúsculas, sin
// diacríticos) se guarda junto al original para la búsqueda.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, name_normalized, description, price, images, promo_active, is_public_discount, discount_percentage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, catalog.Normalize(product.Name), product.Description,
		product.Price, product.Images, product.PromoActive, product.IsPublicDiscount,
		product.DiscountPercentage, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := selectProduct + ` WHERE p.id = $1 GROUP BY p.id`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente (las categorías se reemplazan con SetCategories).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, name_normalized = $3, description = $4, price = $5, images = $6,
		       promo_active = $7, is_public_discount = $8, discount_percentage = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, catalog.Normalize(product.Name), product.Description,
		product.Price, product.Images, product.PromoActive, product.IsPublicDiscount,
		product.DiscountPercentage, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos del catálogo con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := selectProduct + ` GROUP BY p.id ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

// ListByCategory lista productos de una categoría con paginación.
func (r *ProductRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error) {
	query := selectProduct + `
		WHERE p.id IN (SELECT product_id FROM product_categories WHERE category_id = $1)
		GROUP BY p.id ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return collectProducts(rows)
}

// ListDiscounted productos con descuento público activo (portada de la tienda).
func (r *ProductRepo) ListDiscounted(limit int) ([]*entity.Product, error) {
	query := selectProduct + `
		WHERE p.promo_active AND p.is_public_discount AND p.discount_percentage > 0
		GROUP BY p.id ORDER BY p.updated_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list discounted products: %w", err)
	}
	return collectProducts(rows)
}

// Search busca por subcadena sobre el nombre normalizado. El caller ya debe
// pasar la consulta normalizada (ver catalog.Normalize).
func (r *ProductRepo) Search(normalizedQuery string, limit, offset int) ([]*entity.Product, error) {
	query := selectProduct + `
		WHERE p.name_normalized LIKE '%' || $1 || '%'
		GROUP BY p.id ORDER BY p.name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, normalizedQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return collectProducts(rows)
}

// SetCategories reemplaza las categorías del producto (borra e inserta en la tabla de unión).
func (r *ProductRepo) SetCategories(productID string, categoryIDs []string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear product categories: %w", err)
	}
	for _, categoryID := range categoryIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
			productID, categoryID,
		)
		if err != nil {
			return fmt.Errorf("link product category: %w", err)
		}
	}
	return nil
}

// Delete elimina un producto y sus vínculos de categoría (ON DELETE CASCADE).
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
