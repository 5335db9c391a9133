package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcart "github.com/osqelasadqw/storefront-api/internal/application/cart"
	"github.com/osqelasadqw/storefront-api/internal/application/dto"
	"github.com/osqelasadqw/storefront-api/internal/domain"
	"github.com/osqelasadqw/storefront-api/internal/domain/catalog"
	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
	"github.com/osqelasadqw/storefront-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos del catálogo más la fijación administrativa
// del contador de stock. El catálogo vive en PostgreSQL; el stock en el
// almacén atómico, y este caso de uso es el único que lo escribe por fuera
// del flujo del carrito.
type ProductUseCase struct {
	repo     repository.ProductRepository
	stock    appcart.StockStore
	txRunner TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, stock appcart.StockStore, txRunner TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, stock: stock, txRunner: txRunner}
}

// Create crea un producto y sus vínculos de categoría en una transacción.
// Si InitialStock viene, inicializa el contador; una falla ahí SÍ se propaga
// (camino administrativo: el operador debe enterarse).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateDiscount(in.DiscountPercentage); err != nil {
		return nil, err
	}
	if in.InitialStock != nil && *in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Description:        in.Description,
		Price:              in.Price,
		Images:             in.Images,
		PromoActive:        in.PromoActive,
		IsPublicDiscount:   in.IsPublicDiscount,
		DiscountPercentage: in.DiscountPercentage,
		CategoryIDs:        in.CategoryIDs,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.CategoryRepository) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if len(in.CategoryIDs) > 0 {
			return productRepo.SetCategories(product.ID, in.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.InitialStock != nil {
		if err := uc.stock.SetStock(ctx, product.ID, *in.InitialStock); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(ctx, product), nil
}

// GetByID obtiene un producto con su stock actual agregado.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toResponse(ctx, product), nil
}

// Update actualiza campos del producto y, si vienen, sus categorías (misma transacción).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Images != nil {
		product.Images = in.Images
	}
	if in.PromoActive != nil {
		product.PromoActive = *in.PromoActive
	}
	if in.IsPublicDiscount != nil {
		product.IsPublicDiscount = *in.IsPublicDiscount
	}
	if in.DiscountPercentage != nil {
		if err := validateDiscount(*in.DiscountPercentage); err != nil {
			return nil, err
		}
		product.DiscountPercentage = *in.DiscountPercentage
	}
	if in.CategoryIDs != nil {
		product.CategoryIDs = in.CategoryIDs
	}
	product.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.CategoryRepository) error {
		if err := productRepo.Update(product); err != nil {
			return err
		}
		if in.CategoryIDs != nil {
			return productRepo.SetCategories(product.ID, in.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product), nil
}

// SetStock fija el contador de stock (sobrescritura incondicional, solo admin).
func (uc *ProductUseCase) SetStock(ctx context.Context, id string, quantity int64) error {
	if quantity < 0 {
		return domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.stock.SetStock(ctx, id, quantity)
}

// List lista el catálogo con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(ctx, list, limit, offset), nil
}

// ListByCategory lista productos de una categoría.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCategory(categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(ctx, list, limit, offset), nil
}

// ListDiscounted productos con descuento público activo (portada).
func (uc *ProductUseCase) ListDiscounted(ctx context.Context, limit int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListDiscounted(limit)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(ctx, list, limit, 0), nil
}

// Search busca por nombre, insensible a mayúsculas y diacríticos.
func (uc *ProductUseCase) Search(ctx context.Context, query string, limit, offset int) (*dto.ProductListResponse, error) {
	normalized := catalog.Normalize(query)
	if normalized == "" {
		return &dto.ProductListResponse{Items: []dto.ProductResponse{}, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
	}
	list, err := uc.repo.Search(normalized, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(ctx, list, limit, offset), nil
}

// Snapshot devuelve entidades del catálogo con su stock actual, para
// exportaciones (feed XML, lista de precios en PDF).
func (uc *ProductUseCase) Snapshot(ctx context.Context, limit int) ([]*entity.Product, map[string]int64, error) {
	list, err := uc.repo.List(limit, 0)
	if err != nil {
		return nil, nil, err
	}
	stock := make(map[string]int64, len(list))
	for _, p := range list {
		stock[p.ID] = uc.stock.GetStock(ctx, p.ID)
	}
	return list, stock, nil
}

// Delete elimina el producto del catálogo. El contador de stock queda huérfano
// en el almacén; absent y cero son equivalentes para lectura, así que no se borra.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func validateDiscount(pct decimal.Decimal) error {
	if pct.LessThan(decimal.Zero) || pct.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *ProductUseCase) toResponse(ctx context.Context, p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price,
		EffectivePrice:     p.EffectivePrice(),
		Images:             p.Images,
		PromoActive:        p.PromoActive,
		IsPublicDiscount:   p.IsPublicDiscount,
		DiscountPercentage: p.DiscountPercentage,
		CategoryIDs:        p.CategoryIDs,
		Stock:              uc.stock.GetStock(ctx, p.ID),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (uc *ProductUseCase) toListResponse(ctx context.Context, list []*entity.Product, limit, offset int) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toResponse(ctx, p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
