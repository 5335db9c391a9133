package usecase

import (
	"context"

	"github.com/osqelasadqw/storefront-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una transacción SQL
// (Commit si fn retorna nil, Rollback si no). Implementado en infrastructure/postgres.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
	) error) error
}
