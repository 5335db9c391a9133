package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/osqelasadqw/storefront-api/internal/domain"
	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
	"github.com/osqelasadqw/storefront-api/internal/domain/repository"
)

var _ repository.PromoCodeRepository = (*PromoCodeRepo)(nil)

// PromoCodeRepo implementación del puerto PromoCodeRepository sobre PostgreSQL.
// Los códigos se guardan siempre en mayúsculas.
type PromoCodeRepo struct {
	q Querier
}

// NewPromoCodeRepository construye el adaptador de persistencia para códigos promocionales.
func NewPromoCodeRepository(q Querier) *PromoCodeRepo {
	return &PromoCodeRepo{q: q}
}

// Create persiste un nuevo código promocional.
func (r *PromoCodeRepo) Create(promo *entity.PromoCode) error {
	query := `
		INSERT INTO promo_codes (id, code, percentage, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		promo.ID, strings.ToUpper(promo.Code), promo.Percentage, promo.Active,
		promo.CreatedAt, promo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert promo code: %w", err)
	}
	return nil
}

// GetByCode obtiene un código promocional; la comparación es en mayúsculas.
func (r *PromoCodeRepo) GetByCode(code string) (*entity.PromoCode, error) {
	query := `SELECT id, code, percentage, active, created_at, updated_at FROM promo_codes WHERE code = $1`
	var p entity.PromoCode
	err := r.q.QueryRow(context.Background(), query, strings.ToUpper(code)).Scan(
		&p.ID, &p.Code, &p.Percentage, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promo code: %w", err)
	}
	return &p, nil
}

// Update actualiza porcentaje y estado de un código existente.
func (r *PromoCodeRepo) Update(promo *entity.PromoCode) error {
	query := `UPDATE promo_codes SET percentage = $2, active = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		promo.ID, promo.Percentage, promo.Active, promo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update promo code: %w", err)
	}
	return nil
}

// List lista todos los códigos promocionales.
func (r *PromoCodeRepo) List() ([]*entity.PromoCode, error) {
	query := `SELECT id, code, percentage, active, created_at, updated_at FROM promo_codes ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	defer rows.Close()

	var promos []*entity.PromoCode
	for rows.Next() {
		var p entity.PromoCode
		if err := rows.Scan(&p.ID, &p.Code, &p.Percentage, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan promo code: %w", err)
		}
		promos = append(promos, &p)
	}
	return promos, rows.Err()
}

// Delete elimina un código promocional por ID.
func (r *PromoCodeRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM promo_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promo code: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
