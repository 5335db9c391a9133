package repository

import "github.com/osqelasadqw/storefront-api/internal/domain/entity"

// PromoCodeRepository define el puerto de persistencia para PromoCode (DIP).
type PromoCodeRepository interface {
	Create(promo *entity.PromoCode) error
	GetByCode(code string) (*entity.PromoCode, error)
	Update(promo *entity.PromoCode) error
	List() ([]*entity.PromoCode, error)
	Delete(id string) error
}
