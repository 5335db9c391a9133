package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osqelasadqw/storefront-api/internal/application/dto"
	"github.com/osqelasadqw/storefront-api/internal/domain"
	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
	"github.com/osqelasadqw/storefront-api/internal/domain/repository"
)

// PromoCodeUseCase CRUD administrativo de códigos promocionales. La validación
// en checkout vive en el servicio de carrito; aquí solo la gestión.
type PromoCodeUseCase struct {
	repo repository.PromoCodeRepository
}

// NewPromoCodeUseCase construye el caso de uso.
func NewPromoCodeUseCase(repo repository.PromoCodeRepository) *PromoCodeUseCase {
	return &PromoCodeUseCase{repo: repo}
}

// Create registra un código nuevo. El código se guarda en mayúsculas y es único.
func (uc *PromoCodeUseCase) Create(in dto.CreatePromoCodeRequest) (*dto.PromoCodeResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Percentage.LessThanOrEqual(decimal.Zero) || in.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCode(code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	promo := &entity.PromoCode{
		ID:         uuid.New().String(),
		Code:       code,
		Percentage: in.Percentage,
		Active:     in.Active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(promo); err != nil {
		return nil, err
	}
	return toPromoResponse(promo), nil
}

// Update cambia porcentaje y/o estado de un código existente.
func (uc *PromoCodeUseCase) Update(code string, in dto.UpdatePromoCodeRequest) (*dto.PromoCodeResponse, error) {
	promo, err := uc.repo.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, nil
	}
	if in.Percentage != nil {
		if in.Percentage.LessThanOrEqual(decimal.Zero) || in.Percentage.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
		promo.Percentage = *in.Percentage
	}
	if in.Active != nil {
		promo.Active = *in.Active
	}
	promo.UpdatedAt = time.Now()
	if err := uc.repo.Update(promo); err != nil {
		return nil, err
	}
	return toPromoResponse(promo), nil
}

// List lista todos los códigos (solo panel).
func (uc *PromoCodeUseCase) List() (*dto.PromoCodeListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PromoCodeResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPromoResponse(p))
	}
	return &dto.PromoCodeListResponse{Items: items}, nil
}

// Delete elimina un código por ID.
func (uc *PromoCodeUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toPromoResponse(p *entity.PromoCode) *dto.PromoCodeResponse {
	if p == nil {
		return nil
	}
	return &dto.PromoCodeResponse{
		ID:         p.ID,
		Code:       p.Code,
		Percentage: p.Percentage,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
