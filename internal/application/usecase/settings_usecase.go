package usecase

import (
	"time"

	"github.com/osqelasadqw/storefront-api/internal/application/dto"
	"github.com/osqelasadqw/storefront-api/internal/domain"
	"github.com/osqelasadqw/storefront-api/internal/domain/entity"
	"github.com/osqelasadqw/storefront-api/internal/domain/repository"
)

// SettingsUseCase lectura y edición de la configuración del sitio.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// GetAll devuelve toda la configuración como mapa clave -> valor.
func (uc *SettingsUseCase) GetAll() (*dto.SettingsResponse, error) {
	list, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	settings := make(map[string]string, len(list))
	for _, s := range list {
		settings[s.Key] = s.Value
	}
	return &dto.SettingsResponse{Settings: settings}, nil
}

// Update upserta cada par del mapa recibido.
func (uc *SettingsUseCase) Update(in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if len(in.Settings) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	for key, value := range in.Settings {
		if key == "" {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.repo.Upsert(&entity.Setting{Key: key, Value: value, UpdatedAt: now}); err != nil {
			return nil, err
		}
	}
	return uc.GetAll()
}
