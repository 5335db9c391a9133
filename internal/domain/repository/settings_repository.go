package repository

import "github.com/osqelasadqw/storefront-api/internal/domain/entity"

// SettingsRepository define el puerto de persistencia para la configuración del sitio.
type SettingsRepository interface {
	Get(key string) (*entity.Setting, error)
	GetAll() ([]*entity.Setting, error)
	Upsert(setting *entity.Setting) error
	Delete(key string) error
}
