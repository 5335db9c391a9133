package dto

// UpdateSettingsRequest mapa clave -> valor a upsertar.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required"`
}

// SettingsResponse configuración del sitio como mapa clave -> valor.
type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
}
