package entity

import "time"

// Setting par clave/valor de configuración del sitio (nombre de la tienda,
// contacto, redes, idioma por defecto). Editable desde el panel de administración.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
