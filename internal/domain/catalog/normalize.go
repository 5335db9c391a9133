package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepara un texto para búsqueda: recorta espacios, pasa a
// minúsculas y elimina diacríticos ("Café" -> "cafe"). Se usa tanto al
// indexar el nombre del producto como al normalizar la consulta del usuario.
func Normalize(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	// transform.Chain mantiene estado interno; se construye por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, lowered)
	if err != nil {
		return lowered
	}
	return out
}
