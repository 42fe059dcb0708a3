package botflow

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Etiquetas del teclado de elección de rol.
const (
	LabelOwner = "Dueño / Admin"
	LabelStaff = "Empleado"
)

var (
	ownerHints = []string{"dueno", "duena", "propietari", "admin", "owner", "влад"}
	staffHints = []string{"emplead", "staff", "personal", "сотр"}
)

// normalize minúsculas sin diacríticos: "DUEÑO" → "dueno".
// Caser y Transformer guardan estado, se crean por llamada.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// ParseRoleChoice interpreta texto libre o etiquetas del teclado.
func ParseRoleChoice(text string) Role {
	n := normalize(text)
	if n == "" {
		return RoleNone
	}
	for _, h := range ownerHints {
		if strings.Contains(n, h) {
			return RoleOwner
		}
	}
	for _, h := range staffHints {
		if strings.Contains(n, h) {
			return RoleStaff
		}
	}
	return RoleNone
}
