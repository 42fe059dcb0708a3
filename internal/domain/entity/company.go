package entity

import (
	"time"

	// Base IANA embebida: la imagen de despliegue no trae zoneinfo.
	_ "time/tzdata"
)

// DefaultTimezone zona horaria asignada cuando el onboarding no indica otra.
const DefaultTimezone = "Europe/Moscow"

// Company representa una organización/tenant del sistema.
type Company struct {
	ID        string
	Name      string
	Timezone  string // nombre IANA, ej. Europe/Moscow
	CreatedAt time.Time
}

// Location zona horaria de la empresa; UTC si el nombre guardado no es válido.
func (c *Company) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Location punto de venta o sucursal de una empresa.
type Location struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
}
