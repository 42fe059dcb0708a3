package entity

import "time"

// Niveles de incidente.
const (
	IncidentLow  = "LOW"
	IncidentMed  = "MED"
	IncidentHigh = "HIGH"
)

// Estados de incidente.
const (
	IncidentStatusOpen     = "open"
	IncidentStatusResolved = "resolved"
)

// Incident problema reportado por el personal.
type Incident struct {
	ID         string
	CompanyID  string
	ShiftID    *string
	Level      string
	Category   string
	Text       string
	MediaURL   string
	Status     string
	CreatedAt  time.Time
	ResolvedAt *time.Time
}
