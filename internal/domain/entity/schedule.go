package entity

import "time"

// Estados de ScheduleEntry.
const (
	SchedulePlanned  = "planned"
	ScheduleApproved = "approved"
)

// ScheduleEntry turno planificado en el cronograma.
type ScheduleEntry struct {
	ID         string
	CompanyID  string
	LocationID string
	UserID     string
	StartAt    time.Time
	EndAt      time.Time
	Status     string
	CreatedAt  time.Time
}

// MysteryShopperReport evaluación de cliente incógnito.
type MysteryShopperReport struct {
	ID         string
	CompanyID  string
	LocationID string
	UserID     *string
	ShiftID    *string
	Score      int
	Answers    map[string]any
	CreatedAt  time.Time
}
