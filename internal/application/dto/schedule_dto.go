package dto

import "time"

// CreateScheduleRequest turno planificado.
type CreateScheduleRequest struct {
	LocationID string    `json:"location_id" validate:"required"`
	UserID     string    `json:"user_id" validate:"required"`
	StartAt    time.Time `json:"start_at" validate:"required"`
	EndAt      time.Time `json:"end_at" validate:"required"`
	Status     string    `json:"status" validate:"omitempty,oneof=planned approved"`
}

// ScheduleResponse salida de una entrada del cronograma.
type ScheduleResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	LocationID string    `json:"location_id"`
	UserID     string    `json:"user_id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	Status     string    `json:"status"`
}

// CreateMysteryReportRequest reporte de cliente incógnito.
type CreateMysteryReportRequest struct {
	LocationID string         `json:"location_id" validate:"required"`
	UserID     *string        `json:"user_id"`
	ShiftID    *string        `json:"shift_id"`
	Score      int            `json:"score" validate:"min=0,max=100"`
	Answers    map[string]any `json:"answers"`
}

// MysteryReportResponse salida de un reporte.
type MysteryReportResponse struct {
	ID         string         `json:"id"`
	CompanyID  string         `json:"company_id"`
	LocationID string         `json:"location_id"`
	UserID     *string        `json:"user_id,omitempty"`
	ShiftID    *string        `json:"shift_id,omitempty"`
	Score      int            `json:"score"`
	Answers    map[string]any `json:"answers"`
	CreatedAt  time.Time      `json:"created_at"`
}
