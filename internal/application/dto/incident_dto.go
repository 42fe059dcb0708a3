package dto

import "time"

// CreateIncidentRequest reporte de incidente.
type CreateIncidentRequest struct {
	ShiftID  *string `json:"shift_id"`
	Level    string  `json:"level" validate:"required,oneof=LOW MED HIGH"`
	Category string  `json:"category" validate:"required,min=1,max=100"`
	Text     string  `json:"text" validate:"required,min=1,max=4000"`
	MediaURL string  `json:"media_url" validate:"omitempty,url"`
}

// IncidentResponse salida de un incidente.
type IncidentResponse struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"company_id"`
	ShiftID    *string    `json:"shift_id,omitempty"`
	Level      string     `json:"level"`
	Category   string     `json:"category"`
	Text       string     `json:"text"`
	MediaURL   string     `json:"media_url,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}
