package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenShiftRequest apertura de turno. CashOpenAmount nil = no informado; 0 es un monto válido.
type OpenShiftRequest struct {
	LocationID     string           `json:"location_id" validate:"required"`
	UserID         string           `json:"user_id" validate:"required"`
	OpenChecklist  []string         `json:"open_checklist" validate:"omitempty,dive,max=300"`
	OpenPhotoURL   string           `json:"open_photo_url" validate:"omitempty,notblank,max=2000"`
	CashOpenAmount *decimal.Decimal `json:"cash_open_amount"`
}

// CloseShiftRequest cierre de turno.
type CloseShiftRequest struct {
	CloseChecklist  []string         `json:"close_checklist" validate:"omitempty,dive,max=300"`
	ClosePhotoURL   string           `json:"close_photo_url" validate:"omitempty,notblank,max=2000"`
	CashCloseAmount *decimal.Decimal `json:"cash_close_amount"`
	WriteOffReason  string           `json:"write_off_reason" validate:"omitempty,max=1000"`
	Notes           string           `json:"notes" validate:"omitempty,max=2000"`
}

// CashLogResponse registro de caja.
type CashLogResponse struct {
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// ShiftOpenDataResponse evidencia de apertura.
type ShiftOpenDataResponse struct {
	Checklist []string `json:"checklist"`
	PhotoURL  string   `json:"photo_url,omitempty"`
}

// ShiftCloseDataResponse evidencia de cierre.
type ShiftCloseDataResponse struct {
	Checklist      []string `json:"checklist"`
	PhotoURL       string   `json:"photo_url,omitempty"`
	WriteOffReason string   `json:"write_off_reason,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// ShiftResponse salida de un turno.
type ShiftResponse struct {
	ID              string                  `json:"id"`
	CompanyID       string                  `json:"company_id"`
	LocationID      string                  `json:"location_id"`
	UserID          string                  `json:"user_id"`
	StartAt         time.Time               `json:"start_at"`
	EndAt           *time.Time              `json:"end_at"`
	Status          string                  `json:"status"`
	CloseDeadlineAt time.Time               `json:"close_deadline_at"`
	OpenData        ShiftOpenDataResponse   `json:"open_data"`
	CloseData       *ShiftCloseDataResponse `json:"close_data"`
	CashLogs        []CashLogResponse       `json:"cash_logs"`
}

// ShiftListResponse lista paginada de turnos.
type ShiftListResponse struct {
	Items []ShiftResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
