package dto

import "time"

// PolicyRequest reemplaza la política completa. Campos omitidos toman el valor por defecto.
type PolicyRequest struct {
	ShiftCloseDeadlineMinutes *int     `json:"shift_close_deadline_minutes" validate:"omitempty,min=0,max=10080"`
	RemindersEnabled          *bool    `json:"reminders_enabled"`
	ReminderScheduleMinutes   []int    `json:"reminder_schedule_minutes" validate:"omitempty,dive,min=1,max=10080"`
	RequireOpeningChecklist   *bool    `json:"require_opening_checklist"`
	RequireClosingChecklist   *bool    `json:"require_closing_checklist"`
	RequireOpenPhoto          *bool    `json:"require_open_photo"`
	RequireClosePhoto         *bool    `json:"require_close_photo"`
	RequireCashOpen           *bool    `json:"require_cash_open"`
	RequireCashClose          *bool    `json:"require_cash_close"`
	TestsBlockShiftClosure    *bool    `json:"tests_block_shift_closure"`
	MonthlyTestRequired       *bool    `json:"monthly_test_required"`
	RandomTestProbability     *float64 `json:"random_test_probability" validate:"omitempty,min=0,max=1"`
	HighIncidentNotifyOwner   *bool    `json:"high_incident_notify_owner"`
}

// PolicyResponse política vigente de la empresa.
type PolicyResponse struct {
	CompanyID                 string     `json:"company_id"`
	ShiftCloseDeadlineMinutes int        `json:"shift_close_deadline_minutes"`
	RemindersEnabled          bool       `json:"reminders_enabled"`
	ReminderScheduleMinutes   []int      `json:"reminder_schedule_minutes"`
	RequireOpeningChecklist   bool       `json:"require_opening_checklist"`
	RequireClosingChecklist   bool       `json:"require_closing_checklist"`
	RequireOpenPhoto          bool       `json:"require_open_photo"`
	RequireClosePhoto         bool       `json:"require_close_photo"`
	RequireCashOpen           bool       `json:"require_cash_open"`
	RequireCashClose          bool       `json:"require_cash_close"`
	TestsBlockShiftClosure    bool       `json:"tests_block_shift_closure"`
	MonthlyTestRequired       bool       `json:"monthly_test_required"`
	RandomTestProbability     float64    `json:"random_test_probability"`
	HighIncidentNotifyOwner   bool       `json:"high_incident_notify_owner"`
	UpdatedAt                 *time.Time `json:"updated_at,omitempty"`
}

// CreateChecklistRequest plantilla de checklist.
type CreateChecklistRequest struct {
	Type  string   `json:"type" validate:"required,oneof=open close"`
	Items []string `json:"items" validate:"required,min=1,dive,required,max=300"`
}

// ChecklistResponse plantilla de checklist.
type ChecklistResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Type      string    `json:"type"`
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}
