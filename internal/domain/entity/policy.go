package entity

import "time"

// PolicySettings reglas operativas de una empresa (una por Company).
type PolicySettings struct {
	CompanyID                 string
	ShiftCloseDeadlineMinutes int
	RemindersEnabled          bool
	ReminderScheduleMinutes   []int
	RequireOpeningChecklist   bool
	RequireClosingChecklist   bool
	RequireOpenPhoto          bool
	RequireClosePhoto         bool
	RequireCashOpen           bool
	RequireCashClose          bool
	TestsBlockShiftClosure    bool
	MonthlyTestRequired       bool
	RandomTestProbability     float64 // solo se almacena
	HighIncidentNotifyOwner   bool
	UpdatedAt                 time.Time
}

// DefaultPolicySettings valores vigentes cuando la empresa no configuró su política.
func DefaultPolicySettings(companyID string) *PolicySettings {
	return &PolicySettings{
		CompanyID:                 companyID,
		ShiftCloseDeadlineMinutes: 90,
		RemindersEnabled:          true,
		ReminderScheduleMinutes:   []int{30, 60},
		RequireOpeningChecklist:   true,
		RequireClosingChecklist:   true,
		TestsBlockShiftClosure:    true,
		MonthlyTestRequired:       true,
		HighIncidentNotifyOwner:   true,
	}
}

// CloseDeadline duración desde start_at hasta el vencimiento del turno.
func (p *PolicySettings) CloseDeadline() time.Duration {
	return time.Duration(p.ShiftCloseDeadlineMinutes) * time.Minute
}

// Tipos de checklist.
const (
	ChecklistOpen  = "open"
	ChecklistClose = "close"
)

// ChecklistTemplate lista de ítems sugerida para apertura o cierre.
type ChecklistTemplate struct {
	ID        string
	CompanyID string
	Type      string // open, close
	Items     []string
	CreatedAt time.Time
}
