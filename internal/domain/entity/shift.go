package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Shift. CLOSED y EXPIRED son terminales.
const (
	ShiftOpen    = "OPEN"
	ShiftClosed  = "CLOSED"
	ShiftExpired = "EXPIRED"
)

// Tipos de registro de caja.
const (
	CashLogOpen  = "open"
	CashLogClose = "close"
)

// ShiftOpenData evidencia capturada al abrir el turno.
type ShiftOpenData struct {
	Checklist []string `json:"checklist"`
	PhotoURL  string   `json:"photo_url,omitempty"`
}

// ShiftCloseData evidencia capturada al cerrar el turno.
type ShiftCloseData struct {
	Checklist      []string `json:"checklist"`
	PhotoURL       string   `json:"photo_url,omitempty"`
	WriteOffReason string   `json:"write_off_reason,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// CashLog registro de caja (append-only).
type CashLog struct {
	Type      string // open, close
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// CashAmount monto de caja opcional. Supplied distingue "no informado" de un cero explícito.
type CashAmount struct {
	Supplied bool
	Value    decimal.Decimal
}

// CashAmountFrom construye un CashAmount desde un puntero (nil = no informado).
func CashAmountFrom(v *decimal.Decimal) CashAmount {
	if v == nil {
		return CashAmount{}
	}
	return CashAmount{Supplied: true, Value: *v}
}

// Shift turno de trabajo de un empleado en un punto de venta.
type Shift struct {
	ID              string
	CompanyID       string
	LocationID      string
	UserID          string
	StartAt         time.Time
	EndAt           *time.Time
	Status          string
	CloseDeadlineAt time.Time
	OpenData        ShiftOpenData
	CloseData       *ShiftCloseData
	CashLogs        []CashLog
}

// IsOpen informa si el turno sigue abierto.
func (s *Shift) IsOpen() bool { return s.Status == ShiftOpen }

// PastDeadline informa si now ya superó el plazo de cierre.
func (s *Shift) PastDeadline(now time.Time) bool { return now.After(s.CloseDeadlineAt) }

// Expire marca el turno como vencido.
func (s *Shift) Expire(now time.Time) {
	end := now
	s.Status = ShiftExpired
	s.EndAt = &end
}

// Close cierra el turno con la evidencia dada y registra el monto de caja si se informó.
func (s *Shift) Close(now time.Time, data ShiftCloseData, cash CashAmount) {
	end := now
	s.Status = ShiftClosed
	s.EndAt = &end
	s.CloseData = &data
	if cash.Supplied {
		s.CashLogs = append(s.CashLogs, CashLog{Type: CashLogClose, Amount: cash.Value, CreatedAt: now})
	}
}

// Clone copia profunda del turno.
func (s *Shift) Clone() *Shift {
	if s == nil {
		return nil
	}
	c := *s
	if s.EndAt != nil {
		end := *s.EndAt
		c.EndAt = &end
	}
	c.OpenData.Checklist = append([]string(nil), s.OpenData.Checklist...)
	if s.CloseData != nil {
		cd := *s.CloseData
		cd.Checklist = append([]string(nil), s.CloseData.Checklist...)
		c.CloseData = &cd
	}
	c.CashLogs = append([]CashLog(nil), s.CashLogs...)
	return &c
}
