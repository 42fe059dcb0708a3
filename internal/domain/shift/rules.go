// Package shift contiene las reglas puras de apertura y cierre de turnos.
// No accede a persistencia: recibe la política ya resuelta y la evidencia capturada.
package shift

import (
	"strings"

	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// OpenEvidence evidencia entregada al abrir un turno.
type OpenEvidence struct {
	Checklist []string
	PhotoURL  string
	Cash      entity.CashAmount
}

// CloseEvidence evidencia entregada al cerrar un turno.
type CloseEvidence struct {
	Checklist      []string
	PhotoURL       string
	Cash           entity.CashAmount
	WriteOffReason string
	Notes          string
}

// ValidateOpen aplica las exigencias de la política en orden: checklist, foto, caja.
func ValidateOpen(p *entity.PolicySettings, ev OpenEvidence) error {
	if p.RequireOpeningChecklist && len(ev.Checklist) == 0 {
		return domain.ErrOpeningChecklistRequired
	}
	if p.RequireOpenPhoto && strings.TrimSpace(ev.PhotoURL) == "" {
		return domain.ErrOpenPhotoRequired
	}
	if p.RequireCashOpen && !ev.Cash.Supplied {
		return domain.ErrCashOpenRequired
	}
	return nil
}

// ValidateClose espeja ValidateOpen para el cierre.
func ValidateClose(p *entity.PolicySettings, ev CloseEvidence) error {
	if p.RequireClosingChecklist && len(ev.Checklist) == 0 {
		return domain.ErrClosingChecklistRequired
	}
	if p.RequireClosePhoto && strings.TrimSpace(ev.PhotoURL) == "" {
		return domain.ErrClosePhotoRequired
	}
	if p.RequireCashClose && !ev.Cash.Supplied {
		return domain.ErrCashCloseRequired
	}
	return nil
}

// CloseData traduce la evidencia de cierre al dato persistido.
func (ev CloseEvidence) CloseData() entity.ShiftCloseData {
	return entity.ShiftCloseData{
		Checklist:      append([]string(nil), ev.Checklist...),
		PhotoURL:       ev.PhotoURL,
		WriteOffReason: ev.WriteOffReason,
		Notes:          ev.Notes,
	}
}
