package shift_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/shift"
)

func strictPolicy() *entity.PolicySettings {
	p := entity.DefaultPolicySettings("c1")
	p.RequireOpenPhoto = true
	p.RequireClosePhoto = true
	p.RequireCashOpen = true
	p.RequireCashClose = true
	return p
}

func TestValidateOpen_OrdenDeErrores(t *testing.T) {
	p := strictPolicy()

	err := shift.ValidateOpen(p, shift.OpenEvidence{})
	assert.ErrorIs(t, err, domain.ErrOpeningChecklistRequired)

	err = shift.ValidateOpen(p, shift.OpenEvidence{Checklist: []string{"luces"}})
	assert.ErrorIs(t, err, domain.ErrOpenPhotoRequired)

	err = shift.ValidateOpen(p, shift.OpenEvidence{Checklist: []string{"luces"}, PhotoURL: "https://x/p.jpg"})
	assert.ErrorIs(t, err, domain.ErrCashOpenRequired)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateOpen_CeroExplicitoCuentaComoInformado(t *testing.T) {
	p := strictPolicy()
	zero := decimal.Zero
	err := shift.ValidateOpen(p, shift.OpenEvidence{
		Checklist: []string{"luces"},
		PhotoURL:  "https://x/p.jpg",
		Cash:      entity.CashAmountFrom(&zero),
	})
	assert.NoError(t, err)
}

func TestValidateOpen_PoliticaPermisiva(t *testing.T) {
	p := entity.DefaultPolicySettings("c1")
	p.RequireOpeningChecklist = false
	assert.NoError(t, shift.ValidateOpen(p, shift.OpenEvidence{}))
}

func TestValidateClose_OrdenDeErrores(t *testing.T) {
	p := strictPolicy()

	assert.ErrorIs(t, shift.ValidateClose(p, shift.CloseEvidence{}), domain.ErrClosingChecklistRequired)
	assert.ErrorIs(t, shift.ValidateClose(p, shift.CloseEvidence{Checklist: []string{"caja"}}), domain.ErrClosePhotoRequired)
	assert.ErrorIs(t, shift.ValidateClose(p, shift.CloseEvidence{Checklist: []string{"caja"}, PhotoURL: "u"}), domain.ErrCashCloseRequired)
}

func TestCloseEvidence_CloseData(t *testing.T) {
	ev := shift.CloseEvidence{Checklist: []string{"caja"}, PhotoURL: "u", WriteOffReason: "merma", Notes: "ok"}
	data := ev.CloseData()
	assert.Equal(t, []string{"caja"}, data.Checklist)
	assert.Equal(t, "merma", data.WriteOffReason)
	assert.Equal(t, "ok", data.Notes)
}
