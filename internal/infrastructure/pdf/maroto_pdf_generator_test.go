package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffops-api/internal/application/report"
	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/infrastructure/memory"
	"github.com/jhoicas/staffops-api/internal/infrastructure/pdf"
)

func closedShift() *entity.Shift {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	s := &entity.Shift{
		ID:              "s1",
		CompanyID:       "c1",
		LocationID:      "l1",
		UserID:          "u1",
		StartAt:         start,
		Status:          entity.ShiftOpen,
		CloseDeadlineAt: start.Add(90 * time.Minute),
		OpenData:        entity.ShiftOpenData{Checklist: []string{"Encender cafetera", "Contar caja"}},
		CashLogs:        []entity.CashLog{{Type: entity.CashLogOpen, Amount: decimal.NewFromInt(1500), CreatedAt: start}},
	}
	s.Close(start.Add(time.Hour), entity.ShiftCloseData{
		Checklist:      []string{"Limpiar barra"},
		WriteOffReason: "leche vencida",
		Notes:          "sin novedades",
	}, entity.CashAmount{Supplied: true, Value: decimal.RequireFromString("2350.50")})
	return s
}

func TestGenerateShiftPDF_DevuelveDocumento(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	out, err := g.GenerateShiftPDF(context.Background(), report.ShiftReportData{
		Shift:    closedShift(),
		Company:  &entity.Company{ID: "c1", Name: "Café Norte", Timezone: "Europe/Moscow"},
		Location: &entity.Location{ID: "l1", CompanyID: "c1", Name: "Centro"},
		User:     &entity.User{ID: "u1", CompanyID: "c1", Name: "Ana"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateShiftPDF_SinPuntoNiUsuario(t *testing.T) {
	s := closedShift()
	s.CashLogs = nil
	s.CloseData = nil
	out, err := pdf.NewMarotoPDFGenerator().GenerateShiftPDF(context.Background(), report.ShiftReportData{
		Shift:   s,
		Company: &entity.Company{ID: "c1", Name: "Café Norte"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = pdf.NewMarotoPDFGenerator().GenerateShiftPDF(context.Background(), report.ShiftReportData{Shift: s})
	assert.Error(t, err)
}

func TestDownloadShiftPDF_ConStoreEnMemoria(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	require.NoError(t, st.Companies().Create(ctx, &entity.Company{ID: "c1", Name: "Café Norte", Timezone: entity.DefaultTimezone}))
	require.NoError(t, st.Companies().Create(ctx, &entity.Company{ID: "c2", Name: "Otra"}))
	require.NoError(t, st.Shifts().Create(ctx, closedShift()))

	uc := report.NewPDFUseCase(st.Shifts(), st.Companies(), st.Locations(), st.Users(), pdf.NewMarotoPDFGenerator())

	out, name, err := uc.DownloadShiftPDF(ctx, "c1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "turno-s1.pdf", name)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, _, err = uc.DownloadShiftPDF(ctx, "c2", "s1")
	assert.ErrorIs(t, err, domain.ErrShiftNotFound)

	_, _, err = uc.DownloadShiftPDF(ctx, "nope", "s1")
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}
