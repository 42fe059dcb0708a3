package report

import (
	"context"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// ShiftReportData datos ya resueltos para imprimir un turno.
type ShiftReportData struct {
	Shift    *entity.Shift
	Company  *entity.Company
	Location *entity.Location
	User     *entity.User
}

// ShiftPDFGenerator puerto de salida para la representación PDF de un turno.
type ShiftPDFGenerator interface {
	GenerateShiftPDF(ctx context.Context, data ShiftReportData) ([]byte, error)
}
