package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

// PDFUseCase genera el reporte PDF de un turno (abierto o terminado).
type PDFUseCase struct {
	shifts    repository.ShiftRepository
	companies repository.CompanyRepository
	locations repository.LocationRepository
	users     repository.UserRepository
	generator ShiftPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	shifts repository.ShiftRepository,
	companies repository.CompanyRepository,
	locations repository.LocationRepository,
	users repository.UserRepository,
	generator ShiftPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		shifts:    shifts,
		companies: companies,
		locations: locations,
		users:     users,
		generator: generator,
	}
}

// DownloadShiftPDF devuelve los bytes del PDF y un nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrCompanyNotFound si la empresa no existe.
//   - domain.ErrShiftNotFound   si el turno no existe o es de otra empresa.
func (uc *PDFUseCase) DownloadShiftPDF(ctx context.Context, companyID, shiftID string) (pdfBytes []byte, filename string, err error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrCompanyNotFound
	}
	s, err := uc.shifts.GetByID(ctx, shiftID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener turno: %w", err)
	}
	if s == nil || s.CompanyID != companyID {
		return nil, "", domain.ErrShiftNotFound
	}
	// Punto de venta y usuario son informativos: si faltan se imprime el ID.
	loc, err := uc.locations.GetByID(ctx, s.LocationID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener punto de venta: %w", err)
	}
	user, err := uc.users.GetByID(ctx, s.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener usuario: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateShiftPDF(ctx, ShiftReportData{Shift: s, Company: company, Location: loc, User: user})
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("turno-%s.pdf", s.ID), nil
}
