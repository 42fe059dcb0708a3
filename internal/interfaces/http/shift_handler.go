package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/report"
	"github.com/jhoicas/staffops-api/internal/application/shift"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// ShiftHandler apertura, cierre, consulta y reporte PDF de turnos.
type ShiftHandler struct {
	uc  *shift.LifecycleUseCase
	pdf *report.PDFUseCase
	v   *Validator
}

// NewShiftHandler construye el handler de turnos.
func NewShiftHandler(uc *shift.LifecycleUseCase, pdf *report.PDFUseCase, v *Validator) *ShiftHandler {
	return &ShiftHandler{uc: uc, pdf: pdf, v: v}
}

// Open godoc
// @Summary      Abrir turno
// @Description  Valida la política de la empresa (checklist, foto, caja). Un usuario solo puede tener un turno abierto.
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                true  "ID de la empresa"
// @Param        body        body  dto.OpenShiftRequest  true  "Evidencia de apertura"
// @Success      201  {object}  dto.ShiftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/shifts/open [post]
func (h *ShiftHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenShiftRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := requireSelf(c, in.UserID); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.OpenFromRequest(c.UserContext(), c.Params("company_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Cerrar turno
// @Description  Vencido el plazo el turno queda EXPIRED y responde 409 SHIFT_EXPIRED.
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                 true  "ID de la empresa"
// @Param        shift_id    path  string                 true  "ID del turno"
// @Param        body        body  dto.CloseShiftRequest  true  "Evidencia de cierre"
// @Success      200  {object}  dto.ShiftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/shifts/{shift_id}/close [post]
func (h *ShiftHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseShiftRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	if GetRole(c) == entity.RoleStaff {
		current, err := h.uc.Get(c.UserContext(), c.Params("company_id"), c.Params("shift_id"))
		if err != nil {
			return writeError(c, err)
		}
		if err := requireSelf(c, current.UserID); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.uc.CloseFromRequest(c.UserContext(), c.Params("company_id"), c.Params("shift_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar turnos
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path   string  true   "ID de la empresa"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ShiftListResponse
// @Router       /api/companies/{company_id}/shifts [get]
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("company_id"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener turno
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string  true  "ID de la empresa"
// @Param        shift_id    path  string  true  "ID del turno"
// @Success      200  {object}  dto.ShiftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/shifts/{shift_id} [get]
func (h *ShiftHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("company_id"), c.Params("shift_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte PDF del turno
// @Tags         shifts
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        company_id  path  string  true  "ID de la empresa"
// @Param        shift_id    path  string  true  "ID del turno"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/shifts/{shift_id}/report.pdf [get]
func (h *ShiftHandler) ReportPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdf.DownloadShiftPDF(c.UserContext(), c.Params("company_id"), c.Params("shift_id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}
