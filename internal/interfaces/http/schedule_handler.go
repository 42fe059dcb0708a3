package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/usecase"
	"github.com/jhoicas/staffops-api/internal/domain"
)

// ScheduleHandler cronograma y cliente incógnito.
type ScheduleHandler struct {
	uc *usecase.ScheduleUseCase
	v  *Validator
}

func NewScheduleHandler(uc *usecase.ScheduleUseCase, v *Validator) *ScheduleHandler {
	return &ScheduleHandler{uc: uc, v: v}
}

// CreateEntry godoc
// @Summary      Planificar turno
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                     true  "ID de la empresa"
// @Param        body        body  dto.CreateScheduleRequest  true  "Entrada del cronograma"
// @Success      201  {object}  dto.ScheduleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/schedule [post]
func (h *ScheduleHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateScheduleRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateEntry(c.UserContext(), c.Params("company_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEntries godoc
// @Summary      Listar cronograma
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path   string  true   "ID de la empresa"
// @Param        from        query  string  false  "RFC3339, inclusive"
// @Param        to          query  string  false  "RFC3339, exclusivo"
// @Success      200  {array}   dto.ScheduleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/schedule [get]
func (h *ScheduleHandler) ListEntries(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListEntries(c.UserContext(), c.Params("company_id"), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateMysteryReport godoc
// @Summary      Registrar evaluación de cliente incógnito
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                          true  "ID de la empresa"
// @Param        body        body  dto.CreateMysteryReportRequest  true  "Evaluación"
// @Success      201  {object}  dto.MysteryReportResponse
// @Router       /api/companies/{company_id}/mystery-shopper [post]
func (h *ScheduleHandler) CreateMysteryReport(c *fiber.Ctx) error {
	var in dto.CreateMysteryReportRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateMysteryReport(c.UserContext(), c.Params("company_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMysteryReports godoc
// @Summary      Listar evaluaciones de cliente incógnito
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string  true  "ID de la empresa"
// @Success      200  {array}  dto.MysteryReportResponse
// @Router       /api/companies/{company_id}/mystery-shopper [get]
func (h *ScheduleHandler) ListMysteryReports(c *fiber.Ctx) error {
	out, err := h.uc.ListMysteryReports(c.UserContext(), c.Params("company_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// queryTime vacío = sin límite.
func queryTime(c *fiber.Ctx, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.Validation("INVALID_QUERY", key+" debe tener formato RFC3339")
	}
	return t, nil
}
