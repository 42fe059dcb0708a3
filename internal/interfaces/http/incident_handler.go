package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/usecase"
)

// IncidentHandler incidentes de operación.
type IncidentHandler struct {
	uc *usecase.IncidentUseCase
	v  *Validator
}

func NewIncidentHandler(uc *usecase.IncidentUseCase, v *Validator) *IncidentHandler {
	return &IncidentHandler{uc: uc, v: v}
}

// Create godoc
// @Summary      Reportar incidente
// @Description  Un incidente HIGH avisa a los dueños por Telegram si la política lo indica.
// @Tags         incidents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                     true  "ID de la empresa"
// @Param        body        body  dto.CreateIncidentRequest  true  "Incidente"
// @Success      201  {object}  dto.IncidentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/incidents [post]
func (h *IncidentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIncidentRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), c.Params("company_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar incidentes
// @Tags         incidents
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path   string  true   "ID de la empresa"
// @Param        status      query  string  false  "open | resolved"
// @Success      200  {array}  dto.IncidentResponse
// @Router       /api/companies/{company_id}/incidents [get]
func (h *IncidentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("company_id"), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Marcar incidente como resuelto
// @Tags         incidents
// @Produce      json
// @Security     BearerAuth
// @Param        company_id   path  string  true  "ID de la empresa"
// @Param        incident_id  path  string  true  "ID del incidente"
// @Success      200  {object}  dto.IncidentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/incidents/{incident_id}/resolve [post]
func (h *IncidentHandler) Resolve(c *fiber.Ctx) error {
	out, err := h.uc.Resolve(c.UserContext(), c.Params("company_id"), c.Params("incident_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
