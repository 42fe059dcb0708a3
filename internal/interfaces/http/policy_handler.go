package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/usecase"
)

// PolicyHandler política de la empresa y plantillas de checklist.
type PolicyHandler struct {
	svc *usecase.PolicyService
	v   *Validator
}

func NewPolicyHandler(svc *usecase.PolicyService, v *Validator) *PolicyHandler {
	return &PolicyHandler{svc: svc, v: v}
}

// Get godoc
// @Summary      Política vigente (valores por defecto si no hay)
// @Tags         policies
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.PolicyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/policies [get]
func (h *PolicyHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("company_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Replace godoc
// @Summary      Reemplazar la política completa
// @Tags         policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string             true  "ID de la empresa"
// @Param        body        body  dto.PolicyRequest  true  "Campos omitidos toman el valor por defecto"
// @Success      200  {object}  dto.PolicyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/policies [put]
func (h *PolicyHandler) Replace(c *fiber.Ctx) error {
	var in dto.PolicyRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Replace(c.UserContext(), c.Params("company_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateChecklist godoc
// @Summary      Crear plantilla de checklist
// @Tags         policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                      true  "ID de la empresa"
// @Param        body        body  dto.CreateChecklistRequest  true  "Tipo e ítems"
// @Success      201  {object}  dto.ChecklistResponse
// @Router       /api/companies/{company_id}/checklists [post]
func (h *PolicyHandler) CreateChecklist(c *fiber.Ctx) error {
	var in dto.CreateChecklistRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.CreateChecklist(c.UserContext(), c.Params("company_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListChecklists godoc
// @Summary      Listar plantillas de checklist
// @Tags         policies
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path   string  true   "ID de la empresa"
// @Param        type        query  string  false  "open | close"
// @Success      200  {array}  dto.ChecklistResponse
// @Router       /api/companies/{company_id}/checklists [get]
func (h *PolicyHandler) ListChecklists(c *fiber.Ctx) error {
	out, err := h.svc.ListChecklists(c.UserContext(), c.Params("company_id"), c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
