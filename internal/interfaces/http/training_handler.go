package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/usecase"
)

// TrainingHandler secciones y lecciones de capacitación.
type TrainingHandler struct {
	uc *usecase.TrainingUseCase
	v  *Validator
}

func NewTrainingHandler(uc *usecase.TrainingUseCase, v *Validator) *TrainingHandler {
	return &TrainingHandler{uc: uc, v: v}
}

// CreateSection godoc
// @Summary      Crear sección
// @Tags         training
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                    true  "ID de la empresa"
// @Param        body        body  dto.CreateSectionRequest  true  "Sección"
// @Success      201  {object}  dto.SectionResponse
// @Router       /api/companies/{company_id}/training/sections [post]
func (h *TrainingHandler) CreateSection(c *fiber.Ctx) error {
	var in dto.CreateSectionRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateSection(c.UserContext(), c.Params("company_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSections godoc
// @Summary      Listar secciones
// @Tags         training
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string  true  "ID de la empresa"
// @Success      200  {array}  dto.SectionResponse
// @Router       /api/companies/{company_id}/training/sections [get]
func (h *TrainingHandler) ListSections(c *fiber.Ctx) error {
	out, err := h.uc.ListSections(c.UserContext(), c.Params("company_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateLesson godoc
// @Summary      Crear lección
// @Tags         training
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                   true  "ID de la empresa"
// @Param        body        body  dto.CreateLessonRequest  true  "Lección"
// @Success      201  {object}  dto.LessonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/training/lessons [post]
func (h *TrainingHandler) CreateLesson(c *fiber.Ctx) error {
	var in dto.CreateLessonRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateLesson(c.UserContext(), c.Params("company_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLessons godoc
// @Summary      Listar lecciones
// @Tags         training
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path   string  true   "ID de la empresa"
// @Param        section_id  query  string  false  "Filtrar por sección"
// @Success      200  {array}  dto.LessonResponse
// @Router       /api/companies/{company_id}/training/lessons [get]
func (h *TrainingHandler) ListLessons(c *fiber.Ctx) error {
	out, err := h.uc.ListLessons(c.UserContext(), c.Params("company_id"), c.Query("section_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
