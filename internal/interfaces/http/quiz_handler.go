package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/quiz"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// QuizHandler tests, preguntas, intentos y cumplimiento mensual.
type QuizHandler struct {
	uc         *quiz.UseCase
	compliance *quiz.ComplianceChecker
	v          *Validator
}

func NewQuizHandler(uc *quiz.UseCase, compliance *quiz.ComplianceChecker, v *Validator) *QuizHandler {
	return &QuizHandler{uc: uc, compliance: compliance, v: v}
}

// Create godoc
// @Summary      Crear test
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                 true  "ID de la empresa"
// @Param        body        body  dto.CreateQuizRequest  true  "Test"
// @Success      201  {object}  dto.QuizResponse
// @Router       /api/companies/{company_id}/quizzes [post]
func (h *QuizHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuizRequest
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
// @Summary      Listar tests
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string  true  "ID de la empresa"
// @Success      200  {array}  dto.QuizResponse
// @Router       /api/companies/{company_id}/quizzes [get]
func (h *QuizHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("company_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddQuestion godoc
// @Summary      Agregar pregunta
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                  true  "ID de la empresa"
// @Param        quiz_id     path  string                  true  "ID del test"
// @Param        body        body  dto.AddQuestionRequest  true  "Pregunta"
// @Success      201  {object}  dto.QuestionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/quizzes/{quiz_id}/questions [post]
func (h *QuizHandler) AddQuestion(c *fiber.Ctx) error {
	var in dto.AddQuestionRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AddQuestion(c.UserContext(), c.Params("company_id"), c.Params("quiz_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListQuestions godoc
// @Summary      Listar preguntas
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string  true  "ID de la empresa"
// @Param        quiz_id     path  string  true  "ID del test"
// @Success      200  {array}  dto.QuestionResponse
// @Router       /api/companies/{company_id}/quizzes/{quiz_id}/questions [get]
func (h *QuizHandler) ListQuestions(c *fiber.Ctx) error {
	out, err := h.uc.ListQuestions(c.UserContext(), c.Params("company_id"), c.Params("quiz_id"))
	if err != nil {
		return writeError(c, err)
	}
	// Staff ve el enunciado, no la clave.
	if GetRole(c) == entity.RoleStaff {
		for i := range out {
			out[i].CorrectAnswers = nil
			out[i].Explanation = ""
		}
	}
	return c.JSON(out)
}

// SubmitAttempt godoc
// @Summary      Enviar intento
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                    true  "ID de la empresa"
// @Param        quiz_id     path  string                    true  "ID del test"
// @Param        body        body  dto.SubmitAttemptRequest  true  "Respuestas por pregunta"
// @Success      201  {object}  dto.AttemptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/quizzes/{quiz_id}/attempts [post]
func (h *QuizHandler) SubmitAttempt(c *fiber.Ctx) error {
	var in dto.SubmitAttemptRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := requireSelf(c, in.UserID); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SubmitAttempt(c.UserContext(), c.Params("company_id"), c.Params("quiz_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAttempts godoc
// @Summary      Listar intentos
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string  true  "ID de la empresa"
// @Param        quiz_id     path  string  true  "ID del test"
// @Success      200  {array}  dto.AttemptResponse
// @Router       /api/companies/{company_id}/quizzes/{quiz_id}/attempts [get]
func (h *QuizHandler) ListAttempts(c *fiber.Ctx) error {
	out, err := h.uc.ListAttempts(c.UserContext(), c.Params("company_id"), c.Params("quiz_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Compliance godoc
// @Summary      ¿Tiene el test mensual al día?
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string  true  "ID de la empresa"
// @Param        user_id     path  string  true  "ID del usuario"
// @Success      200  {object}  dto.ComplianceResponse
// @Router       /api/companies/{company_id}/compliance/{user_id} [get]
func (h *QuizHandler) Compliance(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	ok, err := h.compliance.IsCompliant(c.UserContext(), c.Params("company_id"), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ComplianceResponse{UserID: userID, Compliant: ok})
}
