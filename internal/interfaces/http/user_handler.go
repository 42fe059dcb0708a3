package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/usecase"
)

// UserHandler empleados e invitaciones.
type UserHandler struct {
	uc *usecase.UserUseCase
	v  *Validator
}

func NewUserHandler(uc *usecase.UserUseCase, v *Validator) *UserHandler {
	return &UserHandler{uc: uc, v: v}
}

// Create godoc
// @Summary      Dar de alta un usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                 true  "ID de la empresa"
// @Param        body        body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
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
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path   string  true   "ID de la empresa"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/companies/{company_id}/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("company_id"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateInvite godoc
// @Summary      Generar código de invitación
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string                   true  "ID de la empresa"
// @Param        body        body  dto.CreateInviteRequest  true  "Rol por defecto y vencimiento"
// @Success      201  {object}  dto.InviteResponse
// @Router       /api/companies/{company_id}/invites [post]
func (h *UserHandler) CreateInvite(c *fiber.Ctx) error {
	var in dto.CreateInviteRequest
	if len(c.Body()) > 0 {
		if err := h.v.bind(c, &in); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.uc.CreateInvite(c.UserContext(), c.Params("company_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInvites godoc
// @Summary      Listar invitaciones
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        company_id  path  string  true  "ID de la empresa"
// @Success      200  {array}  dto.InviteResponse
// @Router       /api/companies/{company_id}/invites [get]
func (h *UserHandler) ListInvites(c *fiber.Ctx) error {
	out, err := h.uc.ListInvites(c.UserContext(), c.Params("company_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
