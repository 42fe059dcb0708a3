package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffops-api/internal/application/auth"
	"github.com/jhoicas/staffops-api/internal/application/dto"
)

// OnboardingHandler alta de dueños, login web y canje de invitaciones.
type OnboardingHandler struct {
	uc *auth.AuthUseCase
	v  *Validator
}

// NewOnboardingHandler construye el handler de onboarding.
func NewOnboardingHandler(uc *auth.AuthUseCase, v *Validator) *OnboardingHandler {
	return &OnboardingHandler{uc: uc, v: v}
}

// Owner godoc
// @Summary      Alta de empresa y dueño
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OwnerOnboardingRequest  true  "empresa, dueño y credenciales web"
// @Success      201   {object}  dto.OwnerOnboardingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/owner [post]
func (h *OnboardingHandler) Owner(c *fiber.Ctx) error {
	var in dto.OwnerOnboardingRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.OnboardOwner(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión en el panel web
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/onboarding/login [post]
func (h *OnboardingHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Invite godoc
// @Summary      Canjear código de invitación (bot)
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteRedeemRequest  true  "código, telegram_id y nombre"
// @Success      200   {object}  dto.InviteRedeemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/onboarding/invite [post]
func (h *OnboardingHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteRedeemRequest
	if err := h.v.bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RedeemInvite(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
