package http

import (
	"context"
	_ "embed"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/ports"
)

//go:embed demo.html
var demoPage []byte

// SystemHandler salud, página demo y diagnóstico del bot.
type SystemHandler struct {
	service  string
	checker  ports.BotTokenChecker
	botToken string
}

// NewSystemHandler checker nil deshabilita /api/check-token.
func NewSystemHandler(service string, checker ports.BotTokenChecker, botToken string) *SystemHandler {
	return &SystemHandler{service: service, checker: checker, botToken: botToken}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.service})
}

// Demo godoc
// @Summary      Página demo
// @Tags         system
// @Produce      html
// @Success      200  {string}  string
// @Router       /demo [get]
func (h *SystemHandler) Demo(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(demoPage)
}

// CheckToken godoc
// @Summary      Verificar token del bot (getMe)
// @Description  Sin token en el cuerpo se verifica el configurado en TELEGRAM_BOT_TOKEN.
// @Tags         system
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckTokenRequest  false  "token opcional"
// @Success      200  {object}  dto.CheckTokenResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.CheckTokenResponse
// @Router       /api/check-token [post]
func (h *SystemHandler) CheckToken(c *fiber.Ctx) error {
	var in dto.CheckTokenRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	token := in.Token
	if token == "" {
		token = h.botToken
	}
	if token == "" || h.checker == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "TELEGRAM_BOT_TOKEN no configurado"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()
	username, err := h.checker.CheckToken(ctx, token)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.CheckTokenResponse{OK: false, Error: err.Error()})
	}
	return c.JSON(dto.CheckTokenResponse{OK: true, Username: username})
}
