package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/domain"
)

// statusFor código HTTP según la clase del error de dominio.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

// writeError responde con dto.ErrorResponse. Solo los 500 se registran.
func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	var de *domain.Error
	if errors.As(err, &de) {
		return c.Status(status).JSON(dto.ErrorResponse{Code: de.Code, Message: de.Msg})
	}
	if status == fiber.StatusInternalServerError {
		log := loggerFrom(c)
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(status).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: codeFor(status), Message: err.Error()})
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusBadRequest:
		return "VALIDATION"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusInternalServerError:
		return "INTERNAL"
	}
	return "ERROR"
}

// fiberErrorHandler errores no manejados por los handlers (404 de ruta, panics recuperados).
func fiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: codeFor(fe.Code), Message: fe.Message})
	}
	return writeError(c, err)
}

const localLogger = "logger"

func loggerFrom(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(localLogger).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}
