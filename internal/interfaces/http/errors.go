package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/domain"
)

// LocalError clave de Locals donde queda el error interno para el log de la petición.
const LocalError = "error"

var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, dto.CodeValidation},
	{domain.ErrInvalidAmount, fiber.StatusBadRequest, dto.CodeInvalidAmount},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, dto.CodeInvalidCredentials},
	{domain.ErrSessionExpired, fiber.StatusUnauthorized, dto.CodeSessionExpired},
	{domain.ErrForbidden, fiber.StatusForbidden, dto.CodeForbidden},
	{domain.ErrProtectedPrincipal, fiber.StatusForbidden, dto.CodeProtectedPrincipal},
	{domain.ErrUnknownPrincipal, fiber.StatusNotFound, dto.CodeUnknownPrincipal},
	{domain.ErrNotFound, fiber.StatusNotFound, dto.CodeNotFound},
	{domain.ErrDuplicateName, fiber.StatusConflict, dto.CodeDuplicateName},
	{domain.ErrDuplicateCode, fiber.StatusConflict, dto.CodeDuplicateCode},
	{domain.ErrDuplicateTaxID, fiber.StatusConflict, dto.CodeDuplicateTaxID},
	{domain.ErrInsufficientStock, fiber.StatusConflict, dto.CodeInsufficientStock},
}

// respondError traduce un error de dominio a su respuesta HTTP.
// Los errores no clasificados responden 500 sin exponer el detalle.
func respondError(c *fiber.Ctx, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: err.Error()})
		}
	}
	c.Locals(LocalError, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: dto.CodeInternal, Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeBadRequest, Message: "cuerpo inválido"})
}

// ErrorHandler manejador de errores de Fiber: rutas inexistentes, métodos no permitidos y pánicos recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := dto.CodeBadRequest
		switch fe.Code {
		case fiber.StatusNotFound:
			code = dto.CodeNotFound
		case fiber.StatusTooManyRequests:
			code = dto.CodeTooManyRequests
		case fiber.StatusInternalServerError:
			code = dto.CodeInternal
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}
