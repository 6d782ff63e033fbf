package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/pkg/jwt"
)

// Locals keys para el usuario y el rol del token.
const (
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT y carga username y rol en c.Locals.
// Cualquier rechazo responde 401 SESSION_EXPIRED: el cliente vuelve a la pantalla de login.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return sessionExpired(c, "Authorization: Bearer <token> requerido")
		}
		username, roleName, err := jwt.Parse(jwtSecret, strings.TrimSpace(token))
		if err != nil {
			return sessionExpired(c, "token inválido o expirado")
		}
		role := entity.Role(roleName)
		if username == "" || !role.Valid() {
			return sessionExpired(c, "token sin usuario o rol")
		}
		c.Locals(LocalUsername, username)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

func sessionExpired(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: dto.CodeSessionExpired, Message: msg})
}

// GetUsername devuelve el usuario del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetRole devuelve el rol cacheado en el token (después del middleware de auth).
func GetRole(c *fiber.Ctx) entity.Role {
	r, _ := c.Locals(LocalRole).(entity.Role)
	return r
}

// operationGate contrato mínimo que necesita RequireOperation. Lo implementa *access.Gate.
type operationGate interface {
	Allows(role entity.Role, op access.OperationID) bool
}

// RequireOperation restringe la ruta a los roles que ven op.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireOperation(gate operationGate, op access.OperationID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !gate.Allows(GetRole(c), op) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    dto.CodeForbidden,
				Message: "operación '" + string(op) + "' no disponible para este usuario",
			})
		}
		return c.Next()
	}
}
