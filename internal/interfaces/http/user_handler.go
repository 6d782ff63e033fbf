package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/usecase"
)

// UserHandler gestión de usuarios y perfil del llamador.
type UserHandler struct {
	uc   *usecase.UserUseCase
	gate *access.Gate
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, gate *access.Gate) *UserHandler {
	return &UserHandler{uc: uc, gate: gate}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Description  Devuelve el rol actual en el almacén, que puede diferir del rol del token.
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Promote godoc
// @Summary      Cambiar el rol de un usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        name  path  string              true  "Nombre de usuario"
// @Param        body  body  dto.PromoteRequest  true  "role o is_superuser/is_staff"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{name} [patch]
func (h *UserHandler) Promote(c *fiber.Ctx) error {
	var in dto.PromoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Promote(c.UserContext(), GetRole(c), c.Params("name"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Operations godoc
// @Summary      Operaciones visibles para el llamador
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OperationsResponse
// @Router       /api/me/operations [get]
func (h *UserHandler) Operations(c *fiber.Ctx) error {
	role := GetRole(c)
	ops := h.gate.VisibleOperations(role).Sorted()
	out := dto.OperationsResponse{
		Username:   GetUsername(c),
		Role:       string(role),
		Operations: make([]string, 0, len(ops)),
	}
	for _, op := range ops {
		out.Operations = append(out.Operations, string(op))
	}
	return c.JSON(out)
}
