package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

// ProductHandler catálogo, entradas y salidas de stock.
type ProductHandler struct {
	ledger inventory.Ledger
}

// NewProductHandler construye el handler.
func NewProductHandler(ledger inventory.Ledger) *ProductHandler {
	return &ProductHandler{ledger: ledger}
}

// Create godoc
// @Summary      Registrar producto
// @Description  quantity es el saldo inicial y queda registrado como entrada.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.ledger.RegisterProduct(c.UserContext(), GetUsername(c), &entity.Product{
		Code:     in.Code,
		Name:     in.Name,
		Category: in.Category,
		Quantity: in.Quantity,
		Price:    in.Price,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProduct(p))
}

// List godoc
// @Summary      Consultar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        code      query  string  false  "Código exacto"
// @Param        category  query  string  false  "Categoría"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var f dto.ProductFilterRequest
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	items, err := h.ledger.Products(c.UserContext(), repository.ProductFilter{Code: f.Code, Category: f.Category})
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(items))}
	for _, p := range items {
		out.Items = append(out.Items, dto.FromProduct(p))
	}
	return c.JSON(out)
}

// StockIn godoc
// @Summary      Entrada de stock
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string            true  "Código del producto"
// @Param        body  body  dto.StockRequest  true  "amount > 0"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{code}/stock-in [post]
func (h *ProductHandler) StockIn(c *fiber.Ctx) error {
	return h.move(c, h.ledger.StockIn)
}

// StockOut godoc
// @Summary      Salida de stock
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string            true  "Código del producto"
// @Param        body  body  dto.StockRequest  true  "amount > 0"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{code}/stock-out [post]
func (h *ProductHandler) StockOut(c *fiber.Ctx) error {
	return h.move(c, h.ledger.StockOut)
}

type stockFunc func(ctx context.Context, actor, code string, amount int) (*inventory.StockResult, error)

func (h *ProductHandler) move(c *fiber.Ctx, fn stockFunc) error {
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := fn(c.UserContext(), GetUsername(c), c.Params("code"), in.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{
		Product:  dto.FromProduct(res.Product),
		Movement: dto.FromMovement(res.Movement),
	})
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	report, err := h.ledger.LowStockReport(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ProductListResponse{Items: []dto.ProductResponse{}}
	for p := range report {
		out.Items = append(out.Items, dto.FromProduct(&p))
	}
	return c.JSON(out)
}
