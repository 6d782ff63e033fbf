package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// InventoryHandler movimientos, proveedores y dashboard.
type InventoryHandler struct {
	ledger inventory.Ledger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger inventory.Ledger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// Movements godoc
// @Summary      Movimientos recientes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad (por defecto 10)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	var q dto.ListRequest
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	q.DefaultLimit(inventory.DefaultRecentMovements)
	movs, err := h.ledger.RecentMovements(c.UserContext(), q.Limit)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.MovementListResponse{Items: make([]dto.MovementResponse, 0, len(movs))}
	for _, m := range movs {
		out.Items = append(out.Items, dto.FromMovement(m))
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de un producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{code}/movements [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	movs, err := h.ledger.History(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.MovementListResponse{Items: make([]dto.MovementResponse, 0, len(movs))}
	for _, m := range movs {
		out.Items = append(out.Items, dto.FromMovement(m))
	}
	return c.JSON(out)
}

// CreateSupplier godoc
// @Summary      Registrar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *InventoryHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.ledger.RegisterSupplier(c.UserContext(), &entity.Supplier{
		Name: in.Name, TaxID: in.TaxID, Phone: in.Phone, Email: in.Email,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromSupplier(s))
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SupplierListResponse
// @Router       /api/suppliers [get]
func (h *InventoryHandler) ListSuppliers(c *fiber.Ctx) error {
	list, err := h.ledger.Suppliers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := dto.SupplierListResponse{Items: make([]dto.SupplierResponse, 0, len(list))}
	for _, s := range list {
		out.Items = append(out.Items, dto.FromSupplier(s))
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen del inventario
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/dashboard [get]
func (h *InventoryHandler) Dashboard(c *fiber.Ctx) error {
	sum, err := h.ledger.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DashboardDTO{
		ProductCount:  sum.ProductCount,
		TotalUnits:    sum.TotalUnits,
		LowStockCount: sum.LowStockCount,
		StockValue:    sum.StockValue,
	})
}
