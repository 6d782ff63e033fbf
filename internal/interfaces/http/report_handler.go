package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
)

// ReportHandler descargas de informes (PDF de reposición y XML de movimientos).
type ReportHandler struct {
	uc *inventory.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStockPDF godoc
// @Summary      PDF de reposición
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Router       /api/reports/low-stock.pdf [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	out, filename, err := h.uc.LowStockPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}

// MovementsXML godoc
// @Summary      Exportar movimientos en XML
// @Tags         reports
// @Security     Bearer
// @Produce      application/xml
// @Param        limit  query  int  false  "Cantidad (por defecto 10)"
// @Success      200
// @Router       /api/reports/movements.xml [get]
func (h *ReportHandler) MovementsXML(c *fiber.Ctx) error {
	var q dto.ListRequest
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	q.DefaultLimit(inventory.DefaultRecentMovements)
	out, filename, err := h.uc.MovementsXML(c.UserContext(), q.Limit)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}
