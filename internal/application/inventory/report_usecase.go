package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// LowStockDocument datos del PDF de stock bajo.
type LowStockDocument struct {
	Title       string
	GeneratedAt time.Time
	Items       []ReplenishmentSuggestion
	TotalCost   decimal.Decimal
}

// MovementsDocument datos de la exportación de movimientos.
type MovementsDocument struct {
	GeneratedAt time.Time
	Movements   []*entity.Movement
}

// ReportUseCase informes descargables sobre el Ledger.
type ReportUseCase struct {
	ledger        Ledger
	replenishment *ReplenishmentUseCase
	pdf           LowStockPDFGenerator
	exporter      MovementsExporter
	title         string
}

// NewReportUseCase construye el caso de uso inyectando los generadores.
func NewReportUseCase(ledger Ledger, pdf LowStockPDFGenerator, exporter MovementsExporter, title string) *ReportUseCase {
	return &ReportUseCase{
		ledger:        ledger,
		replenishment: NewReplenishmentUseCase(ledger),
		pdf:           pdf,
		exporter:      exporter,
		title:         title,
	}
}

// LowStockPDF genera el PDF de reposición y su nombre de archivo.
func (uc *ReportUseCase) LowStockPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	items, err := uc.replenishment.GenerateReplenishmentList(ctx)
	if err != nil {
		return nil, "", err
	}
	doc := LowStockDocument{
		Title:       uc.title,
		GeneratedAt: time.Now(),
		Items:       items,
		TotalCost:   decimal.Zero,
	}
	for _, it := range items {
		doc.TotalCost = doc.TotalCost.Add(it.EstimatedOrderCost)
	}
	pdfBytes, err = uc.pdf.GenerateLowStockPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	return pdfBytes, "estoque-baixo-" + doc.GeneratedAt.Format("20060102") + ".pdf", nil
}

// MovementsXML exporta los últimos n movimientos (n <= 0 usa DefaultRecentMovements).
func (uc *ReportUseCase) MovementsXML(ctx context.Context, n int) (xmlBytes []byte, filename string, err error) {
	if n <= 0 {
		n = DefaultRecentMovements
	}
	movs, err := uc.ledger.RecentMovements(ctx, n)
	if err != nil {
		return nil, "", err
	}
	doc := MovementsDocument{GeneratedAt: time.Now(), Movements: movs}
	xmlBytes, err = uc.exporter.ExportMovements(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("xml: %w", err)
	}
	return xmlBytes, "movimentacoes-" + doc.GeneratedAt.Format("20060102") + ".xml", nil
}
