package inventory

import (
	"context"

	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza que el saldo del producto y su movimiento se confirmen juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// LowStockPDFGenerator genera el PDF del informe de reposición.
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, doc LowStockDocument) ([]byte, error)
}

// MovementsExporter serializa movimientos a un documento descargable (XML).
type MovementsExporter interface {
	ExportMovements(ctx context.Context, doc MovementsDocument) ([]byte, error)
}
