package inventory

import (
	"context"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

// DefaultRecentMovements tamaño del informe de últimos movimientos.
const DefaultRecentMovements = 10

// StockResult producto tras una entrada/salida y el movimiento que la registra.
type StockResult struct {
	Product  *entity.Product
	Movement *entity.Movement
}

// Summary indicadores del dashboard.
type Summary struct {
	ProductCount  int
	TotalUnits    int
	LowStockCount int
	StockValue    decimal.Decimal
}

// Ledger catálogo de productos más libro de movimientos.
// Hay una implementación local (Service, sobre repositorios) y una remota (API REST);
// se elige por configuración.
type Ledger interface {
	// RegisterProduct da de alta el producto; un saldo inicial > 0 queda registrado como entrada.
	RegisterProduct(ctx context.Context, actor string, p *entity.Product) (*entity.Product, error)
	StockIn(ctx context.Context, actor, code string, amount int) (*StockResult, error)
	StockOut(ctx context.Context, actor, code string, amount int) (*StockResult, error)
	// LowStockReport secuencia finita y reiniciable de productos con quantity < 10, en orden de catálogo.
	LowStockReport(ctx context.Context) (iter.Seq[entity.Product], error)
	// RecentMovements últimos n movimientos, el más reciente primero; n <= 0 no devuelve ninguno.
	RecentMovements(ctx context.Context, n int) ([]*entity.Movement, error)
	// History movimientos de un producto en orden cronológico; domain.ErrNotFound si el código no existe.
	History(ctx context.Context, code string) ([]*entity.Movement, error)
	RegisterSupplier(ctx context.Context, s *entity.Supplier) (*entity.Supplier, error)
	Products(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error)
	Suppliers(ctx context.Context) ([]*entity.Supplier, error)
	Dashboard(ctx context.Context) (*Summary, error)
}

// LowStock filtra perezosamente un snapshot del catálogo. Cada range recorre el snapshot de nuevo.
func LowStock(products []*entity.Product) iter.Seq[entity.Product] {
	return func(yield func(entity.Product) bool) {
		for _, p := range products {
			if p == nil || !p.LowStock() {
				continue
			}
			if !yield(*p) {
				return
			}
		}
	}
}

// Summarize calcula los indicadores del dashboard sobre el catálogo.
func Summarize(products []*entity.Product) *Summary {
	s := &Summary{StockValue: decimal.Zero}
	for _, p := range products {
		s.ProductCount++
		s.TotalUnits += p.Quantity
		if p.LowStock() {
			s.LowStockCount++
		}
		s.StockValue = s.StockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return s
}
