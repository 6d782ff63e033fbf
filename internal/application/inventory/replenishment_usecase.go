package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// ReplenishmentSuggestion cantidad sugerida para devolver un producto con stock bajo
// a su nivel ideal.
type ReplenishmentSuggestion struct {
	Product            entity.Product
	IdealStock         int             // LowStockThreshold * 1.5
	SuggestedOrderQty  int             // IdealStock - Quantity
	EstimatedOrderCost decimal.Decimal // SuggestedOrderQty * Price
	Priority           int             // 1 = más urgente
}

// IdealStock nivel al que se repone un producto con stock bajo.
const IdealStock = entity.LowStockThreshold * 3 / 2

// ReplenishmentUseCase genera la lista de reposición a partir del informe de stock bajo.
type ReplenishmentUseCase struct {
	ledger Ledger
}

// NewReplenishmentUseCase construye el caso de uso sobre cualquier Ledger (local o remoto).
func NewReplenishmentUseCase(ledger Ledger) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{ledger: ledger}
}

// GenerateReplenishmentList devuelve los productos con stock bajo, del más urgente
// (menor saldo) al menos urgente; a igual saldo se respeta el orden de catálogo.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]ReplenishmentSuggestion, error) {
	report, err := uc.ledger.LowStockReport(ctx)
	if err != nil {
		return nil, err
	}

	out := []ReplenishmentSuggestion{}
	for p := range report {
		qty := IdealStock - p.Quantity
		out = append(out, ReplenishmentSuggestion{
			Product:            p,
			IdealStock:         IdealStock,
			SuggestedOrderQty:  qty,
			EstimatedOrderCost: p.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Product.Quantity < out[j].Product.Quantity
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
