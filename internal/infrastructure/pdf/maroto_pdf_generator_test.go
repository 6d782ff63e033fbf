package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "R$ 0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "R$ 32,50", formatMoney(decimal.RequireFromString("32.5")))
	assert.Equal(t, "R$ 1.234,56", formatMoney(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 1.000.000,00", formatMoney(decimal.NewFromInt(1000000)))
	assert.Equal(t, "-R$ 12,00", formatMoney(decimal.NewFromInt(-12)))
}

func TestGenerateLowStockPDF(t *testing.T) {
	g := NewMarotoPDFGenerator()
	doc := inventory.LowStockDocument{
		Title:       "Controle de Estoque",
		GeneratedAt: time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
		Items: []inventory.ReplenishmentSuggestion{{
			Product:            entity.Product{Code: "P1", Name: "Café", Category: "Bebidas", Quantity: 2, Price: decimal.NewFromInt(10)},
			IdealStock:         inventory.IdealStock,
			SuggestedOrderQty:  13,
			EstimatedOrderCost: decimal.NewFromInt(130),
			Priority:           1,
		}},
		TotalCost: decimal.NewFromInt(130),
	}

	out, err := g.GenerateLowStockPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")

	empty, err := g.GenerateLowStockPDF(context.Background(), inventory.LowStockDocument{Title: "Vazio", TotalCost: decimal.Zero})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
