package xmlexport_test

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/xmlexport"
)

func TestExportMovements(t *testing.T) {
	ts := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	doc := inventory.MovementsDocument{
		GeneratedAt: ts,
		Movements: []*entity.Movement{
			{ID: "m2", ProductCode: "P1", Kind: entity.MovementOut, Amount: 4, PreviousQuantity: 12, Timestamp: ts, Actor: "funcionario"},
			{ID: "m1", ProductCode: "P1", Kind: entity.MovementIn, Amount: 12, PreviousQuantity: 0, Timestamp: ts.Add(-time.Hour), Actor: "admin"},
		},
	}

	out, err := xmlexport.NewMovementsExporter().ExportMovements(context.Background(), doc)
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(out))
	root := parsed.SelectElement("movimentacoes")
	require.NotNil(t, root)
	assert.Equal(t, "2", root.SelectAttrValue("total", ""))

	items := root.SelectElements("movimentacao")
	require.Len(t, items, 2)
	assert.Equal(t, "saida", items[0].SelectAttrValue("tipo", ""))
	assert.Equal(t, "8", items[0].SelectElement("saldoPosterior").Text())
	assert.Equal(t, "entrada", items[1].SelectAttrValue("tipo", ""))
	assert.Equal(t, "admin", items[1].SelectElement("usuario").Text())
}

func TestExportMovements_Empty(t *testing.T) {
	out, err := xmlexport.NewMovementsExporter().ExportMovements(context.Background(), inventory.MovementsDocument{})
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(out))
	assert.Equal(t, "0", parsed.SelectElement("movimentacoes").SelectAttrValue("total", ""))
}
