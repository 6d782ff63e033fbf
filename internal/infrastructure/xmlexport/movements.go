// Package xmlexport exporta el libro de movimientos en XML.
package xmlexport

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

var _ inventory.MovementsExporter = (*MovementsExporter)(nil)

// MovementsExporter serializa movimientos con etree.
type MovementsExporter struct{}

// NewMovementsExporter construye el exportador.
func NewMovementsExporter() *MovementsExporter { return &MovementsExporter{} }

// ExportMovements genera:
//
//	<movimentacoes gerado="..." total="n">
//	  <movimentacao id="..." tipo="entrada|saida">
//	    <codigo/><quantidade/><saldoAnterior/><saldoPosterior/><data/><usuario/>
//	  </movimentacao>
//	</movimentacoes>
func (e *MovementsExporter) ExportMovements(_ context.Context, doc inventory.MovementsDocument) ([]byte, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := out.CreateElement("movimentacoes")
	root.CreateAttr("gerado", doc.GeneratedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("total", strconv.Itoa(len(doc.Movements)))

	for _, m := range doc.Movements {
		if m == nil {
			continue
		}
		el := root.CreateElement("movimentacao")
		el.CreateAttr("id", m.ID)
		el.CreateAttr("tipo", kindLabel(m.Kind))
		el.CreateElement("codigo").SetText(m.ProductCode)
		el.CreateElement("quantidade").SetText(strconv.Itoa(m.Amount))
		el.CreateElement("saldoAnterior").SetText(strconv.Itoa(m.PreviousQuantity))
		el.CreateElement("saldoPosterior").SetText(strconv.Itoa(m.PreviousQuantity + m.Delta()))
		el.CreateElement("data").SetText(m.Timestamp.UTC().Format(time.RFC3339))
		el.CreateElement("usuario").SetText(m.Actor)
	}

	out.Indent(2)
	b, err := out.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar: %w", err)
	}
	return b, nil
}

func kindLabel(k entity.MovementKind) string {
	if k == entity.MovementOut {
		return "saida"
	}
	return "entrada"
}
