package cli

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

func newReportCmd(b *Backend) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"relatorio"},
		Short:   "Relatórios de estoque",
	}

	var pdfDir string
	lowStock := &cobra.Command{
		Use:   "low-stock",
		Short: "Produtos com menos de 10 unidades e sugestão de reposição",
		Args:  cobra.NoArgs,
		RunE: gated(b, access.OpReportsView, func(cmd *cobra.Command, _ []string, _ *entity.Session) error {
			if pdfDir != "" {
				data, name, err := b.Reports.LowStockPDF(cmd.Context())
				if err != nil {
					return err
				}
				return writeReport(cmd, pdfDir, name, data)
			}
			items, err := inventory.NewReplenishmentUseCase(b.Ledger).GenerateReplenishmentList(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				info(cmd, "Nenhum produto com estoque baixo")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, it := range items {
				rows = append(rows, []string{
					strconv.Itoa(it.Priority), it.Product.Code, it.Product.Name,
					strconv.Itoa(it.Product.Quantity), strconv.Itoa(it.SuggestedOrderQty),
					it.EstimatedOrderCost.StringFixed(2),
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"#", "CÓDIGO", "NOME", "QTD", "SUGERIDO", "CUSTO"}, rows)
		}),
	}
	lowStock.Flags().StringVar(&pdfDir, "pdf", "", "grava o relatório em PDF neste diretório")

	var (
		limit  int
		xmlDir string
	)
	movements := &cobra.Command{
		Use:   "movements",
		Short: "Últimas movimentações, a mais recente primeiro",
		Args:  cobra.NoArgs,
		RunE: gated(b, access.OpReportsView, func(cmd *cobra.Command, _ []string, _ *entity.Session) error {
			if xmlDir != "" {
				data, name, err := b.Reports.MovementsXML(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return writeReport(cmd, xmlDir, name, data)
			}
			movs, err := b.Ledger.RecentMovements(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(movs))
			for _, m := range movs {
				rows = append(rows, []string{
					m.Timestamp.Local().Format("02/01/2006 15:04"), m.ProductCode, kindLabel(m.Kind),
					strconv.Itoa(m.Amount), strconv.Itoa(m.PreviousQuantity), m.Actor,
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"DATA", "PRODUTO", "TIPO", "QTD", "SALDO ANT.", "USUÁRIO"}, rows)
		}),
	}
	movements.Flags().IntVar(&limit, "limit", inventory.DefaultRecentMovements, "quantidade de movimentações")
	movements.Flags().StringVar(&xmlDir, "xml", "", "exporta em XML neste diretório")

	history := &cobra.Command{
		Use:   "history <código>",
		Short: "Todas as movimentações de um produto, em ordem cronológica",
		Args:  cobra.ExactArgs(1),
		RunE: gated(b, access.OpReportsView, func(cmd *cobra.Command, args []string, _ *entity.Session) error {
			movs, err := b.Ledger.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(movs) == 0 {
				info(cmd, "Nenhuma movimentação para %s", args[0])
				return nil
			}
			rows := make([][]string, 0, len(movs))
			for _, m := range movs {
				rows = append(rows, []string{
					m.Timestamp.Local().Format("02/01/2006 15:04"), kindLabel(m.Kind),
					strconv.Itoa(m.Amount), strconv.Itoa(m.PreviousQuantity),
					strconv.Itoa(m.PreviousQuantity + m.Delta()), m.Actor,
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"DATA", "TIPO", "QTD", "SALDO ANT.", "SALDO", "USUÁRIO"}, rows)
		}),
	}

	cmd.AddCommand(lowStock, movements, history)
	return cmd
}

func kindLabel(k entity.MovementKind) string {
	if k == entity.MovementOut {
		return "saída"
	}
	return "entrada"
}

func writeReport(cmd *cobra.Command, dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	success(cmd, "Relatório gravado em %s", path)
	return nil
}
