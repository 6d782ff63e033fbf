package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

func newDashboardCmd(b *Backend) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Resumo do estoque",
		Args:  cobra.NoArgs,
		RunE: gated(b, access.OpDashboard, func(cmd *cobra.Command, _ []string, s *entity.Session) error {
			sum, err := b.Ledger.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Olá, %s (%s)\n", s.Username, s.Role.Label())
			return printTable(out, []string{"INDICADOR", "VALOR"}, [][]string{
				{"Produtos", fmt.Sprint(sum.ProductCount)},
				{"Unidades em estoque", fmt.Sprint(sum.TotalUnits)},
				{"Estoque baixo", fmt.Sprint(sum.LowStockCount)},
				{"Valor em estoque", sum.StockValue.StringFixed(2)},
			})
		}),
	}
}
