package cli

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

func newSupplierCmd(b *Backend) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "supplier",
		Aliases: []string{"fornecedor"},
		Short:   "Fornecedores",
	}

	var s entity.Supplier
	add := &cobra.Command{
		Use:   "add",
		Short: "Cadastra um fornecedor",
		Args:  cobra.NoArgs,
		RunE: gated(b, access.OpSuppliersCreate, func(cmd *cobra.Command, _ []string, _ *entity.Session) error {
			created, err := b.Ledger.RegisterSupplier(cmd.Context(), &s)
			if err != nil {
				return err
			}
			success(cmd, "Fornecedor %s (%s) cadastrado", created.Name, created.TaxID)
			return nil
		}),
	}
	add.Flags().StringVar(&s.Name, "name", "", "razão social")
	add.Flags().StringVar(&s.TaxID, "cnpj", "", "CNPJ (único)")
	add.Flags().StringVar(&s.Phone, "phone", "", "telefone")
	add.Flags().StringVar(&s.Email, "email", "", "e-mail")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("cnpj")

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista fornecedores",
		Args:  cobra.NoArgs,
		RunE: gated(b, access.OpSuppliersView, func(cmd *cobra.Command, _ []string, _ *entity.Session) error {
			items, err := b.Ledger.Suppliers(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(items))
			for _, s := range items {
				rows = append(rows, []string{s.Name, s.TaxID, s.Phone, s.Email})
			}
			return printTable(cmd.OutOrStdout(), []string{"NOME", "CNPJ", "TELEFONE", "E-MAIL"}, rows)
		}),
	}

	cmd.AddCommand(add, list)
	return cmd
}
