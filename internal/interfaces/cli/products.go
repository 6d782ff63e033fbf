package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

func newProductCmd(b *Backend) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"produto"},
		Short:   "Catálogo de produtos",
	}

	var (
		p     entity.Product
		price string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Cadastra um produto",
		Args:  cobra.NoArgs,
		RunE: gated(b, access.OpProductsCreate, func(cmd *cobra.Command, _ []string, s *entity.Session) error {
			d, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("%w: preço %q", domain.ErrInvalidInput, price)
			}
			p.Price = d
			created, err := b.Ledger.RegisterProduct(cmd.Context(), s.Username, &p)
			if err != nil {
				return err
			}
			success(cmd, "Produto %s cadastrado com %d unidades", created.Code, created.Quantity)
			return nil
		}),
	}
	add.Flags().StringVar(&p.Code, "code", "", "código único")
	add.Flags().StringVar(&p.Name, "name", "", "nome")
	add.Flags().StringVar(&p.Category, "category", "", "categoria")
	add.Flags().IntVar(&p.Quantity, "quantity", 0, "saldo inicial")
	add.Flags().StringVar(&price, "price", "0", "preço unitário")
	_ = add.MarkFlagRequired("code")
	_ = add.MarkFlagRequired("name")

	var filter repository.ProductFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista produtos",
		Args:  cobra.NoArgs,
		RunE: gated(b, access.OpProductsView, func(cmd *cobra.Command, _ []string, _ *entity.Session) error {
			items, err := b.Ledger.Products(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printProducts(cmd, items)
		}),
	}
	list.Flags().StringVar(&filter.Code, "code", "", "filtra por código")
	list.Flags().StringVar(&filter.Category, "category", "", "filtra por categoria")

	cmd.AddCommand(add, list)
	return cmd
}

func newStockCmd(b *Backend) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stock",
		Aliases: []string{"estoque"},
		Short:   "Entradas e saídas de estoque",
	}
	in := stockCmd(b, "in <codigo> <quantidade>", "Registra uma entrada", access.OpStockIn, b.Ledger.StockIn)
	out := stockCmd(b, "out <codigo> <quantidade>", "Registra uma saída", access.OpStockOut, b.Ledger.StockOut)
	cmd.AddCommand(in, out)
	return cmd
}

type stockFunc func(ctx context.Context, actor, code string, amount int) (*inventory.StockResult, error)

func stockCmd(b *Backend, use, short string, op access.OperationID, fn stockFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: gated(b, op, func(cmd *cobra.Command, args []string, s *entity.Session) error {
			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: quantidade %q", domain.ErrInvalidInput, args[1])
			}
			res, err := fn(cmd.Context(), s.Username, args[0], amount)
			if err != nil {
				return err
			}
			success(cmd, "%s: %d -> %d", res.Product.Code, res.Movement.PreviousQuantity, res.Product.Quantity)
			if res.Product.LowStock() {
				pwarn(cmd, "%s está com estoque baixo", res.Product.Code)
			}
			return nil
		}),
	}
}

func printProducts(cmd *cobra.Command, items []*entity.Product) error {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		flag := ""
		if p.LowStock() {
			flag = "baixo"
		}
		rows = append(rows, []string{p.Code, p.Name, p.Category, strconv.Itoa(p.Quantity), p.Price.StringFixed(2), flag})
	}
	return printTable(cmd.OutOrStdout(), []string{"CÓDIGO", "NOME", "CATEGORIA", "QTD", "PREÇO", ""}, rows)
}
