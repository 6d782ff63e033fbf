package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/remote"
)

// NewRootCmd arma el árbol de comandos. Cada llamada crea comandos nuevos:
// el shell reconstruye el árbol por línea.
func NewRootCmd(b *Backend) *cobra.Command {
	root := &cobra.Command{
		Use:           "estoquectl",
		Short:         "Controle de estoque: produtos, movimentações e usuários",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(b),
		newLogoutCmd(b),
		newWhoamiCmd(b),
		newRegisterCmd(b),
		newUsersCmd(b),
		newProductCmd(b),
		newStockCmd(b),
		newReportCmd(b),
		newSupplierCmd(b),
		newDashboardCmd(b),
		newShellCmd(b),
	)
	return root
}

// Execute ejecuta args y muestra el error traducido en errOut.
func Execute(ctx context.Context, b *Backend, args []string, out, errOut io.Writer) error {
	root := NewRootCmd(b)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	err := root.ExecuteContext(ctx)
	if err != nil {
		printError(errOut, err)
	}
	return err
}

// requireOp valida la sesión y que su rol vea op.
func requireOp(ctx context.Context, b *Backend, op access.OperationID) (*entity.Session, error) {
	s, err := b.Sessions.RequireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !b.Gate.ForSession(s).Has(op) {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, op)
	}
	return s, nil
}

// gated envuelve un RunE exigiendo op antes de ejecutarlo.
func gated(b *Backend, op access.OperationID, run func(cmd *cobra.Command, args []string, s *entity.Session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := requireOp(cmd.Context(), b, op)
		if err != nil {
			return err
		}
		return run(cmd, args, s)
	}
}

// describeError mensaje para el usuario.
func describeError(err error) string {
	switch {
	case remote.IsUnavailable(err):
		return "Servidor indisponível. Tente novamente mais tarde."
	case errors.Is(err, domain.ErrSessionExpired):
		return "Sessão expirada ou inexistente. Faça login com 'estoquectl login'."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Usuário ou senha inválidos."
	case errors.Is(err, domain.ErrForbidden):
		return "Operação não permitida para o seu perfil."
	case errors.Is(err, domain.ErrProtectedPrincipal):
		return "Usuários predefinidos não podem ser alterados."
	case errors.Is(err, domain.ErrInsufficientStock):
		return "Estoque insuficiente para a saída."
	case errors.Is(err, domain.ErrInvalidAmount):
		return withDetail("A quantidade deve ser um inteiro positivo", err, domain.ErrInvalidAmount)
	case errors.Is(err, domain.ErrDuplicateCode):
		return "Já existe um produto com este código."
	case errors.Is(err, domain.ErrDuplicateTaxID):
		return "Já existe um fornecedor com este CNPJ."
	case errors.Is(err, domain.ErrDuplicateName):
		return "Nome de usuário já existe."
	case errors.Is(err, domain.ErrUnknownPrincipal):
		return "Usuário não encontrado."
	case errors.Is(err, domain.ErrNotFound):
		return withDetail("Registro não encontrado", err, domain.ErrNotFound)
	case errors.Is(err, domain.ErrInvalidInput):
		return withDetail("Dados inválidos", err, domain.ErrInvalidInput)
	}
	return err.Error()
}

// withDetail añade al mensaje lo que el error envuelto lleva tras el sentinel.
func withDetail(msg string, err, sentinel error) string {
	full, prefix := err.Error(), sentinel.Error()+": "
	if i := strings.Index(full, prefix); i >= 0 && len(full) > i+len(prefix) {
		return msg + ": " + strings.TrimSuffix(full[i+len(prefix):], ".") + "."
	}
	return msg + "."
}

func printError(w io.Writer, err error) {
	pterm.Error.WithWriter(w).Println(describeError(err))
}

func success(cmd *cobra.Command, format string, args ...any) {
	pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln(format, args...)
}

func info(cmd *cobra.Command, format string, args ...any) {
	pterm.Info.WithWriter(cmd.OutOrStdout()).Printfln(format, args...)
}

func pwarn(cmd *cobra.Command, format string, args ...any) {
	pterm.Warning.WithWriter(cmd.OutOrStdout()).Printfln(format, args...)
}
