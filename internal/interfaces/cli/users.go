package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

func newUsersCmd(b *Backend) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Gestão de usuários (somente admin)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista os usuários",
		Args:  cobra.NoArgs,
		RunE: gated(b, access.OpUsersManage, func(cmd *cobra.Command, _ []string, _ *entity.Session) error {
			users, err := b.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				role := entity.Role(u.Role)
				rows = append(rows, []string{u.Username, role.Label(), strconv.FormatBool(u.BuiltIn)})
			}
			return printTable(cmd.OutOrStdout(), []string{"USUÁRIO", "PERFIL", "PREDEFINIDO"}, rows)
		}),
	}

	promote := &cobra.Command{
		Use:   "promote <usuario> <perfil>",
		Short: "Altera o perfil de um usuário (admin, funcionario, usuario)",
		Args:  cobra.ExactArgs(2),
		RunE: gated(b, access.OpUsersManage, func(cmd *cobra.Command, args []string, s *entity.Session) error {
			role, ok := entity.ParseRole(args[1])
			if !ok {
				return fmt.Errorf("%w: perfil %q desconhecido", domain.ErrInvalidInput, args[1])
			}
			u, err := b.Users.Promote(cmd.Context(), s.Role, args[0], role)
			if err != nil {
				return err
			}
			success(cmd, "%s agora é %s; vale a partir do próximo login", u.Username, entity.Role(u.Role).Label())
			return nil
		}),
	}

	cmd.AddCommand(list, promote)
	return cmd
}
