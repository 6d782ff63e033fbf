package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/controle-estoque/internal/domain"
)

func newLoginCmd(b *Backend) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <usuario>",
		Short: "Inicia a sessão",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := credential(cmd, password)
			if err != nil {
				return err
			}
			s, err := b.Sessions.Login(cmd.Context(), args[0], cred)
			if err != nil {
				return err
			}
			success(cmd, "Bem-vindo, %s (%s)", s.Username, s.Role.Label())
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "senha (se omitida, é lida da entrada padrão)")
	return cmd
}

func newLogoutCmd(b *Backend) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Encerra a sessão",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := b.Sessions.Logout(cmd.Context())
			if err != nil {
				return err
			}
			info(cmd, "Sessão encerrada. Página inicial: %s", entry)
			return nil
		},
	}
}

func newWhoamiCmd(b *Backend) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Aliases: []string{"menu"},
		Short:   "Mostra o usuário da sessão e as operações disponíveis",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := b.Sessions.RequireSession(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", s.Username, s.Role.Label())
			if !s.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "expira em %s\n", s.ExpiresAt.Local().Format("02/01/2006 15:04"))
			}
			for _, op := range b.Gate.ForSession(s).Sorted() {
				fmt.Fprintf(out, "  - %s\n", op)
			}
			return nil
		},
	}
}

func newRegisterCmd(b *Backend) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register <usuario>",
		Short: "Cria uma conta de usuário",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := credential(cmd, password)
			if err != nil {
				return err
			}
			u, err := b.Users.Register(cmd.Context(), args[0], cred)
			if err != nil {
				return err
			}
			success(cmd, "Usuário %s criado", u.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "senha (se omitida, é lida da entrada padrão)")
	return cmd
}

// credential usa el flag o lee una línea de la entrada del comando.
func credential(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	fmt.Fprint(cmd.OutOrStdout(), "Senha: ")
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: senha vazia", domain.ErrInvalidInput)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return strings.TrimRight(sc.Text(), "\r"), nil
}
