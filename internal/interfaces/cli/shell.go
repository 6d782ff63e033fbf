package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const shellPrompt = "estoque> "

// newShellCmd sesión interactiva: la sesión vive solo en memoria y termina con el proceso.
func newShellCmd(b *Backend) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Modo interativo com sessão em memória",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prev := b.Sessions
			b.UseMemorySessions()
			defer func() { b.Sessions = prev }()

			out := cmd.OutOrStdout()
			sc := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprint(out, shellPrompt)
			for sc.Scan() {
				args := strings.Fields(sc.Text())
				switch {
				case len(args) == 0:
				case args[0] == "exit" || args[0] == "sair" || args[0] == "quit":
					return nil
				case args[0] == "shell":
					pwarn(cmd, "já está no modo interativo")
				default:
					line := NewRootCmd(b)
					line.SetArgs(args)
					line.SetIn(&lineReader{sc: sc})
					line.SetOut(out)
					line.SetErr(cmd.ErrOrStderr())
					if err := line.ExecuteContext(cmd.Context()); err != nil {
						printError(cmd.ErrOrStderr(), err)
					}
				}
				fmt.Fprint(out, shellPrompt)
			}
			return sc.Err()
		},
	}
}

// lineReader entrega al comando las líneas siguientes del shell (p. ej. la senha de login).
type lineReader struct {
	sc  *bufio.Scanner
	buf []byte
}

func (r *lineReader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		if !r.sc.Scan() {
			return 0, io.EOF
		}
		r.buf = append(append([]byte(nil), r.sc.Bytes()...), '\n')
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
