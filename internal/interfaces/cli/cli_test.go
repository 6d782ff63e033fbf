package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/controle-estoque/internal/application/session"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/remote"
	"github.com/jhoicas/controle-estoque/internal/interfaces/cli"
	"github.com/jhoicas/controle-estoque/pkg/config"
)

const (
	adminPassword = "admin123"
	staffPassword = "func123"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func localConfig(dbPath string) *config.ClientConfig {
	return &config.ClientConfig{
		Backend:    config.BackendLocal,
		SQLitePath: dbPath,
		JWT:        config.JWTConfig{Secret: "cli-test", Expiration: 60, Issuer: "cli-test"},
		Builtins:   config.BuiltinsConfig{AdminPassword: adminPassword, StaffPassword: staffPassword},
	}
}

// newTab abre un backend local sobre dbPath con su propia sesión en memoria.
func newTab(t *testing.T, dbPath string) *cli.Backend {
	t.Helper()
	b, err := cli.NewBackend(localConfig(dbPath), cli.Options{
		SessionStore: session.NewMemoryStore(),
		BcryptCost:   bcrypt.MinCost,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func newLocal(t *testing.T) *cli.Backend {
	t.Helper()
	return newTab(t, filepath.Join(t.TempDir(), "estoque.db"))
}

func run(t *testing.T, b *cli.Backend, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := cli.Execute(context.Background(), b, args, &out, &out)
	return out.String(), err
}

func mustRun(t *testing.T, b *cli.Backend, args ...string) string {
	t.Helper()
	out, err := run(t, b, args...)
	require.NoError(t, err, out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginWhoamiLogout(t *testing.T) {
	b := newLocal(t)

	out, err := run(t, b, "whoami")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Contains(t, out, "Sessão expirada")

	out, err = run(t, b, "login", "admin", "-p", "errada")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Contains(t, out, "Usuário ou senha inválidos")

	out = mustRun(t, b, "login", "admin", "-p", adminPassword)
	assert.Contains(t, out, "Bem-vindo, admin (ADMIN)")

	out = mustRun(t, b, "whoami")
	assert.Contains(t, out, "admin (ADMIN)")
	assert.Contains(t, out, "users.manage")
	assert.Contains(t, out, "stock.in")

	out = mustRun(t, b, "logout")
	assert.Contains(t, out, "index.html")

	_, err = run(t, b, "dashboard")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestWhoami_StaffHasNoUserManagement(t *testing.T) {
	b := newLocal(t)
	mustRun(t, b, "login", "funcionario", "-p", staffPassword)

	out := mustRun(t, b, "whoami")
	assert.Contains(t, out, "FUNCIONARIO")
	assert.Contains(t, out, "products.create")
	assert.NotContains(t, out, "users.manage")

	_, err := run(t, b, "users", "list")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterAndPromote_RoleAppliesOnNextLogin(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "estoque.db")
	adminTab := newTab(t, dbPath)
	userTab := newTab(t, dbPath)

	out := mustRun(t, userTab, "register", "joao", "-p", "segredo1")
	assert.Contains(t, out, "Usuário joao criado")

	_, err := run(t, userTab, "register", "joao", "-p", "segredo1")
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	_, err = run(t, userTab, "register", "maria", "-p", "123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	mustRun(t, userTab, "login", "joao", "-p", "segredo1")
	out = mustRun(t, userTab, "whoami")
	assert.Contains(t, out, "USUARIO")

	_, err = run(t, userTab, "product", "add", "--code", "P1", "--name", "Café")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	mustRun(t, adminTab, "login", "admin", "-p", adminPassword)
	out = mustRun(t, adminTab, "users", "list")
	assert.Contains(t, out, "joao")
	assert.Contains(t, out, "FUNCIONARIO")

	out = mustRun(t, adminTab, "users", "promote", "joao", "funcionario")
	assert.Contains(t, out, "joao agora é FUNCIONARIO")

	_, err = run(t, adminTab, "users", "promote", "admin", "usuario")
	assert.ErrorIs(t, err, domain.ErrProtectedPrincipal)
	_, err = run(t, adminTab, "users", "promote", "joao", "gerente")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// La sesión abierta conserva el rol cacheado hasta el próximo login.
	out = mustRun(t, userTab, "whoami")
	assert.Contains(t, out, "USUARIO")
	_, err = run(t, userTab, "stock", "in", "P1", "1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	mustRun(t, userTab, "login", "joao", "-p", "segredo1")
	out = mustRun(t, userTab, "whoami")
	assert.Contains(t, out, "FUNCIONARIO")
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryFlow(t *testing.T) {
	b := newLocal(t)
	mustRun(t, b, "login", "funcionario", "-p", staffPassword)

	out := mustRun(t, b, "product", "add", "--code", "P1", "--name", "Café", "--category", "Bebidas", "--price", "2.50")
	assert.Contains(t, out, "Produto P1 cadastrado com 0 unidades")

	_, err := run(t, b, "product", "add", "--code", "P1", "--name", "Outro")
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	_, err = run(t, b, "product", "add", "--code", "P2", "--name", "Chá", "--price", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out = mustRun(t, b, "stock", "in", "P1", "12")
	assert.Contains(t, out, "P1: 0 -> 12")

	_, err = run(t, b, "stock", "out", "P1", "15")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, err = run(t, b, "stock", "in", "P1", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = run(t, b, "stock", "in", "NOPE", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = run(t, b, "stock", "in", "P1", "dez")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out = mustRun(t, b, "stock", "out", "P1", "5")
	assert.Contains(t, out, "P1: 12 -> 7")
	assert.Contains(t, out, "estoque baixo")

	out = mustRun(t, b, "product", "list", "--category", "bebidas")
	assert.Contains(t, out, "Café")
	assert.Contains(t, out, "2.50")

	out = mustRun(t, b, "report", "movements", "--limit", "1")
	assert.Contains(t, out, "saída")
	assert.NotContains(t, out, "entrada")

	out = mustRun(t, b, "report", "low-stock")
	assert.Contains(t, out, "P1")
	assert.Contains(t, out, "8", "sugestão = 15 - 7")

	out = mustRun(t, b, "dashboard")
	assert.Contains(t, out, "Olá, funcionario")
	assert.Contains(t, out, "17.50")
}

func TestReportHistory(t *testing.T) {
	b := newLocal(t)
	mustRun(t, b, "login", "funcionario", "-p", staffPassword)
	mustRun(t, b, "product", "add", "--code", "P1", "--name", "Café", "--quantity", "4")
	mustRun(t, b, "product", "add", "--code", "P2", "--name", "Chá")
	mustRun(t, b, "stock", "out", "P1", "3")

	out := mustRun(t, b, "report", "history", "P1")
	assert.Contains(t, out, "entrada")
	assert.Contains(t, out, "saída")
	assert.Less(t, strings.Index(out, "entrada"), strings.Index(out, "saída"), "orden cronológico")

	out = mustRun(t, b, "report", "history", "P2")
	assert.Contains(t, out, "Nenhuma movimentação para P2")

	out, err := run(t, b, "report", "history", "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, out, "Registro não encontrado")
}

func TestErrorMessages_Portuguese(t *testing.T) {
	b := newLocal(t)
	mustRun(t, b, "login", "funcionario", "-p", staffPassword)
	mustRun(t, b, "product", "add", "--code", "P1", "--name", "Café", "--quantity", "2")
	mustRun(t, b, "supplier", "add", "--name", "Acme", "--cnpj", "11.222.333/0001-81")

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"stock", "out", "P1", "5"}, "Estoque insuficiente"},
		{[]string{"stock", "in", "P1", "0"}, "A quantidade deve ser um inteiro positivo"},
		{[]string{"product", "add", "--code", "P1", "--name", "Outro"}, "Já existe um produto com este código"},
		{[]string{"supplier", "add", "--name", "Outra", "--cnpj", "11222333000181"}, "Já existe um fornecedor com este CNPJ"},
		{[]string{"stock", "in", "NOPE", "1"}, "Registro não encontrado"},
		{[]string{"stock", "in", "P1", "dez"}, "Dados inválidos"},
		{[]string{"register", "Admin", "-p", "segredo1"}, "Nome de usuário já existe"},
	}
	for _, tc := range cases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			out, err := run(t, b, tc.args...)
			require.Error(t, err)
			assert.Contains(t, out, tc.want)
		})
	}
}

func TestReportFiles(t *testing.T) {
	b := newLocal(t)
	mustRun(t, b, "login", "admin", "-p", adminPassword)
	mustRun(t, b, "product", "add", "--code", "A", "--name", "Arroz", "--quantity", "3", "--price", "5")

	dir := t.TempDir()
	out := mustRun(t, b, "report", "low-stock", "--pdf", dir)
	assert.Contains(t, out, "Relatório gravado em")
	pdfs, err := filepath.Glob(filepath.Join(dir, "estoque-baixo-*.pdf"))
	require.NoError(t, err)
	require.Len(t, pdfs, 1)
	data, err := os.ReadFile(pdfs[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	mustRun(t, b, "report", "movements", "--xml", dir)
	xmls, err := filepath.Glob(filepath.Join(dir, "movimentacoes-*.xml"))
	require.NoError(t, err)
	require.Len(t, xmls, 1)
	data, err = os.ReadFile(xmls[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "A")
}

func TestSuppliers(t *testing.T) {
	b := newLocal(t)
	mustRun(t, b, "login", "funcionario", "-p", staffPassword)

	mustRun(t, b, "supplier", "add", "--name", "Acme", "--cnpj", "11.111.111/0001-11", "--email", "a@acme.com")
	_, err := run(t, b, "supplier", "add", "--name", "Outra", "--cnpj", "11.111.111/0001-11")
	assert.ErrorIs(t, err, domain.ErrDuplicateTaxID)

	out := mustRun(t, b, "supplier", "list")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "a@acme.com")
}

func TestUserRole_ReadOnly(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "estoque.db")
	b := newTab(t, dbPath)
	mustRun(t, b, "register", "leitor", "-p", "segredo1")
	mustRun(t, b, "login", "leitor", "-p", "segredo1")

	mustRun(t, b, "dashboard")
	mustRun(t, b, "product", "list")
	mustRun(t, b, "supplier", "list")
	mustRun(t, b, "report", "low-stock")

	for _, args := range [][]string{
		{"product", "add", "--code", "X", "--name", "X"},
		{"stock", "in", "X", "1"},
		{"stock", "out", "X", "1"},
		{"supplier", "add", "--name", "S", "--cnpj", "1"},
		{"users", "list"},
	} {
		out, err := run(t, b, args...)
		assert.ErrorIs(t, err, domain.ErrForbidden, strings.Join(args, " "))
		assert.Contains(t, out, "Operação não permitida")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Shell
// ──────────────────────────────────────────────────────────────────────────────

func TestShell(t *testing.T) {
	b := newLocal(t)

	input := strings.Join([]string{
		"whoami",
		"login admin",
		adminPassword,
		"whoami",
		"shell",
		"",
		"sair",
		"dashboard",
	}, "\n") + "\n"

	cmd := cli.NewRootCmd(b)
	var out bytes.Buffer
	cmd.SetArgs([]string{"shell"})
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Sessão expirada")
	assert.Contains(t, text, "Bem-vindo, admin (ADMIN)")
	assert.Contains(t, text, "users.manage")
	assert.Contains(t, text, "já está no modo interativo")
	assert.NotContains(t, text, "Olá, admin", "nada se ejecuta después de sair")

	// La sesión del shell no sobrevive al shell.
	_, err := run(t, b, "whoami")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

// ──────────────────────────────────────────────────────────────────────────────
// Backend remoto
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoteBackend_Unavailable(t *testing.T) {
	cfg := &config.ClientConfig{
		Backend: config.BackendRemote,
		APIURL:  "http://127.0.0.1:1",
		Timeout: 500 * time.Millisecond,
		Role:    config.RoleConfig{Policy: config.RolePolicyExact, AdminAllowList: []string{"admin"}},
	}
	b, err := cli.NewBackend(cfg, cli.Options{SessionStore: session.NewMemoryStore()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	out, err := run(t, b, "login", "admin", "-p", adminPassword)
	assert.True(t, remote.IsUnavailable(err), "err = %v", err)
	assert.Contains(t, out, "Servidor indisponível")

	out, err = run(t, b, "register", "joao", "-p", "segredo1")
	assert.True(t, remote.IsUnavailable(err), "err = %v", err)
	assert.Contains(t, out, "Servidor indisponível")
}

func TestNewBackend_UnknownBackend(t *testing.T) {
	_, err := cli.NewBackend(&config.ClientConfig{Backend: "ftp"}, cli.Options{SessionStore: session.NewMemoryStore()})
	assert.Error(t, err)
}
