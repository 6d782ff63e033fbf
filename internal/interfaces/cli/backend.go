// Package cli cliente de línea de comandos (estoquectl): mismas operaciones que las
// pantallas, filtradas por el Access Gate según el rol de la sesión.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/application/auth"
	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/identity"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/application/role"
	"github.com/jhoicas/controle-estoque/internal/application/session"
	"github.com/jhoicas/controle-estoque/internal/application/usecase"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/localstore"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/pdf"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/remote"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/xmlexport"
	"github.com/jhoicas/controle-estoque/pkg/config"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

const reportTitle = "Controle de Estoque"

// UserDirectory gestión de usuarios, local o remota.
type UserDirectory interface {
	Register(ctx context.Context, name, credential string) (*dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	Promote(ctx context.Context, actorRole entity.Role, target string, newRole entity.Role) (*dto.UserResponse, error)
}

// Backend dependencias de los comandos.
type Backend struct {
	Auth     session.Authenticator
	Sessions *session.Manager
	Gate     *access.Gate
	Ledger   inventory.Ledger
	Users    UserDirectory
	Reports  *inventory.ReportUseCase
	Log      *logger.Logger

	sessionOpts session.Options
	closers     []func() error
}

// Options parámetros de construcción del Backend.
type Options struct {
	SessionStore session.Store // nil = archivo por pestaña en cfg.SessionDir
	BcryptCost   int
	Logger       *logger.Logger
}

// NewBackend elige el backend local o remoto según cfg.Backend.
func NewBackend(cfg *config.ClientConfig, opts Options) (*Backend, error) {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.SessionStore == nil {
		fs, err := session.NewFileStore(cfg.SessionDir, cfg.Tab)
		if err != nil {
			return nil, err
		}
		opts.SessionStore = fs
	}
	gate, err := access.NewGate(access.DefaultRules())
	if err != nil {
		return nil, err
	}
	b := &Backend{Gate: gate, Log: opts.Logger, sessionOpts: session.Options{Logger: opts.Logger}}

	switch cfg.Backend {
	case config.BackendRemote:
		err = b.wireRemote(cfg)
	case config.BackendLocal, "":
		err = b.wireLocal(cfg, opts)
	default:
		err = fmt.Errorf("cli: backend %q no soportado", cfg.Backend)
	}
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	b.Reports = inventory.NewReportUseCase(b.Ledger, pdf.NewMarotoPDFGenerator(), xmlexport.NewMovementsExporter(), reportTitle)
	b.Sessions = session.NewManager(b.Auth, opts.SessionStore, b.sessionOpts)
	return b, nil
}

func (b *Backend) wireLocal(cfg *config.ClientConfig, opts Options) error {
	lists, err := localstore.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return err
	}
	store := localstore.NewStore(lists)
	b.closers = append(b.closers, store.Close)

	identities, err := identity.NewStore(store.Principals(), identity.BuiltinCredentials{
		AdminPassword: cfg.Builtins.AdminPassword,
		StaffPassword: cfg.Builtins.StaffPassword,
	}, identity.Options{Cost: opts.BcryptCost, Logger: opts.Logger})
	if err != nil {
		return err
	}
	if err := identities.Reload(context.Background()); err != nil {
		return err
	}
	authUC := auth.NewAuthUseCase(identities, role.NewStoreResolver(identities), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	b.Auth = authUC
	b.Ledger = inventory.NewService(store, store.Products(), store.Movements(), store.Suppliers(), opts.Logger)
	b.Users = localUsers{auth: authUC, users: usecase.NewUserUseCase(identities)}
	return nil
}

func (b *Backend) wireRemote(cfg *config.ClientConfig) error {
	policy, err := role.NewPolicy(cfg.Role, b.Log)
	if err != nil {
		return err
	}
	client := remote.NewClient(cfg.APIURL, cfg.Timeout)
	b.Auth = remote.NewAuthenticator(client, policy)
	b.Ledger = remote.NewLedger(client, b.token)
	b.Users = remote.NewUsers(client, b.token)
	return nil
}

// token lee b.Sessions en cada llamada: el shell sustituye el manager por uno en memoria.
func (b *Backend) token(ctx context.Context) (string, error) {
	s, err := b.Sessions.RequireSession(ctx)
	if err != nil {
		return "", err
	}
	return s.Token, nil
}

// UseMemorySessions reemplaza la sesión persistida por una en memoria (modo shell).
func (b *Backend) UseMemorySessions() {
	b.Sessions = session.NewManager(b.Auth, session.NewMemoryStore(), b.sessionOpts)
}

// Close libera el almacenamiento local.
func (b *Backend) Close() error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c())
	}
	b.closers = nil
	return errors.Join(errs...)
}

// localUsers UserDirectory sobre el Identity Store local.
type localUsers struct {
	auth  *auth.AuthUseCase
	users *usecase.UserUseCase
}

func (l localUsers) Register(ctx context.Context, name, credential string) (*dto.UserResponse, error) {
	return l.auth.Register(ctx, dto.RegisterRequest{Username: name, Password: credential})
}

func (l localUsers) List(ctx context.Context) ([]dto.UserResponse, error) {
	return l.users.List(ctx)
}

func (l localUsers) Promote(ctx context.Context, actorRole entity.Role, target string, newRole entity.Role) (*dto.UserResponse, error) {
	return l.users.Promote(ctx, actorRole, target, dto.PromoteRequest{Role: string(newRole)})
}
