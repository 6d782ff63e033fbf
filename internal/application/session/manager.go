// Package session mantiene la identidad autenticada de una pestaña (o proceso del CLI):
// login, logout y la verificación que precede a cada pantalla.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

// DefaultEntryPage página a la que se vuelve tras logout o sesión expirada.
const DefaultEntryPage = "index.html"

// Authenticator produce una sesión con el rol ya resuelto.
// Debe devolver domain.ErrInvalidCredentials si nombre y contraseña no coinciden.
type Authenticator interface {
	Authenticate(ctx context.Context, name, credential string) (*entity.Session, error)
}

// Store persistencia de la sesión de una pestaña.
type Store interface {
	// Load devuelve (nil, nil) si no hay sesión guardada.
	Load(ctx context.Context) (*entity.Session, error)
	Save(ctx context.Context, s *entity.Session) error
	Clear(ctx context.Context) error
}

// Options parámetros opcionales del Manager.
type Options struct {
	EntryPage string
	Logger    *logger.Logger
	Now       func() time.Time
}

// Manager ciclo de vida de la sesión.
type Manager struct {
	auth      Authenticator
	store     Store
	entryPage string
	log       *logger.Logger
	now       func() time.Time
}

// NewManager construye el manager.
func NewManager(auth Authenticator, store Store, opts Options) *Manager {
	m := &Manager{auth: auth, store: store, entryPage: opts.EntryPage, log: opts.Logger, now: opts.Now}
	if m.entryPage == "" {
		m.entryPage = DefaultEntryPage
	}
	if m.log == nil {
		m.log = logger.Nop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Login autentica y guarda la sesión. El rol queda cacheado hasta el próximo login.
func (m *Manager) Login(ctx context.Context, name, credential string) (*entity.Session, error) {
	s, err := m.auth.Authenticate(ctx, name, credential)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			m.log.Warn().Str("name", name).Msg("login rechazado")
		}
		return nil, err
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	m.log.Info().Str("name", s.Username).Str("role", string(s.Role)).Msg("login")
	return s, nil
}

// Logout borra la sesión y devuelve la página de entrada.
func (m *Manager) Logout(ctx context.Context) (string, error) {
	if err := m.store.Clear(ctx); err != nil {
		return "", err
	}
	return m.entryPage, nil
}

// RequireSession devuelve la sesión vigente o domain.ErrSessionExpired.
// Una sesión caducada o ilegible se borra del store.
func (m *Manager) RequireSession(ctx context.Context) (*entity.Session, error) {
	s, err := m.store.Load(ctx)
	if errors.Is(err, ErrUnreadable) {
		m.log.Warn().Err(err).Msg("sesión guardada ilegible, se descarta")
		if err := m.store.Clear(ctx); err != nil {
			m.log.Warn().Err(err).Msg("no se pudo borrar la sesión ilegible")
		}
		return nil, domain.ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSessionExpired
	}
	if !s.Valid(m.now()) {
		if err := m.store.Clear(ctx); err != nil {
			m.log.Warn().Err(err).Msg("no se pudo borrar la sesión caducada")
		}
		return nil, domain.ErrSessionExpired
	}
	return s, nil
}

// EntryPage página de entrada configurada.
func (m *Manager) EntryPage() string { return m.entryPage }
