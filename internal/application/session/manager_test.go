package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/controle-estoque/internal/application/auth"
	"github.com/jhoicas/controle-estoque/internal/application/identity"
	"github.com/jhoicas/controle-estoque/internal/application/role"
	"github.com/jhoicas/controle-estoque/internal/application/session"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/infrastructure/localstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	ids  *identity.Store
	auth *auth.AuthUseCase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	lists := localstore.NewStore(localstore.NewMemoryLists())
	ids, err := identity.NewStore(lists.Principals(),
		identity.BuiltinCredentials{AdminPassword: "admin", StaffPassword: "func"},
		identity.Options{Cost: bcrypt.MinCost})
	require.NoError(t, err)
	uc := auth.NewAuthUseCase(ids, role.NewStoreResolver(ids), auth.JWTConfig{
		Secret: "test-secret", ExpMinutes: 60, Issuer: "test",
	})
	return fixture{ids: ids, auth: uc}
}

// ──────────────────────────────────────────────────────────────────────────────
// Manager
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_RequireSession_Logout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := session.NewManager(f.auth, session.NewMemoryStore(), session.Options{})

	_, err := m.RequireSession(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	_, err = m.Login(ctx, "admin", "errada")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	s, err := m.Login(ctx, "funcionario", "func")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, s.Role)
	assert.NotEmpty(t, s.Token)

	got, err := m.RequireSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "funcionario", got.Username)

	page, err := m.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.DefaultEntryPage, page)

	_, err = m.RequireSession(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestRequireSession_ExpiredIsCleared(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := session.NewMemoryStore()
	clock := time.Now()
	m := session.NewManager(f.auth, store, session.Options{Now: func() time.Time { return clock }})

	_, err := m.Login(ctx, "admin", "admin")
	require.NoError(t, err)

	clock = clock.Add(2 * time.Hour)
	_, err = m.RequireSession(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	left, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, left)
}

func TestPromotion_LiveSessionKeepsCachedRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.ids.Register(ctx, "bob", "secreta123")
	require.NoError(t, err)

	bobTab := session.NewManager(f.auth, session.NewMemoryStore(), session.Options{})
	live, err := bobTab.Login(ctx, "bob", "secreta123")
	require.NoError(t, err)
	require.Equal(t, entity.RoleUser, live.Role)

	_, err = f.ids.Promote(ctx, entity.RoleAdmin, "bob", entity.RoleStaff)
	require.NoError(t, err)

	still, err := bobTab.RequireSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, still.Role, "la sesión abierta conserva el rol del login")

	again, err := bobTab.Login(ctx, "bob", "secreta123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, again.Role, "el nuevo login ve el rol promovido")
}

// ──────────────────────────────────────────────────────────────────────────────
// FileStore
// ──────────────────────────────────────────────────────────────────────────────

func TestFileStore_PerTab(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tab1, err := session.NewFileStore(dir, "tab-1")
	require.NoError(t, err)
	tab2, err := session.NewFileStore(dir, "tab-2")
	require.NoError(t, err)

	s := &entity.Session{Username: "bob", Role: entity.RoleStaff, Token: "t", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, tab1.Save(ctx, s))

	info, err := os.Stat(tab1.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	other, err := tab2.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, other, "las pestañas no comparten sesión")

	reopened, err := session.NewFileStore(dir, "tab-1")
	require.NoError(t, err)
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, entity.RoleStaff, got.Role)

	require.NoError(t, reopened.Clear(ctx))
	require.NoError(t, reopened.Clear(ctx), "borrar dos veces no falla")
	got, err = tab1.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStore_UnreadableIsExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store, err := session.NewFileStore(t.TempDir(), "tab-1")
	require.NoError(t, err)
	m := session.NewManager(f.auth, store, session.Options{})

	for _, content := range []string{"", "{\"username\":\"bob\",", "{\"username\":\"bob\",\"role\":\"root\"}"} {
		require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0600))

		_, err = store.Load(ctx)
		assert.ErrorIs(t, err, session.ErrUnreadable)

		_, err = m.RequireSession(ctx)
		assert.ErrorIs(t, err, domain.ErrSessionExpired, "contenido %q", content)
		_, err = os.Stat(store.Path())
		assert.ErrorIs(t, err, os.ErrNotExist, "el archivo ilegible se borra")
	}

	_, err = m.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	got, err := m.RequireSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store, err := session.NewFileStore(dir, "tab-1")
	require.NoError(t, err)

	for i := range 3 {
		s := &entity.Session{Username: "bob", Role: entity.RoleUser, Token: "t", ExpiresAt: time.Now().Add(time.Duration(i+1) * time.Hour)}
		require.NoError(t, store.Save(ctx, s))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(store.Path()), entries[0].Name())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_TabCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	fs, err := session.NewFileStore(dir, "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(fs.Path()))
}
