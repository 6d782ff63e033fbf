package access_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

func newGate(t *testing.T) *access.Gate {
	t.Helper()
	g, err := access.NewGate(access.DefaultRules())
	require.NoError(t, err)
	return g
}

func TestVisibleOperations_PerRole(t *testing.T) {
	g := newGate(t)

	user := g.VisibleOperations(entity.RoleUser)
	assert.Equal(t, []access.OperationID{
		access.OpDashboard, access.OpProductsView, access.OpReportsView, access.OpSuppliersView,
	}, user.Sorted())

	staff := g.VisibleOperations(entity.RoleStaff)
	assert.True(t, staff.Has(access.OpStockIn))
	assert.True(t, staff.Has(access.OpProductsCreate))
	assert.True(t, staff.Has(access.OpDashboard))
	assert.False(t, staff.Has(access.OpUsersManage))

	admin := g.VisibleOperations(entity.RoleAdmin)
	assert.Len(t, admin, len(access.AllOperations))
	assert.True(t, admin.Has(access.OpUsersManage))
}

func TestAllows_UsersManageOnlyAdmin(t *testing.T) {
	g := newGate(t)
	assert.True(t, g.Allows(entity.RoleAdmin, access.OpUsersManage))
	assert.False(t, g.Allows(entity.RoleStaff, access.OpUsersManage))
	assert.False(t, g.Allows(entity.RoleUser, access.OpUsersManage))
	assert.False(t, g.Allows(entity.Role("ghost"), access.OpDashboard))
}

func TestForSession(t *testing.T) {
	g := newGate(t)

	assert.Empty(t, g.ForSession(nil))

	expired := &entity.Session{Username: "bob", Role: entity.RoleAdmin, ExpiresAt: time.Now().Add(-time.Minute)}
	assert.Empty(t, g.ForSession(expired))

	live := &entity.Session{Username: "bob", Role: entity.RoleStaff, ExpiresAt: time.Now().Add(time.Hour)}
	ops := g.ForSession(live)
	assert.True(t, ops.Has(access.OpStockOut))
	assert.False(t, ops.Has(access.OpUsersManage))
}

func TestCustomRules(t *testing.T) {
	g, err := access.NewGate(access.Rules{
		Always: []access.OperationID{access.OpDashboard},
		ByRole: map[entity.Role][]access.OperationID{entity.RoleUser: {access.OpReportsView}},
	})
	require.NoError(t, err)

	assert.True(t, g.Allows(entity.RoleUser, access.OpReportsView))
	assert.False(t, g.Allows(entity.RoleAdmin, access.OpReportsView), "las etiquetas son por rol exacto")
	assert.True(t, g.Allows(entity.RoleAdmin, access.OpDashboard))
}
