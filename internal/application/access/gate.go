// Package access decide qué operaciones (pantallas, comandos, rutas) ve cada rol.
package access

import (
	_ "embed"
	"fmt"
	"sort"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

//go:embed model.conf
var casbinModelContent string

// OperationID identificador de una operación visible.
type OperationID string

// Operaciones conocidas.
const (
	OpDashboard       OperationID = "dashboard"
	OpProductsView    OperationID = "products.view"
	OpProductsCreate  OperationID = "products.create"
	OpStockIn         OperationID = "stock.in"
	OpStockOut        OperationID = "stock.out"
	OpReportsView     OperationID = "reports.view"
	OpSuppliersView   OperationID = "suppliers.view"
	OpSuppliersCreate OperationID = "suppliers.create"
	OpUsersManage     OperationID = "users.manage"
)

// AllOperations en orden de menú.
var AllOperations = []OperationID{
	OpDashboard, OpProductsView, OpProductsCreate, OpStockIn, OpStockOut,
	OpReportsView, OpSuppliersView, OpSuppliersCreate, OpUsersManage,
}

// alwaysGroup sujeto casbin del que heredan todos los roles.
const alwaysGroup = "always"

// Rules etiquetado de operaciones: las Always las ve cualquier rol,
// las de ByRole solo el rol exacto.
type Rules struct {
	Always []OperationID
	ByRole map[entity.Role][]OperationID
}

// DefaultRules reglas de la aplicación. Solo admin gestiona usuarios.
func DefaultRules() Rules {
	staff := []OperationID{OpProductsCreate, OpStockIn, OpStockOut, OpSuppliersCreate}
	return Rules{
		Always: []OperationID{OpDashboard, OpProductsView, OpReportsView, OpSuppliersView},
		ByRole: map[entity.Role][]OperationID{
			entity.RoleAdmin: append(append([]OperationID{}, staff...), OpUsersManage),
			entity.RoleStaff: staff,
		},
	}
}

// OperationSet conjunto de operaciones visibles.
type OperationSet map[OperationID]struct{}

// Has indica si op pertenece al conjunto.
func (s OperationSet) Has(op OperationID) bool {
	_, ok := s[op]
	return ok
}

// Sorted devuelve las operaciones en orden alfabético.
func (s OperationSet) Sorted() []OperationID {
	out := make([]OperationID, 0, len(s))
	for op := range s {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Gate evalúa las reglas con un enforcer casbin (RBAC en memoria).
type Gate struct {
	enforcer *casbin.SyncedEnforcer
	now      func() time.Time
}

// NewGate carga las reglas en el enforcer.
func NewGate(rules Rules) (*Gate, error) {
	m, err := model.NewModelFromString(casbinModelContent)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	for _, op := range rules.Always {
		if _, err := enforcer.AddPolicy(alwaysGroup, string(op)); err != nil {
			return nil, fmt.Errorf("add policy %s: %w", op, err)
		}
	}
	for _, r := range []entity.Role{entity.RoleAdmin, entity.RoleStaff, entity.RoleUser} {
		if _, err := enforcer.AddGroupingPolicy(string(r), alwaysGroup); err != nil {
			return nil, fmt.Errorf("add grouping %s: %w", r, err)
		}
		for _, op := range rules.ByRole[r] {
			if _, err := enforcer.AddPolicy(string(r), string(op)); err != nil {
				return nil, fmt.Errorf("add policy %s/%s: %w", r, op, err)
			}
		}
	}
	return &Gate{enforcer: enforcer, now: time.Now}, nil
}

// Allows indica si role puede ver/ejecutar op. Un rol desconocido no ve nada.
func (g *Gate) Allows(role entity.Role, op OperationID) bool {
	if !role.Valid() {
		return false
	}
	ok, err := g.enforcer.Enforce(string(role), string(op))
	return err == nil && ok
}

// VisibleOperations unión de las operaciones siempre visibles y las del rol.
func (g *Gate) VisibleOperations(role entity.Role) OperationSet {
	set := OperationSet{}
	for _, op := range AllOperations {
		if g.Allows(role, op) {
			set[op] = struct{}{}
		}
	}
	return set
}

// ForSession operaciones de la sesión actual; sin sesión válida, conjunto vacío.
func (g *Gate) ForSession(s *entity.Session) OperationSet {
	if !s.Valid(g.now()) {
		return OperationSet{}
	}
	return g.VisibleOperations(s.Role)
}
