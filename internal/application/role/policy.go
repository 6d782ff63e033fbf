// Package role deriva el rol de un principal: desde el Identity Store para identidades
// locales y mediante una Policy para identidades que solo existen en el backend remoto.
package role

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/pkg/config"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

// Profile datos del usuario informados por el backend remoto (GET /users/me).
type Profile struct {
	Superuser bool `json:"is_superuser"`
	Staff     bool `json:"is_staff"`
}

// Policy resuelve el rol de una identidad remota. Función pura.
// Precedencia: lista de administradores, flags remotos, palabras clave (si aplica), user.
type Policy interface {
	Resolve(name string, profile Profile) entity.Role
}

// normalize un Caser no se comparte entre goroutines.
func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// ExactPolicy solo concede admin por pertenencia byte a byte a la lista (solo se recortan espacios).
// "Admin" no coincide con "admin": los nombres de usuario distinguen mayúsculas.
type ExactPolicy struct {
	allow map[string]struct{}
}

// NewExactPolicy construye la política con la lista de administradores.
func NewExactPolicy(adminAllowList []string) *ExactPolicy {
	p := &ExactPolicy{allow: make(map[string]struct{}, len(adminAllowList))}
	for _, name := range adminAllowList {
		if n := strings.TrimSpace(name); n != "" {
			p.allow[n] = struct{}{}
		}
	}
	return p
}

// Resolve implementa Policy.
func (p *ExactPolicy) Resolve(name string, profile Profile) entity.Role {
	if _, ok := p.allow[strings.TrimSpace(name)]; ok {
		return entity.RoleAdmin
	}
	return entity.RoleFromFlags(profile.Superuser, profile.Staff)
}

// HeuristicPolicy política heredada: coincidencia por subcadena con la lista y con
// palabras clave administrativas. "badadmin" resulta admin; solo usar por compatibilidad.
type HeuristicPolicy struct {
	allow    []string
	keywords []string
}

// NewHeuristicPolicy construye la política heredada.
func NewHeuristicPolicy(adminAllowList, keywords []string) *HeuristicPolicy {
	p := &HeuristicPolicy{}
	for _, s := range adminAllowList {
		if n := normalize(s); n != "" {
			p.allow = append(p.allow, n)
		}
	}
	for _, s := range keywords {
		if n := normalize(s); n != "" {
			p.keywords = append(p.keywords, n)
		}
	}
	return p
}

// Resolve implementa Policy.
func (p *HeuristicPolicy) Resolve(name string, profile Profile) entity.Role {
	n := normalize(name)
	if containsAny(n, p.allow) {
		return entity.RoleAdmin
	}
	if r := entity.RoleFromFlags(profile.Superuser, profile.Staff); r != entity.RoleUser {
		return r
	}
	if containsAny(n, p.keywords) {
		return entity.RoleAdmin
	}
	return entity.RoleUser
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// NewPolicy elige la política según ROLE_POLICY.
func NewPolicy(cfg config.RoleConfig, log *logger.Logger) (Policy, error) {
	switch cfg.Policy {
	case "", config.RolePolicyExact:
		return NewExactPolicy(cfg.AdminAllowList), nil
	case config.RolePolicyHeuristic:
		if log != nil {
			log.Warn().Msg("ROLE_POLICY=heuristic: nombres que contienen términos administrativos reciben rol admin")
		}
		return NewHeuristicPolicy(cfg.AdminAllowList, cfg.AdminKeywords), nil
	}
	return nil, fmt.Errorf("role: política %q no soportada", cfg.Policy)
}
