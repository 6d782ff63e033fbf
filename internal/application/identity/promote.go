package identity

import (
	"context"
	"fmt"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// Promote cambia el rol de target. Solo un admin puede hacerlo y nunca sobre un predefinido.
// Las sesiones ya abiertas de target conservan el rol con el que iniciaron sesión.
func (s *Store) Promote(ctx context.Context, actorRole entity.Role, target string, newRole entity.Role) (*entity.Principal, error) {
	if actorRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if entity.IsBuiltinName(target) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProtectedPrincipal, target)
	}
	if !newRole.Valid() {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, newRole)
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	if _, ok := s.Lookup(target); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPrincipal, target)
	}
	if err := s.repo.UpdateRole(ctx, target, newRole); err != nil {
		return nil, err
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	s.log.Info().Str("target", target).Str("role", string(newRole)).Msg("rol actualizado")
	p, _ := s.Lookup(target)
	return p, nil
}
