package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/controle-estoque/internal/application/dto"
	"github.com/jhoicas/controle-estoque/internal/application/identity"
	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// UserUseCase gestión de principals: listado, perfil y promoción.
type UserUseCase struct {
	identities *identity.Store
}

// NewUserUseCase construye el caso de uso con el Identity Store.
func NewUserUseCase(identities *identity.Store) *UserUseCase {
	return &UserUseCase{identities: identities}
}

// List devuelve todos los principals tras recargar.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	if err := uc.identities.Reload(ctx); err != nil {
		return nil, err
	}
	principals := uc.identities.List()
	out := make([]dto.UserResponse, 0, len(principals))
	for _, p := range principals {
		out = append(out, dto.FromPrincipal(p))
	}
	return out, nil
}

// Me perfil del principal name con su rol actual en el store
// (puede diferir del rol cacheado en su sesión).
func (uc *UserUseCase) Me(ctx context.Context, name string) (*dto.UserResponse, error) {
	if err := uc.identities.Reload(ctx); err != nil {
		return nil, err
	}
	p, ok := uc.identities.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPrincipal, name)
	}
	out := dto.FromPrincipal(p)
	return &out, nil
}

// Promote cambia el rol de target según el body de PATCH /users/:name.
func (uc *UserUseCase) Promote(ctx context.Context, actorRole entity.Role, target string, in dto.PromoteRequest) (*dto.UserResponse, error) {
	if actorRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	newRole, ok := in.TargetRole()
	if !ok {
		return nil, fmt.Errorf("%w: rol requerido", domain.ErrInvalidInput)
	}
	p, err := uc.identities.Promote(ctx, actorRole, target, newRole)
	if err != nil {
		return nil, err
	}
	out := dto.FromPrincipal(p)
	return &out, nil
}
