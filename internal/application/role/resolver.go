package role

import (
	"context"
	"fmt"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// Resolver resuelve el rol de un principal conocido.
type Resolver interface {
	Resolve(ctx context.Context, name string) (entity.Role, error)
}

// PrincipalSource lo que StoreResolver necesita del Identity Store.
type PrincipalSource interface {
	Reload(ctx context.Context) error
	Lookup(name string) (*entity.Principal, bool)
}

// StoreResolver resuelve contra el Identity Store, recargándolo antes de cada consulta.
type StoreResolver struct {
	source PrincipalSource
}

// NewStoreResolver construye el resolver.
func NewStoreResolver(source PrincipalSource) *StoreResolver {
	return &StoreResolver{source: source}
}

// Resolve devuelve domain.ErrUnknownPrincipal si name no existe; nunca un rol por defecto.
func (r *StoreResolver) Resolve(ctx context.Context, name string) (entity.Role, error) {
	if err := r.source.Reload(ctx); err != nil {
		return "", err
	}
	p, ok := r.source.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownPrincipal, name)
	}
	return p.Role, nil
}
