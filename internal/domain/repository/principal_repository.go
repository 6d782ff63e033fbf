package repository

import (
	"context"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// PrincipalRepository puerto de persistencia para la lista de principals dinámicos (DIP).
// Los predefinidos nunca se persisten: los siembra el Identity Store en cada recarga.
type PrincipalRepository interface {
	// List devuelve los principals persistidos en orden de inserción.
	List(ctx context.Context) ([]*entity.Principal, error)
	Create(ctx context.Context, p *entity.Principal) error
	// UpdateRole devuelve domain.ErrUnknownPrincipal si name no existe.
	UpdateRole(ctx context.Context, name string, role entity.Role) error
}
