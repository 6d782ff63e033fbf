package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

var _ repository.PrincipalRepository = (*PrincipalRepo)(nil)

// PrincipalRepo principals registrados, persistidos en PostgreSQL.
type PrincipalRepo struct {
	q Querier
}

// NewPrincipalRepository construye el repositorio.
func NewPrincipalRepository(q Querier) *PrincipalRepo {
	return &PrincipalRepo{q: q}
}

// List devuelve los principals en orden de inserción.
func (r *PrincipalRepo) List(ctx context.Context) ([]*entity.Principal, error) {
	rows, err := r.q.Query(ctx, `SELECT name, credential_hash, role, created_at FROM principals ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list principals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Principal
	for rows.Next() {
		var (
			p    entity.Principal
			role string
		)
		if err := rows.Scan(&p.Name, &p.CredentialHash, &role, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan principal: %w", err)
		}
		p.Role = entity.Role(role)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Create inserta un principal.
func (r *PrincipalRepo) Create(ctx context.Context, p *entity.Principal) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO principals (name, credential_hash, role, created_at) VALUES ($1, $2, $3, $4)`,
		p.Name, p.CredentialHash, string(p.Role), p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert principal: %w", err)
	}
	return nil
}

// UpdateRole cambia el rol de un principal persistido.
func (r *PrincipalRepo) UpdateRole(ctx context.Context, name string, role entity.Role) error {
	tag, err := r.q.Exec(ctx, `UPDATE principals SET role = $2 WHERE name = $1`, name, string(role))
	if err != nil {
		return fmt.Errorf("update principal role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnknownPrincipal
	}
	return nil
}
