package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_code, kind, amount, previous_quantity, created_at, actor`

// MovementRepo libro de movimientos sobre PostgreSQL. Solo inserción.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el repositorio. Pasar pool o tx.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductCode, string(m.Kind), m.Amount, m.PreviousQuantity, m.Timestamp, m.Actor,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, m.ProductCode)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListRecent devuelve los últimos n movimientos, el más reciente primero.
func (r *MovementRepo) ListRecent(ctx context.Context, n int) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements ORDER BY seq DESC LIMIT $1`, n)
}

// ListByProduct devuelve los movimientos de un producto en orden cronológico.
func (r *MovementRepo) ListByProduct(ctx context.Context, code string) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements WHERE product_code = $1 ORDER BY seq`, code)
}

func (r *MovementRepo) list(ctx context.Context, query string, arg any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m    entity.Movement
		kind string
	)
	if err := row.Scan(&m.ID, &m.ProductCode, &kind, &m.Amount, &m.PreviousQuantity, &m.Timestamp, &m.Actor); err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	return &m, nil
}
