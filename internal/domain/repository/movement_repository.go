package repository

import (
	"context"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// MovementRepository puerto de persistencia del libro de movimientos (solo inserción).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// ListRecent devuelve los últimos n movimientos, el más reciente primero.
	ListRecent(ctx context.Context, n int) ([]*entity.Movement, error)
	// ListByProduct devuelve los movimientos de un producto en orden cronológico.
	ListByProduct(ctx context.Context, code string) ([]*entity.Movement, error)
}
