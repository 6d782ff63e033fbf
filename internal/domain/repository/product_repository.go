package repository

import (
	"context"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// ProductFilter criterios de consulta del catálogo. Campos vacíos no filtran.
type ProductFilter struct {
	Code     string
	Category string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create devuelve domain.ErrDuplicateCode si el código ya existe.
	Create(ctx context.Context, product *entity.Product) error
	// GetByCode devuelve (nil, nil) si no existe.
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate como GetByCode, bloqueando la fila dentro de la transacción si el motor lo permite.
	GetForUpdate(ctx context.Context, code string) (*entity.Product, error)
	UpdateQuantity(ctx context.Context, code string, quantity int) error
	// List devuelve los productos en orden de catálogo (inserción).
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
