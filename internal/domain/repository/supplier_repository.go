package repository

import (
	"context"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	// Create devuelve domain.ErrDuplicateTaxID si el CNPJ ya existe.
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByTaxID(ctx context.Context, taxID string) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
}
