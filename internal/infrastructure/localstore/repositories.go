package localstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

var (
	_ repository.PrincipalRepository = (*principalRepo)(nil)
	_ repository.ProductRepository   = (*productRepo)(nil)
	_ repository.MovementRepository  = (*movementRepo)(nil)
	_ repository.SupplierRepository  = (*supplierRepo)(nil)
)

type principalRepo struct{ q querier }

func (r *principalRepo) List(ctx context.Context) ([]*entity.Principal, error) {
	var out []*entity.Principal
	err := r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Principal](ctx, tx, ListPrincipals)
		if err != nil {
			return err
		}
		out = pointers(items)
		return nil
	})
	return out, err
}

func (r *principalRepo) Create(ctx context.Context, p *entity.Principal) error {
	return r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Principal](ctx, tx, ListPrincipals)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.Name == p.Name {
				return domain.ErrDuplicateName
			}
		}
		return saveList(ctx, tx, ListPrincipals, append(items, *p))
	})
}

func (r *principalRepo) UpdateRole(ctx context.Context, name string, role entity.Role) error {
	return r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Principal](ctx, tx, ListPrincipals)
		if err != nil {
			return err
		}
		found := false
		for i := range items {
			if items[i].Name == name {
				items[i].Role = role
				found = true
			}
		}
		if !found {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPrincipal, name)
		}
		return saveList(ctx, tx, ListPrincipals, items)
	})
}

type productRepo struct{ q querier }

func (r *productRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Product](ctx, tx, ListProducts)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.Code == product.Code {
				return domain.ErrDuplicateCode
			}
		}
		return saveList(ctx, tx, ListProducts, append(items, *product))
	})
}

func (r *productRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Product](ctx, tx, ListProducts)
		if err != nil {
			return err
		}
		for i := range items {
			if items[i].Code == code {
				out = &items[i]
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de Store.Run el bloqueo lo da la propia transacción.
func (r *productRepo) GetForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return r.GetByCode(ctx, code)
}

func (r *productRepo) UpdateQuantity(ctx context.Context, code string, quantity int) error {
	return r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Product](ctx, tx, ListProducts)
		if err != nil {
			return err
		}
		for i := range items {
			if items[i].Code == code {
				items[i].Quantity = quantity
				items[i].UpdatedAt = now()
				return saveList(ctx, tx, ListProducts, items)
			}
		}
		return domain.ErrNotFound
	})
}

func (r *productRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Product](ctx, tx, ListProducts)
		if err != nil {
			return err
		}
		for i := range items {
			if filter.Code != "" && items[i].Code != filter.Code {
				continue
			}
			if filter.Category != "" && !strings.EqualFold(items[i].Category, filter.Category) {
				continue
			}
			out = append(out, &items[i])
		}
		return nil
	})
	return out, err
}

type movementRepo struct{ q querier }

func (r *movementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	return r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Movement](ctx, tx, ListMovements)
		if err != nil {
			return err
		}
		return saveList(ctx, tx, ListMovements, append(items, *movement))
	})
}

func (r *movementRepo) ListRecent(ctx context.Context, n int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Movement](ctx, tx, ListMovements)
		if err != nil {
			return err
		}
		for i := len(items) - 1; i >= 0 && len(out) < n; i-- {
			out = append(out, &items[i])
		}
		return nil
	})
	return out, err
}

func (r *movementRepo) ListByProduct(ctx context.Context, code string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Movement](ctx, tx, ListMovements)
		if err != nil {
			return err
		}
		for i := range items {
			if items[i].ProductCode == code {
				out = append(out, &items[i])
			}
		}
		return nil
	})
	return out, err
}

type supplierRepo struct{ q querier }

func (r *supplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Supplier](ctx, tx, ListSuppliers)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.TaxID == supplier.TaxID {
				return domain.ErrDuplicateTaxID
			}
		}
		return saveList(ctx, tx, ListSuppliers, append(items, *supplier))
	})
}

func (r *supplierRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Supplier](ctx, tx, ListSuppliers)
		if err != nil {
			return err
		}
		for i := range items {
			if items[i].TaxID == taxID {
				out = &items[i]
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *supplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.q.do(ctx, func(tx ListTx) error {
		items, err := loadList[entity.Supplier](ctx, tx, ListSuppliers)
		if err != nil {
			return err
		}
		out = pointers(items)
		return nil
	})
	return out, err
}

func pointers[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
