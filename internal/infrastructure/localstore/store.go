package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

var now = func() time.Time { return time.Now().UTC() }

// Store serializa el acceso a las listas: cada operación es un read-modify-write
// dentro de una transacción del motor.
type Store struct {
	lists Lists
	mu    sync.Mutex
}

// NewStore envuelve un motor de listas.
func NewStore(lists Lists) *Store {
	return &Store{lists: lists}
}

// Close cierra el motor subyacente.
func (s *Store) Close() error {
	return s.lists.Close()
}

// Principals repositorio de principals fuera de transacción.
func (s *Store) Principals() repository.PrincipalRepository { return &principalRepo{q: s.auto()} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return &productRepo{q: s.auto()} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{q: s.auto()} }

// Suppliers repositorio de proveedores fuera de transacción.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{q: s.auto()} }

// Run ejecuta fn con repos atados a una única transacción y confirma si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	return s.inTx(ctx, func(tx ListTx) error {
		q := bound{tx: tx}
		return fn(&productRepo{q: q}, &movementRepo{q: q})
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx ListTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.lists.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) auto() querier { return autoTx{store: s} }

// querier da acceso a una transacción: la propia (bound) o una nueva por llamada (autoTx).
type querier interface {
	do(ctx context.Context, fn func(tx ListTx) error) error
}

type autoTx struct{ store *Store }

func (a autoTx) do(ctx context.Context, fn func(tx ListTx) error) error {
	return a.store.inTx(ctx, fn)
}

type bound struct{ tx ListTx }

func (b bound) do(_ context.Context, fn func(tx ListTx) error) error {
	return fn(b.tx)
}

func loadList[T any](ctx context.Context, tx ListTx, name string) ([]T, error) {
	payload, err := tx.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	var items []T
	if len(payload) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decodificar lista %s: %w", name, err)
	}
	return items, nil
}

func saveList[T any](ctx context.Context, tx ListTx, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("codificar lista %s: %w", name, err)
	}
	return tx.Save(ctx, name, payload)
}
