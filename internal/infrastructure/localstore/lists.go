// Package localstore persiste el inventario y los usuarios como listas con nombre
// (principals, products, movements, suppliers), cada una serializada en JSON.
// Hay dos motores: en memoria (tests, STORE_DRIVER=memory) y SQLite (servidor y CLI local).
package localstore

import (
	"context"
	"sync"
)

// Nombres de las listas persistidas.
const (
	ListPrincipals = "principals"
	ListProducts   = "products"
	ListMovements  = "movements"
	ListSuppliers  = "suppliers"
)

// Lists motor de almacenamiento de listas con nombre.
type Lists interface {
	Begin(ctx context.Context) (ListTx, error)
	Close() error
}

// ListTx transacción sobre las listas: lecturas consistentes y escritura atómica al confirmar.
type ListTx interface {
	// Load devuelve el payload de la lista o nil si nunca se guardó.
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, payload []byte) error
	Commit() error
	Rollback() error
}

// MemoryLists motor en memoria. Una transacción a la vez.
type MemoryLists struct {
	mu    sync.Mutex
	lists map[string][]byte
}

// NewMemoryLists crea un motor vacío.
func NewMemoryLists() *MemoryLists {
	return &MemoryLists{lists: make(map[string][]byte)}
}

// Begin bloquea el motor hasta Commit o Rollback.
func (m *MemoryLists) Begin(ctx context.Context) (ListTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	return &memoryTx{owner: m, pending: make(map[string][]byte)}, nil
}

// Close no hace nada.
func (m *MemoryLists) Close() error { return nil }

type memoryTx struct {
	owner   *MemoryLists
	pending map[string][]byte
	done    bool
}

func (t *memoryTx) Load(_ context.Context, name string) ([]byte, error) {
	if p, ok := t.pending[name]; ok {
		return p, nil
	}
	return t.owner.lists[name], nil
}

func (t *memoryTx) Save(_ context.Context, name string, payload []byte) error {
	t.pending[name] = append([]byte(nil), payload...)
	return nil
}

func (t *memoryTx) Commit() error {
	if t.done {
		return nil
	}
	for name, p := range t.pending {
		t.owner.lists[name] = p
	}
	t.finish()
	return nil
}

func (t *memoryTx) Rollback() error {
	if !t.done {
		t.finish()
	}
	return nil
}

func (t *memoryTx) finish() {
	t.done = true
	t.owner.mu.Unlock()
}
