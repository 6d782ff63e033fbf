package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jhoicas/controle-estoque/internal/domain/entity"
)

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
)

// ErrUnreadable el archivo de sesión existe pero no se puede decodificar.
var ErrUnreadable = errors.New("sesión ilegible")

// MemoryStore la sesión vive solo mientras viva el proceso (variante de una sola página).
type MemoryStore struct {
	mu sync.Mutex
	s  *entity.Session
}

// NewMemoryStore crea un store vacío.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(context.Context) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s == nil {
		return nil, nil
	}
	cp := *m.s
	return &cp, nil
}

func (m *MemoryStore) Save(_ context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.s = &cp
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = nil
	return nil
}

// FileStore una sesión por pestaña en dir/session-<tab>.json (0600).
// Sobrevive a reinicios de la misma pestaña; pestañas distintas nunca la comparten.
type FileStore struct {
	path string
}

// NewFileStore crea el directorio si no existe. dir vacío usa ~/.estoque.
func NewFileStore(dir, tab string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("directorio home: %w", err)
		}
		dir = filepath.Join(home, ".estoque")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("crear %s: %w", dir, err)
	}
	return &FileStore{path: filepath.Join(dir, "session-"+sanitizeTab(tab)+".json")}, nil
}

// Path ruta del archivo de sesión.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(context.Context) (*entity.Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	s, err := entity.DecodeSession(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return s, nil
}

// Save escribe en un temporal del mismo directorio y lo renombra; un corte a mitad
// deja la sesión anterior intacta.
func (f *FileStore) Save(_ context.Context, s *entity.Session) error {
	data, err := s.Encode()
	if err != nil {
		return fmt.Errorf("codificar sesión: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op tras el rename

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("guardar sesión: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("guardar sesión: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("guardar sesión: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// sanitizeTab impide que el id de pestaña salga del directorio.
func sanitizeTab(tab string) string {
	if tab == "" {
		return "default"
	}
	var b strings.Builder
	for _, r := range tab {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
