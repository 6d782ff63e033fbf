// Package identity mantiene el conjunto de principals: los dos predefinidos más los
// registrados, reconstruido desde la persistencia antes de cada decisión de acceso.
package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/controle-estoque/internal/domain"
	"github.com/jhoicas/controle-estoque/internal/domain/entity"
	"github.com/jhoicas/controle-estoque/internal/domain/repository"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

// MinCredentialLength longitud mínima de la contraseña en el registro.
const MinCredentialLength = 6

// BuiltinCredentials contraseñas de los principals predefinidos.
type BuiltinCredentials struct {
	AdminPassword string
	StaffPassword string
}

// Options parámetros opcionales del Store.
type Options struct {
	Cost   int // coste bcrypt; 0 = bcrypt.DefaultCost
	Logger *logger.Logger
}

// Store Identity Store. Seguro para uso concurrente.
type Store struct {
	repo     repository.PrincipalRepository
	builtins []entity.Principal
	cost     int
	log      *logger.Logger

	mu         sync.RWMutex
	principals map[string]*entity.Principal
	order      []string
}

// NewStore construye el store y siembra los predefinidos (sin tocar la persistencia).
func NewStore(repo repository.PrincipalRepository, creds BuiltinCredentials, opts Options) (*Store, error) {
	cost := opts.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{repo: repo, cost: cost, log: log}

	seed := []struct {
		name, password string
		role           entity.Role
	}{
		{entity.BuiltinAdminName, creds.AdminPassword, entity.RoleAdmin},
		{entity.BuiltinStaffName, creds.StaffPassword, entity.RoleStaff},
	}
	for _, b := range seed {
		if b.password == "" {
			return nil, fmt.Errorf("identity: contraseña vacía para %s", b.name)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(b.password), cost)
		if err != nil {
			return nil, fmt.Errorf("identity: hash de %s: %w", b.name, err)
		}
		s.builtins = append(s.builtins, entity.Principal{
			Name:           b.name,
			CredentialHash: string(hash),
			Role:           b.role,
			BuiltIn:        true,
		})
	}
	s.reset()
	return s, nil
}

// reset deja solo los predefinidos. Requiere mu tomado (o construcción).
func (s *Store) reset() {
	s.principals = make(map[string]*entity.Principal, len(s.builtins))
	s.order = s.order[:0]
	for i := range s.builtins {
		b := s.builtins[i]
		s.principals[b.Name] = &b
		s.order = append(s.order, b.Name)
	}
}

// Reload reconstruye el conjunto: predefinidos primero y luego la lista persistida en orden.
// Entre entradas dinámicas con el mismo nombre gana la última; las que usan un nombre
// predefinido se ignoran.
func (s *Store) Reload(ctx context.Context) error {
	persisted, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("recargar principals: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	for _, p := range persisted {
		if p == nil || p.Name == "" {
			continue
		}
		if entity.IsBuiltinName(p.Name) {
			s.log.Warn().Str("name", p.Name).Msg("entrada persistida con nombre predefinido ignorada")
			continue
		}
		cp := *p
		cp.BuiltIn = false
		if !cp.Role.Valid() {
			cp.Role = entity.RoleUser
		}
		if _, exists := s.principals[cp.Name]; !exists {
			s.order = append(s.order, cp.Name)
		}
		s.principals[cp.Name] = &cp
	}
	return nil
}

// Register crea un principal con rol user. Es la única vía de alta.
func (s *Store) Register(ctx context.Context, name, credential string) (*entity.Principal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre de usuario es obligatorio", domain.ErrInvalidInput)
	}
	if len(credential) < MinCredentialLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinCredentialLength)
	}
	if entity.ResemblesBuiltinName(name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	if _, ok := s.Lookup(name); ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), s.cost)
	if err != nil {
		return nil, err
	}
	p := &entity.Principal{
		Name:           name,
		CredentialHash: string(hash),
		Role:           entity.RoleUser,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	s.log.Info().Str("name", name).Msg("principal registrado")
	out := *p
	return &out, nil
}

// Authenticate recarga y verifica nombre y contraseña.
func (s *Store) Authenticate(ctx context.Context, name, credential string) (*entity.Principal, error) {
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	p, ok := s.Lookup(name)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.CredentialHash), []byte(credential)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return p, nil
}

// Lookup busca en el conjunto ya reconstruido. Devuelve una copia.
func (s *Store) Lookup(name string) (*entity.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.principals[name]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

// List devuelve copias de todos los principals: predefinidos primero, luego en orden de alta.
func (s *Store) List() []*entity.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Principal, 0, len(s.order))
	for _, name := range s.order {
		cp := *s.principals[name]
		out = append(out, &cp)
	}
	return out
}
