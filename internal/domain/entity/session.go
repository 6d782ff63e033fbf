package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// Session identidad autenticada de una pestaña: usuario, rol cacheado en el login y token.
// El rol NO se recalcula hasta el próximo login.
type Session struct {
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid indica si la sesión existe y no expiró en now.
// ExpiresAt cero significa sin expiración (variante en memoria).
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.Username == "" || !s.Role.Valid() {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// Encode serializa la sesión para su persistencia.
func (s *Session) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSession deserializa una sesión persistida y valida su rol.
func DecodeSession(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decodificar sesión: %w", err)
	}
	if !s.Role.Valid() {
		return nil, fmt.Errorf("decodificar sesión: rol %q inválido", s.Role)
	}
	return &s, nil
}
