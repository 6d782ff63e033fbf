package entity

import (
	"strings"
	"time"
)

// Nombres de los principals predefinidos (inmutables).
const (
	BuiltinAdminName = "admin"
	BuiltinStaffName = "funcionario"
)

// Principal representa una identidad que puede autenticarse (predefinida o registrada).
type Principal struct {
	Name           string    `json:"name"`
	CredentialHash string    `json:"credential_hash"` // bcrypt, nunca la contraseña en claro
	Role           Role      `json:"role"`
	BuiltIn        bool      `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsBuiltinName indica si name pertenece a un principal predefinido.
func IsBuiltinName(name string) bool {
	return name == BuiltinAdminName || name == BuiltinStaffName
}

// ResemblesBuiltinName indica si name es un predefinido salvo mayúsculas ("Admin", "FUNCIONARIO").
func ResemblesBuiltinName(name string) bool {
	return strings.EqualFold(name, BuiltinAdminName) || strings.EqualFold(name, BuiltinStaffName)
}
