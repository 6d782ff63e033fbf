package entity

import "strings"

// Role nivel de acceso de un Principal.
type Role string

// Roles válidos.
const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff" // "funcionario" en la interfaz
	RoleUser  Role = "user"
)

// ParseRole acepta los nombres canónicos y los alias usados por las pantallas
// ("funcionario", "usuario"). Devuelve false si el rol no existe.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "administrador":
		return RoleAdmin, true
	case "staff", "funcionario":
		return RoleStaff, true
	case "user", "usuario":
		return RoleUser, true
	}
	return "", false
}

// Valid indica si r es uno de los roles conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleUser:
		return true
	}
	return false
}

// Label nombre visible del rol.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleStaff:
		return "FUNCIONARIO"
	case RoleUser:
		return "USUARIO"
	}
	return strings.ToUpper(string(r))
}

// Flags traduce el rol a los indicadores is_superuser / is_staff del backend.
func (r Role) Flags() (superuser, staff bool) {
	switch r {
	case RoleAdmin:
		return true, true
	case RoleStaff:
		return false, true
	}
	return false, false
}

// RoleFromFlags operación inversa de Flags: superuser tiene precedencia sobre staff.
func RoleFromFlags(superuser, staff bool) Role {
	if superuser {
		return RoleAdmin
	}
	if staff {
		return RoleStaff
	}
	return RoleUser
}
