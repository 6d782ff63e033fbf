package dto

import "time"

// TokenRequest entrada para POST /api/token.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse salida con el token JWT en el campo "access" (contrato de los clientes web).
type TokenResponse struct {
	Access    string    `json:"access"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterRequest entrada para registro (POST /api/users).
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse salida de un principal (sin credencial).
type UserResponse struct {
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	IsSuperuser bool      `json:"is_superuser"`
	IsStaff     bool      `json:"is_staff"`
	BuiltIn     bool      `json:"built_in"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// PromoteRequest body de PATCH /api/users/:name.
// Acepta los flags is_superuser/is_staff o un rol explícito; Role tiene precedencia.
type PromoteRequest struct {
	IsSuperuser *bool  `json:"is_superuser,omitempty"`
	IsStaff     *bool  `json:"is_staff,omitempty"`
	Role        string `json:"role,omitempty"`
}

// OperationsResponse operaciones visibles para el llamador.
type OperationsResponse struct {
	Username   string   `json:"username"`
	Role       string   `json:"role"`
	Operations []string `json:"operations"`
}
