package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Todos se devuelven envueltos con %w y se comparan con errors.Is.
var (
	ErrInvalidInput = errors.New("entrada inválida")

	// Identidad y sesión
	ErrDuplicateName      = errors.New("el nombre de usuario ya existe")
	ErrUnknownPrincipal   = errors.New("usuario desconocido")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrSessionExpired     = errors.New("sesión expirada")
	ErrForbidden          = errors.New("acceso denegado")
	ErrProtectedPrincipal = errors.New("no se puede modificar un usuario predefinido")

	// Inventario
	ErrDuplicateCode     = errors.New("ya existe un producto con este código")
	ErrDuplicateTaxID    = errors.New("ya existe un proveedor con este CNPJ")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidAmount     = errors.New("la cantidad debe ser positiva")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Backend remoto no disponible (red, timeout, 5xx).
	ErrConnectionFailure = errors.New("no fue posible conectar con el servidor")
)
