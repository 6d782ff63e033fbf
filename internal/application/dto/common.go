package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Códigos de error expuestos por la API. El cliente remoto los traduce de vuelta a los errores de dominio.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeValidation         = "VALIDATION"
	CodeDuplicateName      = "DUPLICATE_NAME"
	CodeDuplicateCode      = "DUPLICATE_CODE"
	CodeDuplicateTaxID     = "DUPLICATE_TAX_ID"
	CodeUnknownPrincipal   = "UNKNOWN_PRINCIPAL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeSessionExpired     = "SESSION_EXPIRED"
	CodeForbidden          = "FORBIDDEN"
	CodeProtectedPrincipal = "PROTECTED_PRINCIPAL"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeInsufficientStock  = "INSUFFICIENT_STOCK"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeInternal           = "INTERNAL"
)

// ListRequest límite para listados acotados (movimientos recientes).
type ListRequest struct {
	Limit int `query:"limit"`
}

// DefaultLimit aplica el valor por defecto si Limit es cero o negativo.
func (r *ListRequest) DefaultLimit(def int) {
	if r.Limit <= 0 {
		r.Limit = def
	}
}
