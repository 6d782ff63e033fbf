package dto

import "time"

// StockRequest body para POST /api/products/:code/stock-in y stock-out.
type StockRequest struct {
	Amount int `json:"amount"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductCode      string    `json:"product_code"`
	Kind             string    `json:"kind"`
	Amount           int       `json:"amount"`
	PreviousQuantity int       `json:"previous_quantity"`
	Timestamp        time.Time `json:"timestamp"`
	Actor            string    `json:"actor"`
}

// StockResponse resultado de una entrada o salida: producto actualizado y su movimiento.
type StockResponse struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
}

// MovementListResponse lista de movimientos, el más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
}

// CreateSupplierRequest entrada para registrar un proveedor.
type CreateSupplierRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierListResponse lista de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
}
