package entity

import "time"

// Supplier proveedor. TaxID (CNPJ) es único.
type Supplier struct {
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
