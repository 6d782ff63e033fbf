package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold por debajo de este valor un producto necesita reposición.
const LowStockThreshold = 10

// MaxQuantity techo del saldo; la columna quantity es INTEGER de 32 bits.
const MaxQuantity = math.MaxInt32

// Product representa un producto del catálogo.
// Quantity solo cambia mediante movimientos (entrada/salida).
type Product struct {
	Code      string          `json:"code"` // único
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LowStock propiedad derivada, nunca se persiste.
func (p Product) LowStock() bool {
	return p.Quantity < LowStockThreshold
}
