package entity

import "time"

// MovementKind dirección de un movimiento de stock.
type MovementKind string

// Tipos de movimiento.
const (
	MovementIn  MovementKind = "in"  // entrada
	MovementOut MovementKind = "out" // salida
)

// Movement registro inmutable de un cambio de stock. Nunca se actualiza ni se borra.
type Movement struct {
	ID               string       `json:"id"`
	ProductCode      string       `json:"product_code"`
	Kind             MovementKind `json:"kind"`
	Amount           int          `json:"amount"`            // siempre > 0
	PreviousQuantity int          `json:"previous_quantity"` // saldo antes del movimiento
	Timestamp        time.Time    `json:"timestamp"`
	Actor            string       `json:"actor"` // nombre del principal
}

// Delta variación con signo que el movimiento aplica al stock.
func (m Movement) Delta() int {
	if m.Kind == MovementOut {
		return -m.Amount
	}
	return m.Amount
}
