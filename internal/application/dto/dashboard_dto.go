package dto

import "github.com/shopspring/decimal"

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	ProductCount  int             `json:"product_count"`
	TotalUnits    int             `json:"total_units"`
	LowStockCount int             `json:"low_stock_count"`
	StockValue    decimal.Decimal `json:"stock_value"` // Σ quantity × price
}
