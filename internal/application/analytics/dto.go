package analytics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardResponse aggregates the headline numbers for a tenant
type DashboardResponse struct {
	TotalOrders   int64           `json:"total_orders"`
	TotalProducts int64           `json:"total_products"`
	TotalStock    int64           `json:"total_stock"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	LowStockItems int64           `json:"low_stock_items"`
}

// MonthlyTrendPoint is one month of order activity, oldest first
type MonthlyTrendPoint struct {
	Month      string          `json:"month"` // YYYY-MM
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TrendsResponse carries the monthly order trends
type TrendsResponse struct {
	Months []MonthlyTrendPoint `json:"months"`
}

// WarehouseUtilization is the fill level of one warehouse
type WarehouseUtilization struct {
	WarehouseID   uuid.UUID `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	Capacity      int64     `json:"capacity"`
	Stock         int64     `json:"stock"`
	Utilization   float64   `json:"utilization"` // percentage
}

// UtilizationResponse carries per-warehouse utilization figures
type UtilizationResponse struct {
	Warehouses []WarehouseUtilization `json:"warehouses"`
}
