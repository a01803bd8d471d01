package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
type DashboardStatsResponse struct {
	Orders            OrderStatsDTO         `json:"orders"`
	Inventory         InventoryStatsDTO     `json:"inventory"`
	RawMaterials      MaterialStatsDTO      `json:"raw_materials"`
	PurchaseOrders    PurchaseOrderStatsDTO `json:"purchase_orders"`
	RecentActivities  []ActivityLogResponse `json:"recent_activities"`
	UpcomingDeadlines []OrderResponse       `json:"upcoming_deadlines"` // próximos 7 días, sin completadas
}

// OrderStatsDTO conteos de órdenes; StatusDistribution incluye estados personalizados.
type OrderStatsDTO struct {
	Total              int            `json:"total"`
	Pending            int            `json:"pending"` // yet-to-process
	Processing         int            `json:"processing"`
	Completed          int            `json:"completed"`
	StatusDistribution map[string]int `json:"status_distribution"`
}

// InventoryStatsDTO conteos de artículos por estado derivado.
type InventoryStatsDTO struct {
	Total      int `json:"total"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// MaterialStatsDTO conteos y valor de materias primas.
type MaterialStatsDTO struct {
	Total      int             `json:"total"`
	LowStock   int             `json:"low_stock"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// PurchaseOrderStatsDTO conteos y valor de órdenes de compra.
type PurchaseOrderStatsDTO struct {
	Total      int             `json:"total"`
	Pending    int             `json:"pending"` // ordered
	TotalValue decimal.Decimal `json:"total_value"`
}

// ChartResponse serie para gráficos del dashboard.
type ChartResponse struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// CategoriesResponse respuesta de GET /api/categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// SuppliersResponse respuesta de GET /api/suppliers.
type SuppliersResponse struct {
	Suppliers []string `json:"suppliers"`
}
