package dto

import "github.com/shopspring/decimal"

// Formatos de exportación de reportes; vacío devuelve JSON.
const (
	ReportFormatPDF  = "pdf"
	ReportFormatXLSX = "xlsx"
)

// OrderReportFilter query de GET /api/reports/orders. Fechas sobre created_at, ambas inclusivas.
type OrderReportFilter struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status    string `query:"status"`
	Format    string `query:"format" validate:"omitempty,oneof=json pdf xlsx"`
}

// OrderReportSummary totales del reporte de órdenes.
type OrderReportSummary struct {
	TotalOrders   int             `json:"total_orders"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// OrderReportResponse reporte de órdenes.
type OrderReportResponse struct {
	Orders  []OrderResponse    `json:"orders"`
	Summary OrderReportSummary `json:"summary"`
}

// InventoryReportFilter query de GET /api/reports/inventory.
type InventoryReportFilter struct {
	Category string `query:"category"`
	Status   string `query:"status" validate:"omitempty,oneof=in-stock low-stock out-of-stock"`
	Format   string `query:"format" validate:"omitempty,oneof=json pdf xlsx"`
}

// InventoryReportSummary totales; el valor solo cuenta artículos con costo conocido.
type InventoryReportSummary struct {
	TotalItems int             `json:"total_items"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// InventoryReportResponse reporte de inventario.
type InventoryReportResponse struct {
	Items   []InventoryItemResponse `json:"items"`
	Summary InventoryReportSummary  `json:"summary"`
}

// PurchaseOrderReportFilter query de GET /api/reports/purchase-orders. Fechas sobre order_date.
type PurchaseOrderReportFilter struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status    string `query:"status"`
	Supplier  string `query:"supplier"`
	Format    string `query:"format" validate:"omitempty,oneof=json pdf xlsx"`
}

// PurchaseOrderReportSummary totales del reporte de compras.
type PurchaseOrderReportSummary struct {
	TotalPurchaseOrders int             `json:"total_purchase_orders"`
	TotalCost           decimal.Decimal `json:"total_cost"`
}

// PurchaseOrderReportResponse reporte de órdenes de compra.
type PurchaseOrderReportResponse struct {
	PurchaseOrders []PurchaseOrderResponse    `json:"purchase_orders"`
	Summary        PurchaseOrderReportSummary `json:"summary"`
}
