package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest body para POST /api/inventory.
type CreateInventoryItemRequest struct {
	Name         string           `json:"item_name" validate:"required,max=120"`
	Category     string           `json:"category" validate:"required,max=50"`
	CurrentStock decimal.Decimal  `json:"current_stock"`
	MinLevel     decimal.Decimal  `json:"min_level"`
	MaxLevel     decimal.Decimal  `json:"max_level"`
	Unit         string           `json:"unit" validate:"required,max=20"`
	Description  string           `json:"description"`
	Supplier     string           `json:"supplier" validate:"omitempty,max=120"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	Location     string           `json:"location" validate:"omitempty,max=100"`
}

// UpdateInventoryItemRequest actualización parcial; CurrentStock pasa por la ruta de ajuste directo.
type UpdateInventoryItemRequest struct {
	Name         *string          `json:"item_name" validate:"omitempty,max=120"`
	Category     *string          `json:"category" validate:"omitempty,max=50"`
	CurrentStock *decimal.Decimal `json:"current_stock"`
	Reason       string           `json:"reason"`
	MinLevel     *decimal.Decimal `json:"min_level"`
	MaxLevel     *decimal.Decimal `json:"max_level"`
	Unit         *string          `json:"unit" validate:"omitempty,max=20"`
	Description  *string          `json:"description"`
	Supplier     *string          `json:"supplier" validate:"omitempty,max=120"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	Location     *string          `json:"location" validate:"omitempty,max=100"`
}

// AdjustStockRequest body para POST /api/inventory/:id/adjust y /api/raw-materials/:id/adjust.
type AdjustStockRequest struct {
	MovementType string          `json:"movement_type" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason"`
}

// StockFilter filtros de listado de stock.
type StockFilter struct {
	Category string `query:"category"`
	Status   string `query:"status" validate:"omitempty,oneof=in-stock low-stock out-of-stock"`
}

// InventoryItemResponse salida de un artículo con su estado derivado.
type InventoryItemResponse struct {
	ID           string           `json:"id"`
	Code         string           `json:"item_code"`
	Name         string           `json:"item_name"`
	Category     string           `json:"category"`
	CurrentStock decimal.Decimal  `json:"current_stock"`
	MinLevel     decimal.Decimal  `json:"min_level"`
	MaxLevel     decimal.Decimal  `json:"max_level"`
	Unit         string           `json:"unit"`
	Status       string           `json:"status"`
	Description  string           `json:"description"`
	Supplier     string           `json:"supplier"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	Location     string           `json:"location"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// StockMovementResponse salida de un movimiento de stock.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	MovementType  string          `json:"movement_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reason        string          `json:"reason"`
	MovedBy       string          `json:"moved_by,omitempty"`
	MovedAt       time.Time       `json:"moved_at"`
}

// InventoryItemDetailResponse artículo con sus movimientos.
type InventoryItemDetailResponse struct {
	InventoryItemResponse
	StockMovements []StockMovementResponse `json:"stock_movements"`
}

// AdjustInventoryItemResponse resultado de un ajuste de stock de artículo.
type AdjustInventoryItemResponse struct {
	Item     InventoryItemResponse `json:"item"`
	Movement StockMovementResponse `json:"movement"`
}
