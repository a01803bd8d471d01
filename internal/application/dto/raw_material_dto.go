package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRawMaterialRequest body para POST /api/raw-materials.
type CreateRawMaterialRequest struct {
	Name         string          `json:"material_name" validate:"required,max=120"`
	Category     string          `json:"category" validate:"required,max=50"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinLevel     decimal.Decimal `json:"min_level"`
	Unit         string          `json:"unit" validate:"required,max=20"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Supplier     string          `json:"supplier" validate:"omitempty,max=120"`
	Description  string          `json:"description"`
}

// UpdateRawMaterialRequest actualización parcial; CurrentStock pasa por la ruta de ajuste directo.
type UpdateRawMaterialRequest struct {
	Name         *string          `json:"material_name" validate:"omitempty,max=120"`
	Category     *string          `json:"category" validate:"omitempty,max=50"`
	CurrentStock *decimal.Decimal `json:"current_stock"`
	Reason       string           `json:"reason"`
	MinLevel     *decimal.Decimal `json:"min_level"`
	Unit         *string          `json:"unit" validate:"omitempty,max=20"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Supplier     *string          `json:"supplier" validate:"omitempty,max=120"`
	Description  *string          `json:"description"`
}

// RawMaterialResponse salida de una materia prima con estado y valor total.
type RawMaterialResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"material_id"`
	Name         string          `json:"material_name"`
	Category     string          `json:"category"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinLevel     decimal.Decimal `json:"min_level"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Status       string          `json:"status"`
	Supplier     string          `json:"supplier"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RawMaterialDetailResponse materia prima con sus movimientos.
type RawMaterialDetailResponse struct {
	RawMaterialResponse
	StockMovements []StockMovementResponse `json:"stock_movements"`
}

// AdjustRawMaterialResponse resultado de un ajuste de stock de materia prima.
type AdjustRawMaterialResponse struct {
	Material RawMaterialResponse   `json:"material"`
	Movement StockMovementResponse `json:"movement"`
}
