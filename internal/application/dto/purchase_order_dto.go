package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	MaterialName     string          `json:"material_name" validate:"required,max=120"`
	Category         string          `json:"category" validate:"required,max=50"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit" validate:"required,max=20"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Supplier         string          `json:"supplier" validate:"required,max=120"`
	OrderDate        string          `json:"order_date" validate:"required,datetime=2006-01-02"`
	ExpectedDelivery string          `json:"expected_delivery" validate:"required,datetime=2006-01-02"`
	Notes            string          `json:"notes"`
}

// UpdatePurchaseOrderRequest actualización parcial; el total se recalcula siempre.
type UpdatePurchaseOrderRequest struct {
	MaterialName     *string          `json:"material_name" validate:"omitempty,max=120"`
	Category         *string          `json:"category" validate:"omitempty,max=50"`
	Quantity         *decimal.Decimal `json:"quantity"`
	Unit             *string          `json:"unit" validate:"omitempty,max=20"`
	UnitPrice        *decimal.Decimal `json:"unit_price"`
	Supplier         *string          `json:"supplier" validate:"omitempty,max=120"`
	OrderDate        *string          `json:"order_date" validate:"omitempty,datetime=2006-01-02"`
	ExpectedDelivery *string          `json:"expected_delivery" validate:"omitempty,datetime=2006-01-02"`
	Status           *string          `json:"status" validate:"omitempty,max=50"`
	Notes            *string          `json:"notes"`
}

// PurchaseOrderFilter filtros de GET /api/purchase-orders.
type PurchaseOrderFilter struct {
	Status   string `query:"status"`
	Supplier string `query:"supplier"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"po_id"`
	MaterialName     string          `json:"material_name"`
	Category         string          `json:"category"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	Supplier         string          `json:"supplier"`
	OrderDate        string          `json:"order_date"`
	ExpectedDelivery string          `json:"expected_delivery"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes"`
	CreatedBy        string          `json:"created_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ReceivePurchaseOrderResponse resultado de recibir una orden de compra.
type ReceivePurchaseOrderResponse struct {
	PurchaseOrder PurchaseOrderResponse `json:"purchase_order"`
	Material      RawMaterialResponse   `json:"material"`
}
