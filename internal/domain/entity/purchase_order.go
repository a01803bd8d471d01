package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus estado de una orden de compra (ordered → received, sin retorno).
type PurchaseOrderStatus string

const (
	PurchaseOrderOrdered  PurchaseOrderStatus = "ordered"
	PurchaseOrderReceived PurchaseOrderStatus = "received"
)

// PurchaseOrder representa una orden de compra de materia prima a un proveedor.
type PurchaseOrder struct {
	ID               string
	Code             string // PO-0001
	MaterialName     string
	Category         string
	Quantity         decimal.Decimal
	Unit             string
	UnitPrice        decimal.Decimal
	TotalCost        decimal.Decimal
	Supplier         string
	OrderDate        time.Time
	ExpectedDelivery time.Time
	Status           PurchaseOrderStatus
	Notes            string
	CreatedBy        string // referencia débil a User.ID (vacío = NULL)
	CreatedAt        time.Time
}

// IsReceived informa si la orden ya fue recibida.
func (p *PurchaseOrder) IsReceived() bool {
	return p.Status == PurchaseOrderReceived
}

// RecalculateTotal fija TotalCost = Quantity × UnitPrice.
func (p *PurchaseOrder) RecalculateTotal() {
	p.TotalCost = p.Quantity.Mul(p.UnitPrice)
}
