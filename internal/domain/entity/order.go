package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus es la etiqueta de flujo de una orden. El conjunto es abierto:
// además de los estados conocidos se conservan valores personalizados.
type OrderStatus string

// Estados de flujo conocidos.
const (
	OrderStatusYetToProcess OrderStatus = "yet-to-process"
	OrderStatusProcessing   OrderStatus = "processing"
	OrderStatusQualityCheck OrderStatus = "quality-check"
	OrderStatusCompleted    OrderStatus = "completed"
	OrderStatusShipped      OrderStatus = "shipped"
	OrderStatusOnHold       OrderStatus = "on-hold"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

var knownOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusYetToProcess: {},
	OrderStatusProcessing:   {},
	OrderStatusQualityCheck: {},
	OrderStatusCompleted:    {},
	OrderStatusShipped:      {},
	OrderStatusOnHold:       {},
	OrderStatusCancelled:    {},
}

// IsKnown informa si el estado pertenece al flujo estándar.
// Un estado desconocido es válido (variante personalizada), solo se registra.
func (s OrderStatus) IsKnown() bool {
	_, ok := knownOrderStatuses[s]
	return ok
}

// Prioridades usuales de una orden (texto libre en almacenamiento).
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Order representa una orden de cliente.
type Order struct {
	ID                  string
	Code                string // ORD-0001
	CustomerName        string
	Product             string
	Quantity            int
	UnitPrice           *decimal.Decimal
	TotalAmount         *decimal.Decimal
	Status              OrderStatus
	Priority            string
	Deadline            time.Time
	SpecialInstructions string
	CreatedBy           string // referencia débil a User.ID (vacío = NULL)
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RecalculateTotal fija TotalAmount = Quantity × UnitPrice cuando el precio es conocido y distinto de cero.
func (o *Order) RecalculateTotal() {
	if o.UnitPrice == nil || o.UnitPrice.IsZero() {
		o.TotalAmount = nil
		return
	}
	total := o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
	o.TotalAmount = &total
}

// OrderStatusHistory registro inmutable de un cambio de estado.
type OrderStatusHistory struct {
	ID        string
	OrderID   string
	OldStatus OrderStatus
	NewStatus OrderStatus
	Comment   string
	ChangedBy string // referencia débil a User.ID (vacío = NULL)
	ChangedAt time.Time
}
