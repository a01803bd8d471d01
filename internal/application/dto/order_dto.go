package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerName        string           `json:"customer_name" validate:"required,max=120"`
	Product             string           `json:"product" validate:"required,max=120"`
	Quantity            int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice           *decimal.Decimal `json:"unit_price"`
	Deadline            string           `json:"deadline" validate:"required,datetime=2006-01-02"`
	Priority            string           `json:"priority" validate:"omitempty,max=20"`
	SpecialInstructions string           `json:"special_instructions"`
}

// UpdateOrderRequest actualización parcial. Los managers solo pueden cambiar Status.
type UpdateOrderRequest struct {
	CustomerName        *string          `json:"customer_name" validate:"omitempty,max=120"`
	Product             *string          `json:"product" validate:"omitempty,max=120"`
	Quantity            *int             `json:"quantity" validate:"omitempty,gt=0"`
	UnitPrice           *decimal.Decimal `json:"unit_price"`
	TotalAmount         *decimal.Decimal `json:"total_amount"`
	Deadline            *string          `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Priority            *string          `json:"priority" validate:"omitempty,max=20"`
	SpecialInstructions *string          `json:"special_instructions"`
	Status              *string          `json:"status" validate:"omitempty,max=50"`
	Comment             string           `json:"comment"`
}

// SetOrderStatusRequest body para PATCH /api/orders/:id/status.
type SetOrderStatusRequest struct {
	Status  *string `json:"status" validate:"required,max=50"` // puntero: "" es un estado válido, la ausencia no
	Comment string `json:"comment"`
}

// OrderFilter filtros de GET /api/orders.
type OrderFilter struct {
	Status   string `query:"status"`
	Customer string `query:"customer"`
	Priority string `query:"priority"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID                  string           `json:"id"`
	Code                string           `json:"order_id"`
	CustomerName        string           `json:"customer_name"`
	Product             string           `json:"product"`
	Quantity            int              `json:"quantity"`
	UnitPrice           *decimal.Decimal `json:"unit_price"`
	TotalAmount         *decimal.Decimal `json:"total_amount"`
	Status              string           `json:"status"`
	Priority            string           `json:"priority"`
	Deadline            string           `json:"deadline"`
	SpecialInstructions string           `json:"special_instructions"`
	CreatedBy           string           `json:"created_by,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// OrderHistoryResponse entrada del historial de estados.
type OrderHistoryResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Comment   string    `json:"comment"`
	ChangedBy string    `json:"changed_by,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// OrderDetailResponse orden con su historial en orden cronológico.
type OrderDetailResponse struct {
	OrderResponse
	StatusHistory []OrderHistoryResponse `json:"status_history"`
}

// OrderStatusResponse resultado de un cambio de estado.
type OrderStatusResponse struct {
	Order   OrderResponse        `json:"order"`
	History OrderHistoryResponse `json:"history"`
}
