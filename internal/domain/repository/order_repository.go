package repository

import (
	"context"
	"time"

	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// OrderFilter filtros de listado. Campos vacíos no filtran.
type OrderFilter struct {
	Status      string
	Customer    string // coincidencia parcial, sin distinguir mayúsculas
	Priority    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// OrderRepository define el puerto de persistencia para órdenes y su historial.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// Delete elimina la orden y, en cascada, su historial.
	Delete(ctx context.Context, id string) error

	AppendHistory(ctx context.Context, h *entity.OrderStatusHistory) error
	// ListHistory devuelve el historial en orden cronológico.
	ListHistory(ctx context.Context, orderID string) ([]*entity.OrderStatusHistory, error)
}
