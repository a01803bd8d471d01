package repository

import (
	"context"
	"time"

	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// PurchaseOrderFilter filtros de listado; OrderedFrom/OrderedTo acotan order_date.
type PurchaseOrderFilter struct {
	Status      string
	Supplier    string // coincidencia parcial, sin distinguir mayúsculas
	OrderedFrom *time.Time
	OrderedTo   *time.Time
}

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	List(ctx context.Context, filter PurchaseOrderFilter) ([]*entity.PurchaseOrder, error)
	Delete(ctx context.Context, id string) error
}
