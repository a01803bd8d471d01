package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// StockFilter filtros de listado de entidades con stock.
type StockFilter struct {
	Category string
	Status   entity.StockStatus
}

// StockedRepository operaciones de stock comunes a artículos y materias primas.
// Usado dentro de transacciones para garantizar consistencia.
type StockedRepository interface {
	// LockStock bloquea la fila (SELECT ... FOR UPDATE) y devuelve su stock; (nil, nil) si no existe.
	LockStock(ctx context.Context, id string) (*entity.StockSnapshot, error)
	SetStock(ctx context.Context, id string, quantity decimal.Decimal, at time.Time) error
}

// InventoryItemRepository define el puerto de persistencia para artículos de inventario.
type InventoryItemRepository interface {
	StockedRepository
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	List(ctx context.Context, filter StockFilter) ([]*entity.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}

// RawMaterialRepository define el puerto de persistencia para materias primas.
type RawMaterialRepository interface {
	StockedRepository
	Create(ctx context.Context, material *entity.RawMaterial) error
	GetByID(ctx context.Context, id string) (*entity.RawMaterial, error)
	GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error)
	// GetByNameForUpdate busca por nombre exacto y bloquea la fila.
	GetByNameForUpdate(ctx context.Context, name string) (*entity.RawMaterial, error)
	Update(ctx context.Context, material *entity.RawMaterial) error
	List(ctx context.Context, filter StockFilter) ([]*entity.RawMaterial, error)
	Delete(ctx context.Context, id string) error
}
