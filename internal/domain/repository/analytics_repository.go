package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// StatusCount cantidad de órdenes en un estado.
type StatusCount struct {
	Status string
	Count  int
}

// MonthCount cantidad de órdenes creadas en un mes (YYYY-MM).
type MonthCount struct {
	Month string
	Count int
}

// StockStats conteos por estado derivado de stock y valor total (stock × costo/precio).
type StockStats struct {
	Total      int
	InStock    int
	LowStock   int
	OutOfStock int
	TotalValue decimal.Decimal
}

// PurchaseOrderStats conteos de órdenes de compra.
type PurchaseOrderStats struct {
	Total      int
	Pending    int // status = ordered
	TotalValue decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para el dashboard y los catálogos.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// CountOrdersByStatus agrupa las órdenes por estado (incluye estados personalizados).
	CountOrdersByStatus(ctx context.Context) ([]StatusCount, error)
	// CountOrdersByMonth agrupa por mes de creación desde since, ordenado ascendente.
	CountOrdersByMonth(ctx context.Context, since time.Time) ([]MonthCount, error)
	// ListUpcomingDeadlines órdenes con deadline en [from, to] que no están completadas.
	ListUpcomingDeadlines(ctx context.Context, from, to time.Time) ([]*entity.Order, error)

	GetInventoryStats(ctx context.Context) (StockStats, error)
	GetMaterialStats(ctx context.Context) (StockStats, error)
	GetPurchaseOrderStats(ctx context.Context) (PurchaseOrderStats, error)

	// ListCategories categorías distintas de artículos y materias primas (sin ordenar).
	ListCategories(ctx context.Context) ([]string, error)
	// ListSuppliers proveedores distintos y no vacíos de artículos, materias primas y compras.
	ListSuppliers(ctx context.Context) ([]string, error)
}
