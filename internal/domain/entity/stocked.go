package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus estado derivado del nivel de stock.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in-stock"
	StockStatusLowStock   StockStatus = "low-stock"
	StockStatusOutOfStock StockStatus = "out-of-stock"
)

// DeriveStockStatus calcula el estado: sin stock si es cero, bajo si está bajo el mínimo.
func DeriveStockStatus(current, minLevel decimal.Decimal) StockStatus {
	switch {
	case current.IsZero():
		return StockStatusOutOfStock
	case current.LessThan(minLevel):
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// StockedEntityType identifica la colección dueña de un nivel de stock.
type StockedEntityType string

const (
	StockedInventoryItem StockedEntityType = "inventory_item"
	StockedRawMaterial   StockedEntityType = "raw_material"
)

// Valid informa si el tipo es uno de los soportados por el libro de stock.
func (t StockedEntityType) Valid() bool {
	return t == StockedInventoryItem || t == StockedRawMaterial
}

// StockSnapshot vista mínima de una entidad con stock, bloqueada dentro de una transacción.
type StockSnapshot struct {
	EntityType   StockedEntityType
	ID           string
	Code         string
	CurrentStock decimal.Decimal
	MinLevel     decimal.Decimal
}

// Status devuelve el estado derivado del snapshot.
func (s *StockSnapshot) Status() StockStatus {
	return DeriveStockStatus(s.CurrentStock, s.MinLevel)
}

// InventoryItem representa un artículo terminado o componente en bodega.
type InventoryItem struct {
	ID           string
	Code         string // ITM-0001
	Name         string
	Category     string
	CurrentStock decimal.Decimal
	MinLevel     decimal.Decimal
	MaxLevel     decimal.Decimal
	Unit         string
	Description  string
	Supplier     string
	UnitCost     *decimal.Decimal
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Status estado derivado del artículo.
func (i *InventoryItem) Status() StockStatus {
	return DeriveStockStatus(i.CurrentStock, i.MinLevel)
}

// RawMaterial representa una materia prima.
type RawMaterial struct {
	ID           string
	Code         string // MAT-0001
	Name         string
	Category     string
	CurrentStock decimal.Decimal
	MinLevel     decimal.Decimal
	Unit         string
	UnitPrice    decimal.Decimal
	Supplier     string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Status estado derivado de la materia prima.
func (m *RawMaterial) Status() StockStatus {
	return DeriveStockStatus(m.CurrentStock, m.MinLevel)
}

// TotalValue valor del stock actual (stock × precio unitario), redondeado a 2 decimales.
func (m *RawMaterial) TotalValue() decimal.Decimal {
	return m.CurrentStock.Mul(m.UnitPrice).Round(2)
}
