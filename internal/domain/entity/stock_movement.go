package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento del libro de stock.
type MovementKind string

const (
	MovementAdd    MovementKind = "add"    // entrada: suma la cantidad
	MovementRemove MovementKind = "remove" // salida: resta la cantidad
	MovementAdjust MovementKind = "adjust" // ajuste: la cantidad es el valor absoluto final
)

// StockMovement registro inmutable de un cambio de stock.
// Para MovementAdjust, Quantity guarda el valor objetivo, no un delta.
type StockMovement struct {
	ID            string
	EntityType    StockedEntityType
	EntityID      string
	Kind          MovementKind
	Quantity      decimal.Decimal
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Reason        string
	MovedBy       string // referencia débil a User.ID (vacío = NULL)
	MovedAt       time.Time
}
