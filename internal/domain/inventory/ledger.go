// Package inventory contiene las reglas puras del libro de stock (servicio de dominio).
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// NextStock calcula el stock resultante de aplicar un movimiento.
// Valida antes de calcular: ningún error deja estado intermedio.
//
//	add    → actual + cantidad
//	remove → actual − cantidad (error si cantidad > actual)
//	adjust → cantidad (valor absoluto objetivo; cero vacía el stock)
func NextStock(current decimal.Decimal, kind entity.MovementKind, quantity decimal.Decimal) (decimal.Decimal, error) {
	if quantity.IsNegative() || (quantity.IsZero() && kind != entity.MovementAdjust) {
		return current, domain.ErrInvalidQuantity
	}
	switch kind {
	case entity.MovementAdd:
		return current.Add(quantity), nil
	case entity.MovementRemove:
		if quantity.GreaterThan(current) {
			return current, domain.ErrInsufficientStock
		}
		return current.Sub(quantity), nil
	case entity.MovementAdjust:
		return quantity, nil
	default:
		return current, domain.ErrInvalidMovementType
	}
}

// Replay reconstruye el stock final a partir del stock inicial y el log de movimientos
// en orden cronológico: add/remove suman o restan, adjust reinicia el valor.
func Replay(initial decimal.Decimal, movements []*entity.StockMovement) decimal.Decimal {
	stock := initial
	for _, m := range movements {
		switch m.Kind {
		case entity.MovementAdd:
			stock = stock.Add(m.Quantity)
		case entity.MovementRemove:
			stock = stock.Sub(m.Quantity)
		case entity.MovementAdjust:
			stock = m.Quantity
		}
	}
	return stock
}

// DirectAdjust valida el valor de stock fijado por la ruta de actualización directa
// e indica si cambió respecto al actual (solo entonces se registra un ajuste sintético).
func DirectAdjust(current, target decimal.Decimal) (changed bool, err error) {
	if target.IsNegative() {
		return false, domain.ErrInvalidQuantity
	}
	return !target.Equal(current), nil
}
