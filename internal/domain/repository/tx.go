package repository

import (
	"context"
	"fmt"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// TxRepositories agrupa los repositorios atados a una misma transacción.
type TxRepositories struct {
	Identifiers    IdentifierRepository
	Users          UserRepository
	Orders         OrderRepository
	Items          InventoryItemRepository
	Materials      RawMaterialRepository
	Movements      StockMovementRepository
	PurchaseOrders PurchaseOrderRepository
	Activity       ActivityLogRepository
}

// Stocked devuelve el repositorio de stock correspondiente al tipo de entidad.
func (r TxRepositories) Stocked(t entity.StockedEntityType) (StockedRepository, error) {
	switch t {
	case entity.StockedInventoryItem:
		return r.Items, nil
	case entity.StockedRawMaterial:
		return r.Materials, nil
	default:
		return nil, fmt.Errorf("%w: tipo de entidad %q", domain.ErrInvalidInput, t)
	}
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo; si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepositories) error) error
}
