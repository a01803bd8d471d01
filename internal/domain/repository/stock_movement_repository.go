package repository

import (
	"context"

	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
// Los movimientos son inmutables: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByEntity devuelve los movimientos de una entidad en orden cronológico.
	ListByEntity(ctx context.Context, entityType entity.StockedEntityType, entityID string) ([]*entity.StockMovement, error)
}
