package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL (usable con pool o tx).
// El dueño se guarda en item_id o material_id según entity_type, para que el borrado en cascada funcione.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func ownerColumn(t entity.StockedEntityType) (string, error) {
	switch t {
	case entity.StockedInventoryItem:
		return "item_id", nil
	case entity.StockedRawMaterial:
		return "material_id", nil
	default:
		return "", fmt.Errorf("tipo de entidad de stock desconocido: %q", t)
	}
}

// Create inserta un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	col, err := ownerColumn(m.EntityType)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO stock_movements (id, entity_type, ` + col + `, movement_type, quantity, previous_stock,
			new_stock, reason, moved_by, moved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		m.ID, string(m.EntityType), m.EntityID, string(m.Kind), m.Quantity, m.PreviousStock,
		m.NewStock, m.Reason, nullString(m.MovedBy), m.MovedAt,
	)
	if err != nil {
		return classifyWriteError("insert stock movement", err)
	}
	return nil
}

// ListByEntity devuelve los movimientos de una entidad en orden cronológico.
func (r *StockMovementRepo) ListByEntity(ctx context.Context, entityType entity.StockedEntityType, entityID string) ([]*entity.StockMovement, error) {
	col, err := ownerColumn(entityType)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, movement_type, quantity, previous_stock, new_stock, reason, moved_by, moved_at
		FROM stock_movements WHERE ` + col + ` = $1
		ORDER BY moved_at, id`
	rows, err := r.q.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var (
			m       entity.StockMovement
			kind    string
			movedBy *string
		)
		if err := rows.Scan(&m.ID, &kind, &m.Quantity, &m.PreviousStock, &m.NewStock, &m.Reason, &movedBy, &m.MovedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.EntityType = entityType
		m.EntityID = entityID
		m.Kind = entity.MovementKind(kind)
		m.MovedBy = derefString(movedBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
