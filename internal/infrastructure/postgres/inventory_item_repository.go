package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, code, name, category, current_stock, min_level, max_level, unit, description,
		supplier, unit_cost, location, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var (
		it       entity.InventoryItem
		unitCost decimal.NullDecimal
	)
	err := row.Scan(
		&it.ID, &it.Code, &it.Name, &it.Category, &it.CurrentStock, &it.MinLevel, &it.MaxLevel, &it.Unit,
		&it.Description, &it.Supplier, &unitCost, &it.Location, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.UnitCost = decimalPtr(unitCost)
	return &it, nil
}

// stockStatusCondition traduce el estado derivado a una condición SQL sobre current_stock y min_level.
func stockStatusCondition(status entity.StockStatus) (string, error) {
	switch status {
	case entity.StockStatusOutOfStock:
		return "current_stock = 0", nil
	case entity.StockStatusLowStock:
		return "current_stock <> 0 AND current_stock < min_level", nil
	case entity.StockStatusInStock:
		return "current_stock <> 0 AND current_stock >= min_level", nil
	default:
		return "", fmt.Errorf("estado de stock desconocido: %q", status)
	}
}

// stockFilterWhere arma el WHERE común de listados de artículos y materias primas.
func stockFilterWhere(f repository.StockFilter) (string, []any, error) {
	var (
		where string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = " WHERE category = $1"
	}
	if f.Status != "" {
		cond, err := stockStatusCondition(f.Status)
		if err != nil {
			return "", nil, err
		}
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	return where, args, nil
}

// Create inserta un artículo.
func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Code, it.Name, it.Category, it.CurrentStock, it.MinLevel, it.MaxLevel, it.Unit,
		it.Description, it.Supplier, nullDecimal(it.UnitCost), it.Location, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return classifyWriteError("insert inventory item", err)
	}
	return nil
}

func (r *InventoryItemRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// GetByID obtiene un artículo por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el artículo y bloquea la fila.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.get(ctx, id, true)
}

// LockStock bloquea la fila del artículo y devuelve su stock.
func (r *InventoryItemRepo) LockStock(ctx context.Context, id string) (*entity.StockSnapshot, error) {
	query := `SELECT id, code, current_stock, min_level FROM inventory_items WHERE id = $1 FOR UPDATE`
	s := entity.StockSnapshot{EntityType: entity.StockedInventoryItem}
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Code, &s.CurrentStock, &s.MinLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock inventory item stock: %w", err)
	}
	return &s, nil
}

// SetStock fija el stock actual del artículo.
func (r *InventoryItemRepo) SetStock(ctx context.Context, id string, quantity decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE inventory_items SET current_stock = $2, updated_at = $3 WHERE id = $1`, id, quantity, at)
	if err != nil {
		return classifyWriteError("set inventory item stock", err)
	}
	return nil
}

// Update persiste los campos editables (incluido el stock).
func (r *InventoryItemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, category = $3, current_stock = $4, min_level = $5, max_level = $6,
			unit = $7, description = $8, supplier = $9, unit_cost = $10, location = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Category, it.CurrentStock, it.MinLevel, it.MaxLevel,
		it.Unit, it.Description, it.Supplier, nullDecimal(it.UnitCost), it.Location, it.UpdatedAt,
	)
	if err != nil {
		return classifyWriteError("update inventory item", err)
	}
	return nil
}

// List lista artículos por categoría y estado derivado, ordenados por código.
func (r *InventoryItemRepo) List(ctx context.Context, f repository.StockFilter) ([]*entity.InventoryItem, error) {
	where, args, err := stockFilterWhere(f)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items`+where+` ORDER BY code`, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Delete elimina el artículo; sus movimientos se borran en cascada.
func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}
