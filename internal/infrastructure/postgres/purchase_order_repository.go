package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, code, material_name, category, quantity, unit, unit_price, total_cost, supplier,
		order_date, expected_delivery, status, notes, created_by, created_at`

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var (
		po        entity.PurchaseOrder
		status    string
		createdBy *string
	)
	err := row.Scan(
		&po.ID, &po.Code, &po.MaterialName, &po.Category, &po.Quantity, &po.Unit, &po.UnitPrice, &po.TotalCost, &po.Supplier,
		&po.OrderDate, &po.ExpectedDelivery, &status, &po.Notes, &createdBy, &po.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	po.Status = entity.PurchaseOrderStatus(status)
	po.CreatedBy = derefString(createdBy)
	return &po, nil
}

// Create inserta una orden de compra.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.Code, po.MaterialName, po.Category, po.Quantity, po.Unit, po.UnitPrice, po.TotalCost, po.Supplier,
		po.OrderDate, po.ExpectedDelivery, string(po.Status), po.Notes, nullString(po.CreatedBy), po.CreatedAt,
	)
	if err != nil {
		return classifyWriteError("insert purchase order", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return po, nil
}

// GetByID obtiene una orden de compra por ID.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene la orden de compra y bloquea la fila.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, true)
}

// Update persiste todos los campos editables.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET material_name = $2, category = $3, quantity = $4, unit = $5, unit_price = $6,
			total_cost = $7, supplier = $8, order_date = $9, expected_delivery = $10, status = $11, notes = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.MaterialName, po.Category, po.Quantity, po.Unit, po.UnitPrice,
		po.TotalCost, po.Supplier, po.OrderDate, po.ExpectedDelivery, string(po.Status), po.Notes,
	)
	if err != nil {
		return classifyWriteError("update purchase order", err)
	}
	return nil
}

// List lista órdenes de compra filtradas, más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Supplier != "" {
		add("supplier ILIKE $%d", "%"+f.Supplier+"%")
	}
	if f.OrderedFrom != nil {
		add("order_date >= $%d", *f.OrderedFrom)
	}
	if f.OrderedTo != nil {
		add("order_date <= $%d", *f.OrderedTo)
	}
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

// Delete elimina una orden de compra.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}
