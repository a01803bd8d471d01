package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, code, customer_name, product, quantity, unit_price, total_amount, status, priority,
		deadline, special_instructions, created_by, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o         entity.Order
		unitPrice decimal.NullDecimal
		total     decimal.NullDecimal
		status    string
		createdBy *string
	)
	err := row.Scan(
		&o.ID, &o.Code, &o.CustomerName, &o.Product, &o.Quantity, &unitPrice, &total, &status, &o.Priority,
		&o.Deadline, &o.SpecialInstructions, &createdBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.UnitPrice = decimalPtr(unitPrice)
	o.TotalAmount = decimalPtr(total)
	o.Status = entity.OrderStatus(status)
	o.CreatedBy = derefString(createdBy)
	return &o, nil
}

// Create inserta una orden.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Code, o.CustomerName, o.Product, o.Quantity, nullDecimal(o.UnitPrice), nullDecimal(o.TotalAmount),
		string(o.Status), o.Priority, o.Deadline, o.SpecialInstructions, nullString(o.CreatedBy), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return classifyWriteError("insert order", err)
	}
	return nil
}

func (r *OrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, true)
}

// Update persiste todos los campos editables.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET customer_name = $2, product = $3, quantity = $4, unit_price = $5, total_amount = $6,
			status = $7, priority = $8, deadline = $9, special_instructions = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerName, o.Product, o.Quantity, nullDecimal(o.UnitPrice), nullDecimal(o.TotalAmount),
		string(o.Status), o.Priority, o.Deadline, o.SpecialInstructions, o.UpdatedAt,
	)
	if err != nil {
		return classifyWriteError("update order", err)
	}
	return nil
}

// List lista órdenes filtradas, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
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
	if f.Customer != "" {
		add("customer_name ILIKE $%d", "%"+f.Customer+"%")
	}
	if f.Priority != "" {
		add("priority = $%d", f.Priority)
	}
	if f.CreatedFrom != nil {
		add("created_at >= $%d", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		add("created_at <= $%d", *f.CreatedTo)
	}
	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Delete elimina la orden; el historial se borra en cascada.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// AppendHistory agrega una entrada al historial de estados.
func (r *OrderRepo) AppendHistory(ctx context.Context, h *entity.OrderStatusHistory) error {
	query := `
		INSERT INTO order_status_history (id, order_id, old_status, new_status, comment, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.OrderID, string(h.OldStatus), string(h.NewStatus), h.Comment, nullString(h.ChangedBy), h.ChangedAt,
	)
	if err != nil {
		return classifyWriteError("insert order status history", err)
	}
	return nil
}

// ListHistory devuelve el historial de la orden en orden cronológico.
func (r *OrderRepo) ListHistory(ctx context.Context, orderID string) ([]*entity.OrderStatusHistory, error) {
	query := `
		SELECT id, order_id, old_status, new_status, comment, changed_by, changed_at
		FROM order_status_history WHERE order_id = $1
		ORDER BY changed_at, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order history: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderStatusHistory
	for rows.Next() {
		var (
			h         entity.OrderStatusHistory
			oldStatus string
			newStatus string
			changedBy *string
		)
		if err := rows.Scan(&h.ID, &h.OrderID, &oldStatus, &newStatus, &h.Comment, &changedBy, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan order history: %w", err)
		}
		h.OldStatus = entity.OrderStatus(oldStatus)
		h.NewStatus = entity.OrderStatus(newStatus)
		h.ChangedBy = derefString(changedBy)
		list = append(list, &h)
	}
	return list, rows.Err()
}
