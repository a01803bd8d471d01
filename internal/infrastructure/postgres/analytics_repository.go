package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard y los catálogos.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountOrdersByStatus agrupa las órdenes por estado.
func (r *AnalyticsRepo) CountOrdersByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountOrdersByStatus: %w", err)
	}
	defer rows.Close()
	var out []repository.StatusCount
	for rows.Next() {
		var sc repository.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("analytics.CountOrdersByStatus scan: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// CountOrdersByMonth agrupa por mes de creación (YYYY-MM) desde since.
func (r *AnalyticsRepo) CountOrdersByMonth(ctx context.Context, since time.Time) ([]repository.MonthCount, error) {
	const query = `
	SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*)
	FROM orders
	WHERE created_at >= $1
	GROUP BY month
	ORDER BY month`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountOrdersByMonth: %w", err)
	}
	defer rows.Close()
	var out []repository.MonthCount
	for rows.Next() {
		var mc repository.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("analytics.CountOrdersByMonth scan: %w", err)
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

// ListUpcomingDeadlines órdenes no completadas con deadline en [from, to], por deadline.
func (r *AnalyticsRepo) ListUpcomingDeadlines(ctx context.Context, from, to time.Time) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE deadline BETWEEN $1 AND $2 AND status <> $3
		ORDER BY deadline`
	rows, err := r.q.Query(ctx, query, from, to, string(entity.OrderStatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("analytics.ListUpcomingDeadlines: %w", err)
	}
	defer rows.Close()
	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("analytics.ListUpcomingDeadlines scan: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// stockStatsQuery conteos por estado derivado; valueExpr es el valor por fila.
func stockStatsQuery(table, valueExpr string) string {
	return `
	SELECT
	    COUNT(*),
	    COUNT(*) FILTER (WHERE current_stock <> 0 AND current_stock >= min_level),
	    COUNT(*) FILTER (WHERE current_stock <> 0 AND current_stock < min_level),
	    COUNT(*) FILTER (WHERE current_stock = 0),
	    COALESCE(SUM(` + valueExpr + `), 0)
	FROM ` + table
}

func (r *AnalyticsRepo) stockStats(ctx context.Context, table, valueExpr string) (repository.StockStats, error) {
	var s repository.StockStats
	err := r.q.QueryRow(ctx, stockStatsQuery(table, valueExpr)).Scan(
		&s.Total, &s.InStock, &s.LowStock, &s.OutOfStock, &s.TotalValue,
	)
	if err != nil {
		return s, fmt.Errorf("analytics.stockStats(%s): %w", table, err)
	}
	return s, nil
}

// GetInventoryStats conteos de artículos; el valor usa unit_cost cuando se conoce.
func (r *AnalyticsRepo) GetInventoryStats(ctx context.Context) (repository.StockStats, error) {
	return r.stockStats(ctx, "inventory_items", "current_stock * COALESCE(unit_cost, 0)")
}

// GetMaterialStats conteos de materias primas y valor total (stock × precio).
func (r *AnalyticsRepo) GetMaterialStats(ctx context.Context) (repository.StockStats, error) {
	return r.stockStats(ctx, "raw_materials", "current_stock * unit_price")
}

// GetPurchaseOrderStats totales de órdenes de compra.
func (r *AnalyticsRepo) GetPurchaseOrderStats(ctx context.Context) (repository.PurchaseOrderStats, error) {
	const query = `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $1), COALESCE(SUM(total_cost), 0)
	FROM purchase_orders`
	var s repository.PurchaseOrderStats
	if err := r.q.QueryRow(ctx, query, string(entity.PurchaseOrderOrdered)).Scan(&s.Total, &s.Pending, &s.TotalValue); err != nil {
		return s, fmt.Errorf("analytics.GetPurchaseOrderStats: %w", err)
	}
	return s, nil
}

func (r *AnalyticsRepo) distinct(ctx context.Context, op, query string) ([]string, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.%s: %w", op, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("analytics.%s scan: %w", op, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListCategories categorías distintas de artículos y materias primas.
func (r *AnalyticsRepo) ListCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "ListCategories", `
	SELECT category FROM inventory_items
	UNION
	SELECT category FROM raw_materials`)
}

// ListSuppliers proveedores distintos y no vacíos.
func (r *AnalyticsRepo) ListSuppliers(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "ListSuppliers", `
	SELECT supplier FROM inventory_items WHERE supplier <> ''
	UNION
	SELECT supplier FROM raw_materials WHERE supplier <> ''
	UNION
	SELECT supplier FROM purchase_orders WHERE supplier <> ''`)
}
