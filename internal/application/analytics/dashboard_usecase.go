// Package analytics contiene los casos de uso del dashboard de operación y los catálogos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/factory-api/internal/application/activity"
	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/orders"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

const (
	dashboardRecentActivities = 10 // entradas recientes en el dashboard
	deadlineWindow            = 7 * 24 * time.Hour
	monthlyChartWindow        = 365 * 24 * time.Hour
)

// DashboardUseCase genera los indicadores del dashboard.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y el log de actividad.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	activityRepo  repository.ActivityLogRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, activityRepo repository.ActivityLogRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, activityRepo: activityRepo, now: time.Now}
}

// GetStats construye el DashboardStatsResponse.
//
// Seis consultas en paralelo:
//  1. CountOrdersByStatus     → Orders
//  2. GetInventoryStats       → Inventory
//  3. GetMaterialStats        → RawMaterials
//  4. GetPurchaseOrderStats   → PurchaseOrders
//  5. ActivityLog.List(10)    → RecentActivities
//  6. ListUpcomingDeadlines   → UpcomingDeadlines (hoy … hoy+7 días)
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type statusResult struct {
		counts []repository.StatusCount
		err    error
	}
	type stockResult struct {
		stats repository.StockStats
		err   error
	}
	type poResult struct {
		stats repository.PurchaseOrderStats
		err   error
	}
	type activityResult struct {
		entries []*entity.ActivityLogEntry
		err     error
	}
	type deadlineResult struct {
		orders []*entity.Order
		err    error
	}

	statusCh := make(chan statusResult, 1)
	itemsCh := make(chan stockResult, 1)
	materialsCh := make(chan stockResult, 1)
	posCh := make(chan poResult, 1)
	activityCh := make(chan activityResult, 1)
	deadlinesCh := make(chan deadlineResult, 1)

	go func() {
		counts, err := uc.analyticsRepo.CountOrdersByStatus(ctx)
		statusCh <- statusResult{counts, err}
	}()
	go func() {
		st, err := uc.analyticsRepo.GetInventoryStats(ctx)
		itemsCh <- stockResult{st, err}
	}()
	go func() {
		st, err := uc.analyticsRepo.GetMaterialStats(ctx)
		materialsCh <- stockResult{st, err}
	}()
	go func() {
		st, err := uc.analyticsRepo.GetPurchaseOrderStats(ctx)
		posCh <- poResult{st, err}
	}()
	go func() {
		entries, _, err := uc.activityRepo.List(ctx, repository.ActivityLogFilter{Limit: dashboardRecentActivities})
		activityCh <- activityResult{entries, err}
	}()
	go func() {
		list, err := uc.analyticsRepo.ListUpcomingDeadlines(ctx, today, today.Add(deadlineWindow))
		deadlinesCh <- deadlineResult{list, err}
	}()

	status := <-statusCh
	items := <-itemsCh
	materials := <-materialsCh
	pos := <-posCh
	recent := <-activityCh
	deadlines := <-deadlinesCh

	switch {
	case status.err != nil:
		return nil, fmt.Errorf("dashboard: órdenes por estado: %w", status.err)
	case items.err != nil:
		return nil, fmt.Errorf("dashboard: inventario: %w", items.err)
	case materials.err != nil:
		return nil, fmt.Errorf("dashboard: materias primas: %w", materials.err)
	case pos.err != nil:
		return nil, fmt.Errorf("dashboard: órdenes de compra: %w", pos.err)
	case recent.err != nil:
		return nil, fmt.Errorf("dashboard: actividad reciente: %w", recent.err)
	case deadlines.err != nil:
		return nil, fmt.Errorf("dashboard: vencimientos: %w", deadlines.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out := &dto.DashboardStatsResponse{
		Orders: orderStats(status.counts),
		Inventory: dto.InventoryStatsDTO{
			Total:      items.stats.Total,
			LowStock:   items.stats.LowStock,
			OutOfStock: items.stats.OutOfStock,
		},
		RawMaterials: dto.MaterialStatsDTO{
			Total:      materials.stats.Total,
			LowStock:   materials.stats.LowStock,
			TotalValue: materials.stats.TotalValue.Round(2),
		},
		PurchaseOrders: dto.PurchaseOrderStatsDTO{
			Total:      pos.stats.Total,
			Pending:    pos.stats.Pending,
			TotalValue: pos.stats.TotalValue.Round(2),
		},
		RecentActivities:  make([]dto.ActivityLogResponse, 0, len(recent.entries)),
		UpcomingDeadlines: make([]dto.OrderResponse, 0, len(deadlines.orders)),
	}
	for _, e := range recent.entries {
		out.RecentActivities = append(out.RecentActivities, activity.ToActivityResponse(e))
	}
	for _, o := range deadlines.orders {
		out.UpcomingDeadlines = append(out.UpcomingDeadlines, orders.ToOrderResponse(o))
	}
	return out, nil
}

func orderStats(counts []repository.StatusCount) dto.OrderStatsDTO {
	out := dto.OrderStatsDTO{StatusDistribution: make(map[string]int, len(counts))}
	for _, c := range counts {
		out.Total += c.Count
		out.StatusDistribution[c.Status] = c.Count
		switch entity.OrderStatus(c.Status) {
		case entity.OrderStatusYetToProcess:
			out.Pending = c.Count
		case entity.OrderStatusProcessing:
			out.Processing = c.Count
		case entity.OrderStatusCompleted:
			out.Completed = c.Count
		}
	}
	return out
}

// OrdersByStatusChart distribución de órdenes por estado.
func (uc *DashboardUseCase) OrdersByStatusChart(ctx context.Context) (*dto.ChartResponse, error) {
	counts, err := uc.analyticsRepo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ChartResponse{Labels: make([]string, 0, len(counts)), Data: make([]int, 0, len(counts))}
	for _, c := range counts {
		out.Labels = append(out.Labels, c.Status)
		out.Data = append(out.Data, c.Count)
	}
	return out, nil
}

// InventoryStatusChart artículos por estado derivado, siempre con los tres buckets.
func (uc *DashboardUseCase) InventoryStatusChart(ctx context.Context) (*dto.ChartResponse, error) {
	st, err := uc.analyticsRepo.GetInventoryStats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ChartResponse{
		Labels: []string{
			string(entity.StockStatusInStock),
			string(entity.StockStatusLowStock),
			string(entity.StockStatusOutOfStock),
		},
		Data: []int{st.InStock, st.LowStock, st.OutOfStock},
	}, nil
}

// MonthlyOrdersChart órdenes creadas por mes (YYYY-MM) en los últimos 12 meses.
func (uc *DashboardUseCase) MonthlyOrdersChart(ctx context.Context) (*dto.ChartResponse, error) {
	months, err := uc.analyticsRepo.CountOrdersByMonth(ctx, uc.now().Add(-monthlyChartWindow))
	if err != nil {
		return nil, err
	}
	out := &dto.ChartResponse{Labels: make([]string, 0, len(months)), Data: make([]int, 0, len(months))}
	for _, m := range months {
		out.Labels = append(out.Labels, m.Month)
		out.Data = append(out.Data, m.Count)
	}
	return out, nil
}
