package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados del dashboard calculados sobre el estado en memoria.
type AnalyticsRepo struct {
	h handle
}

func (r *AnalyticsRepo) CountOrdersByStatus(_ context.Context) ([]repository.StatusCount, error) {
	counts := map[string]int{}
	r.h.read(func(s *state) {
		for _, o := range s.orders {
			counts[string(o.Status)]++
		}
	})
	out := make([]repository.StatusCount, 0, len(counts))
	for st, n := range counts {
		out = append(out, repository.StatusCount{Status: st, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (r *AnalyticsRepo) CountOrdersByMonth(_ context.Context, since time.Time) ([]repository.MonthCount, error) {
	counts := map[string]int{}
	r.h.read(func(s *state) {
		for _, o := range s.orders {
			if !o.CreatedAt.Before(since) {
				counts[o.CreatedAt.Format("2006-01")]++
			}
		}
	})
	out := make([]repository.MonthCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, repository.MonthCount{Month: m, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *AnalyticsRepo) ListUpcomingDeadlines(_ context.Context, from, to time.Time) ([]*entity.Order, error) {
	var out []*entity.Order
	r.h.read(func(s *state) {
		for _, o := range s.orders {
			if o.Status == entity.OrderStatusCompleted || o.Deadline.Before(from) || o.Deadline.After(to) {
				continue
			}
			o := o
			out = append(out, &o)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline.Before(out[j].Deadline) })
	return out, nil
}

func tally(st *repository.StockStats, status entity.StockStatus, value decimal.Decimal) {
	st.Total++
	switch status {
	case entity.StockStatusInStock:
		st.InStock++
	case entity.StockStatusLowStock:
		st.LowStock++
	case entity.StockStatusOutOfStock:
		st.OutOfStock++
	}
	st.TotalValue = st.TotalValue.Add(value)
}

func (r *AnalyticsRepo) GetInventoryStats(_ context.Context) (repository.StockStats, error) {
	var st repository.StockStats
	r.h.read(func(s *state) {
		for _, it := range s.items {
			value := decimal.Zero
			if it.UnitCost != nil {
				value = it.CurrentStock.Mul(*it.UnitCost)
			}
			tally(&st, it.Status(), value)
		}
	})
	return st, nil
}

func (r *AnalyticsRepo) GetMaterialStats(_ context.Context) (repository.StockStats, error) {
	var st repository.StockStats
	r.h.read(func(s *state) {
		for _, m := range s.materials {
			tally(&st, m.Status(), m.CurrentStock.Mul(m.UnitPrice))
		}
	})
	return st, nil
}

func (r *AnalyticsRepo) GetPurchaseOrderStats(_ context.Context) (repository.PurchaseOrderStats, error) {
	var st repository.PurchaseOrderStats
	r.h.read(func(s *state) {
		for _, po := range s.pos {
			st.Total++
			if po.Status == entity.PurchaseOrderOrdered {
				st.Pending++
			}
			st.TotalValue = st.TotalValue.Add(po.TotalCost)
		}
	})
	return st, nil
}

func (r *AnalyticsRepo) ListCategories(_ context.Context) ([]string, error) {
	set := map[string]struct{}{}
	r.h.read(func(s *state) {
		for _, it := range s.items {
			set[it.Category] = struct{}{}
		}
		for _, m := range s.materials {
			set[m.Category] = struct{}{}
		}
	})
	return keys(set), nil
}

func (r *AnalyticsRepo) ListSuppliers(_ context.Context) ([]string, error) {
	set := map[string]struct{}{}
	add := func(v string) {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	r.h.read(func(s *state) {
		for _, it := range s.items {
			add(it.Supplier)
		}
		for _, m := range s.materials {
			add(m.Supplier)
		}
		for _, po := range s.pos {
			add(po.Supplier)
		}
	})
	return keys(set), nil
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
