package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// OrderRepo órdenes e historial en memoria.
type OrderRepo struct {
	h handle
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.h.write(func(s *state) error {
		for _, existing := range s.orders {
			if existing.Code == o.Code {
				return duplicateCode("order", o.Code)
			}
		}
		s.orders[o.ID] = *o
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	r.h.read(func(s *state) {
		if o, ok := s.orders[id]; ok {
			out = &o
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: Run ya serializa las transacciones.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	return r.h.write(func(s *state) error {
		current, ok := s.orders[o.ID]
		if !ok {
			return nil
		}
		o.Code, o.CreatedBy, o.CreatedAt = current.Code, current.CreatedBy, current.CreatedAt
		s.orders[o.ID] = *o
		return nil
	})
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var list []*entity.Order
	r.h.read(func(s *state) {
		for _, o := range s.orders {
			if f.Status != "" && string(o.Status) != f.Status {
				continue
			}
			if f.Customer != "" && !containsFold(o.CustomerName, f.Customer) {
				continue
			}
			if f.Priority != "" && o.Priority != f.Priority {
				continue
			}
			if f.CreatedFrom != nil && o.CreatedAt.Before(*f.CreatedFrom) {
				continue
			}
			if f.CreatedTo != nil && o.CreatedAt.After(*f.CreatedTo) {
				continue
			}
			o := o
			list = append(list, &o)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].Code > list[j].Code
	})
	return list, nil
}

// Delete elimina la orden y su historial.
func (r *OrderRepo) Delete(_ context.Context, id string) error {
	return r.h.write(func(s *state) error {
		delete(s.orders, id)
		kept := s.history[:0]
		for _, h := range s.history {
			if h.OrderID != id {
				kept = append(kept, h)
			}
		}
		s.history = kept
		return nil
	})
}

func (r *OrderRepo) AppendHistory(_ context.Context, h *entity.OrderStatusHistory) error {
	return r.h.write(func(s *state) error {
		s.history = append(s.history, *h)
		return nil
	})
}

func (r *OrderRepo) ListHistory(_ context.Context, orderID string) ([]*entity.OrderStatusHistory, error) {
	var list []*entity.OrderStatusHistory
	r.h.read(func(s *state) {
		for _, h := range s.history {
			if h.OrderID == orderID {
				h := h
				list = append(list, &h)
			}
		}
	})
	return list, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
