package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct {
	h handle
}

func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	return r.h.write(func(s *state) error {
		for _, existing := range s.pos {
			if existing.Code == po.Code {
				return duplicateCode("purchase order", po.Code)
			}
		}
		s.pos[po.ID] = *po
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	r.h.read(func(s *state) {
		if po, ok := s.pos[id]; ok {
			out = &po
		}
	})
	return out, nil
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) Update(_ context.Context, po *entity.PurchaseOrder) error {
	return r.h.write(func(s *state) error {
		current, ok := s.pos[po.ID]
		if !ok {
			return nil
		}
		po.Code, po.CreatedBy, po.CreatedAt = current.Code, current.CreatedBy, current.CreatedAt
		s.pos[po.ID] = *po
		return nil
	})
}

func (r *PurchaseOrderRepo) List(_ context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	var list []*entity.PurchaseOrder
	r.h.read(func(s *state) {
		for _, po := range s.pos {
			if f.Status != "" && string(po.Status) != f.Status {
				continue
			}
			if f.Supplier != "" && !containsFold(po.Supplier, f.Supplier) {
				continue
			}
			if f.OrderedFrom != nil && po.OrderDate.Before(*f.OrderedFrom) {
				continue
			}
			if f.OrderedTo != nil && po.OrderDate.After(*f.OrderedTo) {
				continue
			}
			po := po
			list = append(list, &po)
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

func (r *PurchaseOrderRepo) Delete(_ context.Context, id string) error {
	return r.h.write(func(s *state) error {
		delete(s.pos, id)
		return nil
	})
}
