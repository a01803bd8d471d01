package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

func matchesStock(f repository.StockFilter, category string, status entity.StockStatus) bool {
	if f.Category != "" && category != f.Category {
		return false
	}
	return f.Status == "" || status == f.Status
}

func checkStock(q decimal.Decimal) error {
	if q.IsNegative() {
		return fmt.Errorf("set stock: %w", domain.ErrConstraintViolation)
	}
	return nil
}

// dropMovements borra en cascada los movimientos de una entidad.
func dropMovements(s *state, t entity.StockedEntityType, id string) {
	kept := s.movements[:0]
	for _, m := range s.movements {
		if m.EntityType != t || m.EntityID != id {
			kept = append(kept, m)
		}
	}
	s.movements = kept
}

// InventoryItemRepo artículos en memoria.
type InventoryItemRepo struct {
	h handle
}

func (r *InventoryItemRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	return r.h.write(func(s *state) error {
		for _, existing := range s.items {
			if existing.Code == it.Code {
				return duplicateCode("inventory item", it.Code)
			}
		}
		if err := checkStock(it.CurrentStock); err != nil {
			return err
		}
		s.items[it.ID] = *it
		return nil
	})
}

func (r *InventoryItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	r.h.read(func(s *state) {
		if it, ok := s.items[id]; ok {
			out = &it
		}
	})
	return out, nil
}

func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *InventoryItemRepo) LockStock(_ context.Context, id string) (*entity.StockSnapshot, error) {
	var out *entity.StockSnapshot
	r.h.read(func(s *state) {
		if it, ok := s.items[id]; ok {
			out = &entity.StockSnapshot{
				EntityType: entity.StockedInventoryItem, ID: it.ID, Code: it.Code,
				CurrentStock: it.CurrentStock, MinLevel: it.MinLevel,
			}
		}
	})
	return out, nil
}

func (r *InventoryItemRepo) SetStock(_ context.Context, id string, q decimal.Decimal, at time.Time) error {
	return r.h.write(func(s *state) error {
		if err := checkStock(q); err != nil {
			return err
		}
		if it, ok := s.items[id]; ok {
			it.CurrentStock, it.UpdatedAt = q, at
			s.items[id] = it
		}
		return nil
	})
}

func (r *InventoryItemRepo) Update(_ context.Context, it *entity.InventoryItem) error {
	return r.h.write(func(s *state) error {
		current, ok := s.items[it.ID]
		if !ok {
			return nil
		}
		if err := checkStock(it.CurrentStock); err != nil {
			return err
		}
		it.Code, it.CreatedAt = current.Code, current.CreatedAt
		s.items[it.ID] = *it
		return nil
	})
}

func (r *InventoryItemRepo) List(_ context.Context, f repository.StockFilter) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	r.h.read(func(s *state) {
		for _, it := range s.items {
			if matchesStock(f, it.Category, it.Status()) {
				it := it
				list = append(list, &it)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

func (r *InventoryItemRepo) Delete(_ context.Context, id string) error {
	return r.h.write(func(s *state) error {
		delete(s.items, id)
		dropMovements(s, entity.StockedInventoryItem, id)
		return nil
	})
}

// RawMaterialRepo materias primas en memoria.
type RawMaterialRepo struct {
	h handle
}

func (r *RawMaterialRepo) Create(_ context.Context, m *entity.RawMaterial) error {
	return r.h.write(func(s *state) error {
		for _, existing := range s.materials {
			if existing.Code == m.Code {
				return duplicateCode("raw material", m.Code)
			}
		}
		if err := checkStock(m.CurrentStock); err != nil {
			return err
		}
		s.materials[m.ID] = *m
		return nil
	})
}

func (r *RawMaterialRepo) GetByID(_ context.Context, id string) (*entity.RawMaterial, error) {
	var out *entity.RawMaterial
	r.h.read(func(s *state) {
		if m, ok := s.materials[id]; ok {
			out = &m
		}
	})
	return out, nil
}

func (r *RawMaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.GetByID(ctx, id)
}

// GetByNameForUpdate devuelve la materia prima más antigua con ese nombre exacto.
func (r *RawMaterialRepo) GetByNameForUpdate(_ context.Context, name string) (*entity.RawMaterial, error) {
	var out *entity.RawMaterial
	r.h.read(func(s *state) {
		for _, m := range s.materials {
			if m.Name != name {
				continue
			}
			if out == nil || m.CreatedAt.Before(out.CreatedAt) ||
				(m.CreatedAt.Equal(out.CreatedAt) && m.Code < out.Code) {
				m := m
				out = &m
			}
		}
	})
	return out, nil
}

func (r *RawMaterialRepo) LockStock(_ context.Context, id string) (*entity.StockSnapshot, error) {
	var out *entity.StockSnapshot
	r.h.read(func(s *state) {
		if m, ok := s.materials[id]; ok {
			out = &entity.StockSnapshot{
				EntityType: entity.StockedRawMaterial, ID: m.ID, Code: m.Code,
				CurrentStock: m.CurrentStock, MinLevel: m.MinLevel,
			}
		}
	})
	return out, nil
}

func (r *RawMaterialRepo) SetStock(_ context.Context, id string, q decimal.Decimal, at time.Time) error {
	return r.h.write(func(s *state) error {
		if err := checkStock(q); err != nil {
			return err
		}
		if m, ok := s.materials[id]; ok {
			m.CurrentStock, m.UpdatedAt = q, at
			s.materials[id] = m
		}
		return nil
	})
}

func (r *RawMaterialRepo) Update(_ context.Context, m *entity.RawMaterial) error {
	return r.h.write(func(s *state) error {
		current, ok := s.materials[m.ID]
		if !ok {
			return nil
		}
		if err := checkStock(m.CurrentStock); err != nil {
			return err
		}
		m.Code, m.CreatedAt = current.Code, current.CreatedAt
		s.materials[m.ID] = *m
		return nil
	})
}

func (r *RawMaterialRepo) List(_ context.Context, f repository.StockFilter) ([]*entity.RawMaterial, error) {
	var list []*entity.RawMaterial
	r.h.read(func(s *state) {
		for _, m := range s.materials {
			if matchesStock(f, m.Category, m.Status()) {
				m := m
				list = append(list, &m)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

func (r *RawMaterialRepo) Delete(_ context.Context, id string) error {
	return r.h.write(func(s *state) error {
		delete(s.materials, id)
		dropMovements(s, entity.StockedRawMaterial, id)
		return nil
	})
}

// StockMovementRepo movimientos en memoria (append-only).
type StockMovementRepo struct {
	h handle
}

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.h.write(func(s *state) error {
		var exists bool
		switch m.EntityType {
		case entity.StockedInventoryItem:
			_, exists = s.items[m.EntityID]
		case entity.StockedRawMaterial:
			_, exists = s.materials[m.EntityID]
		}
		if !exists {
			return fmt.Errorf("insert stock movement: %w", domain.ErrConstraintViolation)
		}
		s.movements = append(s.movements, *m)
		return nil
	})
}

func (r *StockMovementRepo) ListByEntity(_ context.Context, t entity.StockedEntityType, id string) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	r.h.read(func(s *state) {
		for _, m := range s.movements {
			if m.EntityType == t && m.EntityID == id {
				m := m
				list = append(list, &m)
			}
		}
	})
	return list, nil
}
