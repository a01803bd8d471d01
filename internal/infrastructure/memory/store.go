// Package memory implementa los repositorios en memoria con transacciones por copia.
// Se usa en pruebas de casos de uso y en herramientas sin base de datos.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

type state struct {
	users     map[string]entity.User
	orders    map[string]entity.Order
	history   []entity.OrderStatusHistory
	items     map[string]entity.InventoryItem
	materials map[string]entity.RawMaterial
	movements []entity.StockMovement
	pos       map[string]entity.PurchaseOrder
	logs      []entity.ActivityLog
}

func newState() *state {
	return &state{
		users:     make(map[string]entity.User),
		orders:    make(map[string]entity.Order),
		items:     make(map[string]entity.InventoryItem),
		materials: make(map[string]entity.RawMaterial),
		pos:       make(map[string]entity.PurchaseOrder),
	}
}

func (s *state) clone() *state {
	c := &state{
		users:     make(map[string]entity.User, len(s.users)),
		orders:    make(map[string]entity.Order, len(s.orders)),
		history:   append([]entity.OrderStatusHistory(nil), s.history...),
		items:     make(map[string]entity.InventoryItem, len(s.items)),
		materials: make(map[string]entity.RawMaterial, len(s.materials)),
		movements: append([]entity.StockMovement(nil), s.movements...),
		pos:       make(map[string]entity.PurchaseOrder, len(s.pos)),
		logs:      append([]entity.ActivityLog(nil), s.logs...),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.materials {
		c.materials[k] = v
	}
	for k, v := range s.pos {
		c.pos[k] = v
	}
	return c
}

// Store almacén en memoria. Run serializa las transacciones y publica la copia solo si fn no falla.
// Las escrituras fuera de transacción también toman txMu para no perderse al publicar una copia.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *state
}

var _ repository.TxRunner = (*Store)(nil)

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// handle da acceso al estado: el de una transacción en curso o el publicado (con lock).
type handle struct {
	store *Store
	tx    *state
}

func (h handle) read(fn func(s *state)) {
	if h.tx != nil {
		fn(h.tx)
		return
	}
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	fn(h.store.data)
}

func (h handle) write(fn func(s *state) error) error {
	if h.tx != nil {
		return fn(h.tx)
	}
	h.store.txMu.Lock()
	defer h.store.txMu.Unlock()
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return fn(h.store.data)
}

func reposFor(h handle) repository.TxRepositories {
	return repository.TxRepositories{
		Identifiers:    &IdentifierRepo{h: h},
		Users:          &UserRepo{h: h},
		Orders:         &OrderRepo{h: h},
		Items:          &InventoryItemRepo{h: h},
		Materials:      &RawMaterialRepo{h: h},
		Movements:      &StockMovementRepo{h: h},
		PurchaseOrders: &PurchaseOrderRepo{h: h},
		Activity:       &ActivityLogRepo{h: h},
	}
}

// Repositories devuelve repositorios sobre el estado publicado (fuera de transacción).
func (s *Store) Repositories() repository.TxRepositories {
	return reposFor(handle{store: s})
}

// Analytics devuelve el repositorio de consultas del dashboard.
func (s *Store) Analytics() *AnalyticsRepo {
	return &AnalyticsRepo{h: handle{store: s}}
}

// Run ejecuta fn sobre una copia del estado; si fn devuelve error la copia se descarta.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	tx := s.data.clone()
	s.mu.RUnlock()

	if err := fn(reposFor(handle{store: s, tx: tx})); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = tx
	s.mu.Unlock()
	return nil
}

func duplicateCode(table, code string) error {
	return fmt.Errorf("insert %s %s: %w", table, code, domain.ErrDuplicateIdentifier)
}
