// Package orders contiene el ciclo de vida de las órdenes de cliente y su historial de estados.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/pkg/logger"
)

// Actor usuario autenticado que ejecuta la operación.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin informa si el actor tiene rol administrador.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// OrderUseCase casos de uso de órdenes.
type OrderUseCase struct {
	repos     repository.TxRepositories
	txRunner  repository.TxRunner
	generator *identifier.Generator
	log       *logger.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repos repository.TxRepositories, txRunner repository.TxRunner, generator *identifier.Generator, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{repos: repos, txRunner: txRunner, generator: generator, log: log, now: time.Now}
}

// Create registra una orden en estado yet-to-process con código ORD.
func (uc *OrderUseCase) Create(ctx context.Context, actorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
	}
	deadline, err := parseDate(in.Deadline)
	if err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}

	now := uc.now()
	var order *entity.Order
	err = identifier.WithRetry(ctx, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
			code, err := uc.generator.Next(ctx, repos.Identifiers, identifier.KindOrder)
			if err != nil {
				return err
			}
			order = &entity.Order{
				ID:                  uuid.New().String(),
				Code:                code,
				CustomerName:        in.CustomerName,
				Product:             in.Product,
				Quantity:            in.Quantity,
				UnitPrice:           in.UnitPrice,
				Status:              entity.OrderStatusYetToProcess,
				Priority:            priority,
				Deadline:            deadline,
				SpecialInstructions: in.SpecialInstructions,
				CreatedBy:           actorID,
				CreatedAt:           now,
				UpdatedAt:           now,
			}
			order.RecalculateTotal()
			return repos.Orders.Create(ctx, order)
		})
	})
	if err != nil {
		return nil, err
	}
	out := ToOrderResponse(order)
	return &out, nil
}

// Update aplica una actualización parcial. Los administradores pueden cambiar cualquier campo;
// para el resto de roles solo se considera el estado y los demás campos se ignoran.
// Un estado presente se registra en el historial dentro de la misma transacción.
func (uc *OrderUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if actor.IsAdmin() {
			if err := applyAdminFields(o, in); err != nil {
				return err
			}
		}
		if in.Status != nil {
			if _, err := uc.setStatusLocked(ctx, repos, o, *in.Status, in.Comment, actor.ID); err != nil {
				return err
			}
		}
		o.UpdatedAt = uc.now()
		if err := repos.Orders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := ToOrderResponse(order)
	return &out, nil
}

func applyAdminFields(o *entity.Order, in dto.UpdateOrderRequest) error {
	if in.CustomerName != nil {
		o.CustomerName = *in.CustomerName
	}
	if in.Product != nil {
		o.Product = *in.Product
	}
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
		}
		o.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
		}
		price := *in.UnitPrice
		o.UnitPrice = &price
	}
	switch {
	case in.TotalAmount != nil:
		total := *in.TotalAmount
		o.TotalAmount = &total
	case in.UnitPrice != nil || in.Quantity != nil:
		o.RecalculateTotal()
	}
	if in.Deadline != nil {
		d, err := parseDate(*in.Deadline)
		if err != nil {
			return err
		}
		o.Deadline = d
	}
	if in.Priority != nil {
		o.Priority = *in.Priority
	}
	if in.SpecialInstructions != nil {
		o.SpecialInstructions = *in.SpecialInstructions
	}
	return nil
}

// SetStatus cambia el estado de la orden bloqueando su fila y agrega siempre una entrada
// al historial, aunque el estado no cambie. El estado se guarda tal como llega.
func (uc *OrderUseCase) SetStatus(ctx context.Context, id, newStatus, comment, actorID string) (*dto.OrderStatusResponse, error) {
	var (
		order   *entity.Order
		history *entity.OrderStatusHistory
	)
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		history, err = uc.setStatusLocked(ctx, repos, o, newStatus, comment, actorID)
		if err != nil {
			return err
		}
		o.UpdatedAt = history.ChangedAt
		if err := repos.Orders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.OrderStatusResponse{Order: ToOrderResponse(order), History: toHistoryResponse(history)}, nil
}

// setStatusLocked asume la fila de la orden ya bloqueada; muta o y agrega el historial.
func (uc *OrderUseCase) setStatusLocked(
	ctx context.Context,
	repos repository.TxRepositories,
	o *entity.Order,
	newStatus, comment, actorID string,
) (*entity.OrderStatusHistory, error) {
	status := entity.OrderStatus(newStatus)
	if !status.IsKnown() {
		uc.log.Warn().Str("order", o.Code).Str("status", string(status)).Msg("estado de orden fuera del flujo estándar")
	}
	h := &entity.OrderStatusHistory{
		ID:        uuid.New().String(),
		OrderID:   o.ID,
		OldStatus: o.Status,
		NewStatus: status,
		Comment:   comment,
		ChangedBy: actorID,
		ChangedAt: uc.now(),
	}
	if err := repos.Orders.AppendHistory(ctx, h); err != nil {
		return nil, err
	}
	o.Status = status
	return h, nil
}

// Get devuelve la orden con su historial en orden cronológico.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.OrderDetailResponse, error) {
	o, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	history, err := uc.repos.Orders.ListHistory(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderDetailResponse{
		OrderResponse: ToOrderResponse(o),
		StatusHistory: make([]dto.OrderHistoryResponse, 0, len(history)),
	}
	for _, h := range history {
		out.StatusHistory = append(out.StatusHistory, toHistoryResponse(h))
	}
	return out, nil
}

// List lista órdenes más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, f dto.OrderFilter) ([]dto.OrderResponse, error) {
	list, err := uc.repos.Orders.List(ctx, repository.OrderFilter{Status: f.Status, Customer: f.Customer, Priority: f.Priority})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, ToOrderResponse(o))
	}
	return out, nil
}

// Delete elimina la orden y su historial.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repos.Orders.Delete(ctx, id); err != nil {
		return nil, err
	}
	return o, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q, use YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// ToOrderResponse convierte una orden a DTO.
func ToOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                  o.ID,
		Code:                o.Code,
		CustomerName:        o.CustomerName,
		Product:             o.Product,
		Quantity:            o.Quantity,
		UnitPrice:           o.UnitPrice,
		TotalAmount:         o.TotalAmount,
		Status:              string(o.Status),
		Priority:            o.Priority,
		Deadline:            o.Deadline.Format(dto.DateLayout),
		SpecialInstructions: o.SpecialInstructions,
		CreatedBy:           o.CreatedBy,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func toHistoryResponse(h *entity.OrderStatusHistory) dto.OrderHistoryResponse {
	return dto.OrderHistoryResponse{
		ID:        h.ID,
		OrderID:   h.OrderID,
		OldStatus: string(h.OldStatus),
		NewStatus: string(h.NewStatus),
		Comment:   h.Comment,
		ChangedBy: h.ChangedBy,
		ChangedAt: h.ChangedAt,
	}
}
