// Package inventory contiene los casos de uso del libro de stock, artículos y materias primas.
package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/inventory"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// DefaultDirectReason motivo del ajuste sintético cuando la actualización directa no trae uno.
const DefaultDirectReason = "Stock adjusted via item update"

// MovementInput entrada para aplicar un movimiento al libro de stock.
type MovementInput struct {
	EntityType entity.StockedEntityType
	EntityID   string
	Kind       entity.MovementKind
	Quantity   decimal.Decimal
	Reason     string
	ActorID    string
}

// StockLedger aplica movimientos de stock con bloqueo de fila (SELECT FOR UPDATE):
// el nuevo nivel y el movimiento se persisten juntos o ninguno.
type StockLedger struct {
	txRunner repository.TxRunner
	now      func() time.Time
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(txRunner repository.TxRunner) *StockLedger {
	return &StockLedger{txRunner: txRunner, now: time.Now}
}

// Apply ejecuta el movimiento en su propia transacción.
func (l *StockLedger) Apply(ctx context.Context, in MovementInput) (*entity.StockSnapshot, *entity.StockMovement, error) {
	var (
		snap *entity.StockSnapshot
		mov  *entity.StockMovement
	)
	err := l.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		snap, mov, err = l.ApplyInTx(ctx, repos, in)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return snap, mov, nil
}

// ApplyInTx aplica el movimiento con los repositorios de una transacción ya abierta por el caller.
// Bloquea la fila, calcula el nuevo stock, lo guarda y registra el movimiento.
func (l *StockLedger) ApplyInTx(ctx context.Context, repos repository.TxRepositories, in MovementInput) (*entity.StockSnapshot, *entity.StockMovement, error) {
	if in.EntityID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	stocked, err := repos.Stocked(in.EntityType)
	if err != nil {
		return nil, nil, err
	}
	snap, err := stocked.LockStock(ctx, in.EntityID)
	if err != nil {
		return nil, nil, err
	}
	if snap == nil {
		return nil, nil, domain.ErrNotFound
	}
	next, err := inventory.NextStock(snap.CurrentStock, in.Kind, in.Quantity)
	if err != nil {
		return nil, nil, err
	}

	now := l.now()
	if err := stocked.SetStock(ctx, snap.ID, next, now); err != nil {
		return nil, nil, err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		EntityType:    in.EntityType,
		EntityID:      snap.ID,
		Kind:          in.Kind,
		Quantity:      in.Quantity,
		PreviousStock: snap.CurrentStock,
		NewStock:      next,
		Reason:        in.Reason,
		MovedBy:       in.ActorID,
		MovedAt:       now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, nil, err
	}
	snap.CurrentStock = next
	return snap, mov, nil
}

// SetDirect fija el stock a un valor absoluto desde la actualización genérica de la entidad.
// Solo si el valor cambia se guarda y se registra un ajuste sintético; devuelve nil si no hubo cambio.
// actorID puede ser vacío.
func (l *StockLedger) SetDirect(
	ctx context.Context,
	repos repository.TxRepositories,
	entityType entity.StockedEntityType,
	id string,
	newValue decimal.Decimal,
	reason, actorID string,
) (*entity.StockMovement, error) {
	stocked, err := repos.Stocked(entityType)
	if err != nil {
		return nil, err
	}
	snap, err := stocked.LockStock(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, domain.ErrNotFound
	}
	changed, err := inventory.DirectAdjust(snap.CurrentStock, newValue)
	if err != nil || !changed {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		reason = DefaultDirectReason
	}

	now := l.now()
	if err := stocked.SetStock(ctx, id, newValue, now); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		EntityType:    entityType,
		EntityID:      id,
		Kind:          entity.MovementAdjust,
		Quantity:      newValue,
		PreviousStock: snap.CurrentStock,
		NewStock:      newValue,
		Reason:        reason,
		MovedBy:       actorID,
		MovedAt:       now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
