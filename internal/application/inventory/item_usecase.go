package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// ItemUseCase casos de uso de artículos de inventario.
type ItemUseCase struct {
	repos     repository.TxRepositories
	txRunner  repository.TxRunner
	ledger    *StockLedger
	generator *identifier.Generator
	now       func() time.Time
}

// NewItemUseCase construye el caso de uso. repos son los repositorios fuera de transacción (lecturas).
func NewItemUseCase(repos repository.TxRepositories, txRunner repository.TxRunner, ledger *StockLedger, generator *identifier.Generator) *ItemUseCase {
	return &ItemUseCase{repos: repos, txRunner: txRunner, ledger: ledger, generator: generator, now: time.Now}
}

// List lista artículos filtrando por categoría y estado derivado.
func (uc *ItemUseCase) List(ctx context.Context, f dto.StockFilter) ([]dto.InventoryItemResponse, error) {
	list, err := uc.repos.Items.List(ctx, repository.StockFilter{Category: f.Category, Status: entity.StockStatus(f.Status)})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, ToItemResponse(it))
	}
	return out, nil
}

// Get devuelve el artículo con sus movimientos en orden cronológico.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*dto.InventoryItemDetailResponse, error) {
	it, err := uc.repos.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.repos.Movements.ListByEntity(ctx, entity.StockedInventoryItem, it.ID)
	if err != nil {
		return nil, err
	}
	return &dto.InventoryItemDetailResponse{
		InventoryItemResponse: ToItemResponse(it),
		StockMovements:        toMovementResponses(movs),
	}, nil
}

// Create registra un artículo con código ITM generado dentro de la transacción.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if err := checkLevels(in.CurrentStock, in.MinLevel, in.MaxLevel); err != nil {
		return nil, err
	}
	now := uc.now()
	var item *entity.InventoryItem
	err := identifier.WithRetry(ctx, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
			code, err := uc.generator.Next(ctx, repos.Identifiers, identifier.KindInventoryItem)
			if err != nil {
				return err
			}
			item = &entity.InventoryItem{
				ID:           uuid.New().String(),
				Code:         code,
				Name:         in.Name,
				Category:     in.Category,
				CurrentStock: in.CurrentStock,
				MinLevel:     in.MinLevel,
				MaxLevel:     in.MaxLevel,
				Unit:         in.Unit,
				Description:  in.Description,
				Supplier:     in.Supplier,
				UnitCost:     in.UnitCost,
				Location:     in.Location,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			return repos.Items.Create(ctx, item)
		})
	})
	if err != nil {
		return nil, err
	}
	out := ToItemResponse(item)
	return &out, nil
}

// Adjust aplica un movimiento add/remove/adjust al artículo.
func (uc *ItemUseCase) Adjust(ctx context.Context, actorID, id string, in dto.AdjustStockRequest) (*dto.AdjustInventoryItemResponse, error) {
	var (
		item *entity.InventoryItem
		mov  *entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		_, mov, err = uc.ledger.ApplyInTx(ctx, repos, MovementInput{
			EntityType: entity.StockedInventoryItem,
			EntityID:   id,
			Kind:       entity.MovementKind(in.MovementType),
			Quantity:   in.Quantity,
			Reason:     in.Reason,
			ActorID:    actorID,
		})
		if err != nil {
			return err
		}
		item, err = repos.Items.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.AdjustInventoryItemResponse{Item: ToItemResponse(item), Movement: ToMovementResponse(mov)}, nil
}

// Update actualiza los campos presentes. Un cambio de current_stock se registra como ajuste sintético.
func (uc *ItemUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	var item *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		it, err := repos.Items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return domain.ErrNotFound
		}
		if in.CurrentStock != nil {
			if _, err := uc.ledger.SetDirect(ctx, repos, entity.StockedInventoryItem, id, *in.CurrentStock, in.Reason, actorID); err != nil {
				return err
			}
			it.CurrentStock = *in.CurrentStock
		}
		setString(&it.Name, in.Name)
		setString(&it.Category, in.Category)
		setString(&it.Unit, in.Unit)
		setString(&it.Description, in.Description)
		setString(&it.Supplier, in.Supplier)
		setString(&it.Location, in.Location)
		setDecimal(&it.MinLevel, in.MinLevel)
		setDecimal(&it.MaxLevel, in.MaxLevel)
		if in.UnitCost != nil {
			cost := *in.UnitCost
			it.UnitCost = &cost
		}
		if err := checkLevels(it.CurrentStock, it.MinLevel, it.MaxLevel); err != nil {
			return err
		}
		it.UpdatedAt = uc.now()
		if err := repos.Items.Update(ctx, it); err != nil {
			return err
		}
		item = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := ToItemResponse(item)
	return &out, nil
}

// Delete elimina el artículo y, en cascada, sus movimientos.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := uc.repos.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repos.Items.Delete(ctx, id); err != nil {
		return nil, err
	}
	return it, nil
}

// checkLevels rechaza stock o niveles negativos.
func checkLevels(current decimal.Decimal, levels ...decimal.Decimal) error {
	if current.IsNegative() {
		return domain.ErrInvalidQuantity
	}
	for _, l := range levels {
		if l.IsNegative() {
			return fmt.Errorf("%w: los niveles de stock no pueden ser negativos", domain.ErrInvalidInput)
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}
