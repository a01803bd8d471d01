package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// MaterialUseCase casos de uso de materias primas.
type MaterialUseCase struct {
	repos     repository.TxRepositories
	txRunner  repository.TxRunner
	ledger    *StockLedger
	generator *identifier.Generator
	now       func() time.Time
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repos repository.TxRepositories, txRunner repository.TxRunner, ledger *StockLedger, generator *identifier.Generator) *MaterialUseCase {
	return &MaterialUseCase{repos: repos, txRunner: txRunner, ledger: ledger, generator: generator, now: time.Now}
}

func (uc *MaterialUseCase) List(ctx context.Context, f dto.StockFilter) ([]dto.RawMaterialResponse, error) {
	list, err := uc.repos.Materials.List(ctx, repository.StockFilter{Category: f.Category, Status: entity.StockStatus(f.Status)})
	if err != nil {
		return nil, err
	}
	out := make([]dto.RawMaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMaterialResponse(m))
	}
	return out, nil
}

func (uc *MaterialUseCase) Get(ctx context.Context, id string) (*dto.RawMaterialDetailResponse, error) {
	m, err := uc.repos.Materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.repos.Movements.ListByEntity(ctx, entity.StockedRawMaterial, m.ID)
	if err != nil {
		return nil, err
	}
	return &dto.RawMaterialDetailResponse{
		RawMaterialResponse: ToMaterialResponse(m),
		StockMovements:      toMovementResponses(movs),
	}, nil
}

// Create registra una materia prima con código MAT.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	if err := checkLevels(in.CurrentStock, in.MinLevel, in.UnitPrice); err != nil {
		return nil, err
	}
	now := uc.now()
	var material *entity.RawMaterial
	err := identifier.WithRetry(ctx, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
			code, err := uc.generator.Next(ctx, repos.Identifiers, identifier.KindRawMaterial)
			if err != nil {
				return err
			}
			material = &entity.RawMaterial{
				ID:           uuid.New().String(),
				Code:         code,
				Name:         in.Name,
				Category:     in.Category,
				CurrentStock: in.CurrentStock,
				MinLevel:     in.MinLevel,
				Unit:         in.Unit,
				UnitPrice:    in.UnitPrice,
				Supplier:     in.Supplier,
				Description:  in.Description,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			return repos.Materials.Create(ctx, material)
		})
	})
	if err != nil {
		return nil, err
	}
	out := ToMaterialResponse(material)
	return &out, nil
}

// Adjust aplica un movimiento add/remove/adjust a la materia prima.
func (uc *MaterialUseCase) Adjust(ctx context.Context, actorID, id string, in dto.AdjustStockRequest) (*dto.AdjustRawMaterialResponse, error) {
	var (
		material *entity.RawMaterial
		mov      *entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		_, mov, err = uc.ledger.ApplyInTx(ctx, repos, MovementInput{
			EntityType: entity.StockedRawMaterial,
			EntityID:   id,
			Kind:       entity.MovementKind(in.MovementType),
			Quantity:   in.Quantity,
			Reason:     in.Reason,
			ActorID:    actorID,
		})
		if err != nil {
			return err
		}
		material, err = repos.Materials.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.AdjustRawMaterialResponse{Material: ToMaterialResponse(material), Movement: ToMovementResponse(mov)}, nil
}

// Update actualiza los campos presentes; current_stock pasa por el ajuste directo del libro.
func (uc *MaterialUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	var material *entity.RawMaterial
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		m, err := repos.Materials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if in.CurrentStock != nil {
			if _, err := uc.ledger.SetDirect(ctx, repos, entity.StockedRawMaterial, id, *in.CurrentStock, in.Reason, actorID); err != nil {
				return err
			}
			m.CurrentStock = *in.CurrentStock
		}
		setString(&m.Name, in.Name)
		setString(&m.Category, in.Category)
		setString(&m.Unit, in.Unit)
		setString(&m.Supplier, in.Supplier)
		setString(&m.Description, in.Description)
		setDecimal(&m.MinLevel, in.MinLevel)
		setDecimal(&m.UnitPrice, in.UnitPrice)
		if err := checkLevels(m.CurrentStock, m.MinLevel, m.UnitPrice); err != nil {
			return err
		}
		m.UpdatedAt = uc.now()
		if err := repos.Materials.Update(ctx, m); err != nil {
			return err
		}
		material = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := ToMaterialResponse(material)
	return &out, nil
}

// Delete elimina la materia prima y sus movimientos.
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) (*entity.RawMaterial, error) {
	m, err := uc.repos.Materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repos.Materials.Delete(ctx, id); err != nil {
		return nil, err
	}
	return m, nil
}
