// Package purchasing contiene las órdenes de compra de materia prima y su recepción.
package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/inventory"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// PurchaseOrderUseCase casos de uso de órdenes de compra.
type PurchaseOrderUseCase struct {
	repos     repository.TxRepositories
	txRunner  repository.TxRunner
	generator *identifier.Generator
	now       func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(repos repository.TxRepositories, txRunner repository.TxRunner, generator *identifier.Generator) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{repos: repos, txRunner: txRunner, generator: generator, now: time.Now}
}

// Create registra una orden de compra en estado ordered con código PO.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, actorID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := checkAmounts(in.Quantity, in.UnitPrice); err != nil {
		return nil, err
	}
	orderDate, err := parseDate(in.OrderDate)
	if err != nil {
		return nil, err
	}
	expected, err := parseDate(in.ExpectedDelivery)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var po *entity.PurchaseOrder
	err = identifier.WithRetry(ctx, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
			code, err := uc.generator.Next(ctx, repos.Identifiers, identifier.KindPurchaseOrder)
			if err != nil {
				return err
			}
			po = &entity.PurchaseOrder{
				ID:               uuid.New().String(),
				Code:             code,
				MaterialName:     in.MaterialName,
				Category:         in.Category,
				Quantity:         in.Quantity,
				Unit:             in.Unit,
				UnitPrice:        in.UnitPrice,
				Supplier:         in.Supplier,
				OrderDate:        orderDate,
				ExpectedDelivery: expected,
				Status:           entity.PurchaseOrderOrdered,
				Notes:            in.Notes,
				CreatedBy:        actorID,
				CreatedAt:        now,
			}
			po.RecalculateTotal()
			return repos.PurchaseOrders.Create(ctx, po)
		})
	})
	if err != nil {
		return nil, err
	}
	out := ToPurchaseOrderResponse(po)
	return &out, nil
}

// Update aplica una actualización parcial y recalcula el total.
// La recepción solo ocurre por Receive; una orden recibida no cambia de estado.
func (uc *PurchaseOrderUseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	var out *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		po, err := repos.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if in.Status != nil {
			status := entity.PurchaseOrderStatus(*in.Status)
			switch {
			case status == entity.PurchaseOrderReceived:
				return fmt.Errorf("%w: use la recepción para marcar la orden como recibida", domain.ErrInvalidInput)
			case po.IsReceived():
				return domain.ErrAlreadyReceived
			case status != entity.PurchaseOrderOrdered:
				return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
			}
		}
		if in.MaterialName != nil {
			po.MaterialName = *in.MaterialName
		}
		if in.Category != nil {
			po.Category = *in.Category
		}
		if in.Quantity != nil {
			po.Quantity = *in.Quantity
		}
		if in.Unit != nil {
			po.Unit = *in.Unit
		}
		if in.UnitPrice != nil {
			po.UnitPrice = *in.UnitPrice
		}
		if in.Supplier != nil {
			po.Supplier = *in.Supplier
		}
		if in.OrderDate != nil {
			if po.OrderDate, err = parseDate(*in.OrderDate); err != nil {
				return err
			}
		}
		if in.ExpectedDelivery != nil {
			if po.ExpectedDelivery, err = parseDate(*in.ExpectedDelivery); err != nil {
				return err
			}
		}
		if in.Notes != nil {
			po.Notes = *in.Notes
		}
		if err := checkAmounts(po.Quantity, po.UnitPrice); err != nil {
			return err
		}
		po.RecalculateTotal()
		if err := repos.PurchaseOrders.Update(ctx, po); err != nil {
			return err
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	res := ToPurchaseOrderResponse(out)
	return &res, nil
}

// Receive marca la orden como recibida e ingresa la cantidad a la materia prima del mismo nombre
// (coincidencia exacta). Si no existe se crea con nivel mínimo cero y código MAT.
// El ingreso a una materia prima existente no genera movimiento de stock.
// Todo ocurre en una transacción; una colisión de código MAT reintenta la unidad completa una vez.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, id string) (*dto.ReceivePurchaseOrderResponse, error) {
	var (
		po       *entity.PurchaseOrder
		material *entity.RawMaterial
	)
	err := identifier.WithRetry(ctx, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
			var err error
			po, err = repos.PurchaseOrders.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if po == nil {
				return domain.ErrNotFound
			}
			if po.IsReceived() {
				return domain.ErrAlreadyReceived
			}
			po.Status = entity.PurchaseOrderReceived
			if err := repos.PurchaseOrders.Update(ctx, po); err != nil {
				return err
			}

			now := uc.now()
			material, err = repos.Materials.GetByNameForUpdate(ctx, po.MaterialName)
			if err != nil {
				return err
			}
			if material != nil {
				material.CurrentStock = material.CurrentStock.Add(po.Quantity)
				material.UpdatedAt = now
				return repos.Materials.SetStock(ctx, material.ID, material.CurrentStock, now)
			}

			code, err := uc.generator.Next(ctx, repos.Identifiers, identifier.KindRawMaterial)
			if err != nil {
				return err
			}
			material = &entity.RawMaterial{
				ID:           uuid.New().String(),
				Code:         code,
				Name:         po.MaterialName,
				Category:     po.Category,
				CurrentStock: po.Quantity,
				MinLevel:     decimal.Zero,
				Unit:         po.Unit,
				UnitPrice:    po.UnitPrice,
				Supplier:     po.Supplier,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			return repos.Materials.Create(ctx, material)
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.ReceivePurchaseOrderResponse{
		PurchaseOrder: ToPurchaseOrderResponse(po),
		Material:      inventory.ToMaterialResponse(material),
	}, nil
}

// List lista órdenes de compra más recientes primero.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, f dto.PurchaseOrderFilter) ([]dto.PurchaseOrderResponse, error) {
	list, err := uc.repos.PurchaseOrders.List(ctx, repository.PurchaseOrderFilter{Status: f.Status, Supplier: f.Supplier})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, ToPurchaseOrderResponse(po))
	}
	return out, nil
}

func (uc *PurchaseOrderUseCase) Get(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.repos.PurchaseOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	out := ToPurchaseOrderResponse(po)
	return &out, nil
}

func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.repos.PurchaseOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repos.PurchaseOrders.Delete(ctx, id); err != nil {
		return nil, err
	}
	return po, nil
}

func checkAmounts(quantity, unitPrice decimal.Decimal) error {
	if !quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q, use YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// ToPurchaseOrderResponse convierte una orden de compra a DTO.
func ToPurchaseOrderResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	return dto.PurchaseOrderResponse{
		ID:               po.ID,
		Code:             po.Code,
		MaterialName:     po.MaterialName,
		Category:         po.Category,
		Quantity:         po.Quantity,
		Unit:             po.Unit,
		UnitPrice:        po.UnitPrice,
		TotalCost:        po.TotalCost,
		Supplier:         po.Supplier,
		OrderDate:        po.OrderDate.Format(dto.DateLayout),
		ExpectedDelivery: po.ExpectedDelivery.Format(dto.DateLayout),
		Status:           string(po.Status),
		Notes:            po.Notes,
		CreatedBy:        po.CreatedBy,
		CreatedAt:        po.CreatedAt,
	}
}
