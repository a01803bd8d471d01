package inventory

import (
	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// ToMovementResponse convierte un movimiento de stock a DTO.
func ToMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:            m.ID,
		EntityType:    string(m.EntityType),
		EntityID:      m.EntityID,
		MovementType:  string(m.Kind),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		MovedBy:       m.MovedBy,
		MovedAt:       m.MovedAt,
	}
}

func toMovementResponses(list []*entity.StockMovement) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

// ToItemResponse convierte un artículo a DTO con su estado derivado.
func ToItemResponse(it *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:           it.ID,
		Code:         it.Code,
		Name:         it.Name,
		Category:     it.Category,
		CurrentStock: it.CurrentStock,
		MinLevel:     it.MinLevel,
		MaxLevel:     it.MaxLevel,
		Unit:         it.Unit,
		Status:       string(it.Status()),
		Description:  it.Description,
		Supplier:     it.Supplier,
		UnitCost:     it.UnitCost,
		Location:     it.Location,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

// ToMaterialResponse convierte una materia prima a DTO con estado y valor total.
func ToMaterialResponse(m *entity.RawMaterial) dto.RawMaterialResponse {
	return dto.RawMaterialResponse{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		Category:     m.Category,
		CurrentStock: m.CurrentStock,
		MinLevel:     m.MinLevel,
		Unit:         m.Unit,
		UnitPrice:    m.UnitPrice,
		TotalValue:   m.TotalValue(),
		Status:       string(m.Status()),
		Supplier:     m.Supplier,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
