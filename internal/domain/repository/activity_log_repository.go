package repository

import (
	"context"

	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// ActivityLogFilter filtros y paginación del registro de actividad.
type ActivityLogFilter struct {
	UserID string
	Action string // coincidencia parcial, sin distinguir mayúsculas
	Limit  int
	Offset int
}

// ActivityLogRepository define el puerto de persistencia del registro de actividad.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	// List devuelve la página pedida (más recientes primero) y el total sin paginar.
	List(ctx context.Context, filter ActivityLogFilter) ([]*entity.ActivityLogEntry, int, error)
}
