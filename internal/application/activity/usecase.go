// Package activity registra y consulta el log de actividad de los usuarios.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/pkg/logger"
)

// Acciones registradas.
const (
	ActionLogin                 = "Login"
	ActionUserCreated           = "User Created"
	ActionUserUpdated           = "User Updated"
	ActionUserDeleted           = "User Deleted"
	ActionPasswordReset         = "Password Reset"
	ActionOrderCreated          = "Order Created"
	ActionOrderUpdated          = "Order Updated"
	ActionOrderDeleted          = "Order Deleted"
	ActionInventoryCreated      = "Inventory Item Created"
	ActionInventoryUpdated      = "Inventory Item Updated"
	ActionInventoryAdjusted     = "Inventory Adjusted"
	ActionInventoryDeleted      = "Inventory Item Deleted"
	ActionMaterialCreated       = "Raw Material Created"
	ActionMaterialUpdated       = "Raw Material Updated"
	ActionMaterialAdjusted      = "Raw Material Stock Adjusted"
	ActionMaterialDeleted       = "Raw Material Deleted"
	ActionPurchaseOrderCreated  = "Purchase Order Created"
	ActionPurchaseOrderUpdated  = "Purchase Order Updated"
	ActionPurchaseOrderDeleted  = "Purchase Order Deleted"
	ActionPurchaseOrderReceived = "Purchase Order Received"
	ActionSampleDataSeeded      = "Sample Data Seeded"
)

// Recorder guarda entradas del log de actividad. Sus fallos se registran y no se propagan:
// la operación principal ya fue confirmada.
type Recorder struct {
	repo repository.ActivityLogRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewRecorder construye el registrador.
func NewRecorder(repo repository.ActivityLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log, now: time.Now}
}

// Record agrega una entrada; userID vacío se guarda como NULL.
func (r *Recorder) Record(ctx context.Context, userID, action, details, ip string) {
	entry := &entity.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ip,
		CreatedAt: r.now(),
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		r.log.Warn().Err(err).Str("action", action).Msg("no se pudo registrar la actividad")
	}
}

// QueryUseCase consulta paginada del log de actividad.
type QueryUseCase struct {
	repo repository.ActivityLogRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(repo repository.ActivityLogRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// List devuelve la página pedida, más recientes primero, con el resumen del usuario.
func (uc *QueryUseCase) List(ctx context.Context, f dto.ActivityLogFilter) (*dto.ActivityLogPage, error) {
	f.DefaultPage()
	entries, total, err := uc.repo.List(ctx, repository.ActivityLogFilter{
		UserID: f.UserID,
		Action: f.Action,
		Limit:  f.PerPage,
		Offset: f.Offset(),
	})
	if err != nil {
		return nil, err
	}
	page := &dto.ActivityLogPage{
		Logs:         make([]dto.ActivityLogResponse, 0, len(entries)),
		PageResponse: dto.NewPageResponse(f.PageRequest, total),
	}
	for _, e := range entries {
		page.Logs = append(page.Logs, ToActivityResponse(e))
	}
	return page, nil
}

// ToActivityResponse convierte una entrada del log a DTO.
func ToActivityResponse(e *entity.ActivityLogEntry) dto.ActivityLogResponse {
	out := dto.ActivityLogResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    e.Action,
		Details:   e.Details,
		IPAddress: e.IPAddress,
		CreatedAt: e.CreatedAt,
	}
	if e.Username != "" {
		out.User = &dto.ActivityUserSummary{Username: e.Username, FullName: e.FullName, Role: e.Role}
	}
	return out
}
