package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factory-api/internal/application/activity"
	"github.com/jhoicas/factory-api/internal/application/dto"
)

// ActivityHandler consulta del registro de actividad (admin).
type ActivityHandler struct {
	uc *activity.QueryUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *activity.QueryUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Registro de actividad paginado
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"              default(1)
// @Param        per_page  query  int     false  "Entradas por página"  default(50)
// @Param        user_id   query  string  false  "ID del usuario"
// @Param        action    query  string  false  "Acción (coincidencia parcial)"
// @Success      200  {object}  dto.ActivityLogPage
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/activity-logs [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	f := dto.ActivityLogFilter{
		PageRequest: dto.PageRequest{Page: c.QueryInt("page", 1), PerPage: c.QueryInt("per_page", 50)},
		UserID:      c.Query("user_id"),
		Action:      c.Query("action"),
	}
	if ok, err := checkStruct(c, &f); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
