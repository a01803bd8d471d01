package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factory-api/internal/application/activity"
	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/inventory"
)

// RawMaterialHandler materias primas y sus ajustes de stock (protegido).
type RawMaterialHandler struct {
	uc       *inventory.MaterialUseCase
	recorder *activity.Recorder
}

// NewRawMaterialHandler construye el handler.
func NewRawMaterialHandler(uc *inventory.MaterialUseCase, recorder *activity.Recorder) *RawMaterialHandler {
	return &RawMaterialHandler{uc: uc, recorder: recorder}
}

// List godoc
// @Summary      Listar materias primas
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Categoría"
// @Param        status    query  string  false  "in-stock | low-stock | out-of-stock"
// @Success      200  {array}  dto.RawMaterialResponse
// @Router       /api/raw-materials [get]
func (h *RawMaterialHandler) List(c *fiber.Ctx) error {
	var f dto.StockFilter
	if ok, err := parseQuery(c, &f); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener materia prima con sus movimientos
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la materia prima"
// @Success      200  {object}  dto.RawMaterialDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id} [get]
func (h *RawMaterialHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear materia prima (admin)
// @Tags         raw-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRawMaterialRequest  true  "Datos de la materia prima"
// @Success      201   {object}  dto.RawMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/raw-materials [post]
func (h *RawMaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRawMaterialRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	h.recorder.Record(c.UserContext(), GetUserID(c), activity.ActionMaterialCreated, "Created material: "+out.Code, c.IP())
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust godoc
// @Summary      Ajustar stock de una materia prima (admin)
// @Description  movement_type add | remove | adjust; en adjust la cantidad es el stock final.
// @Tags         raw-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la materia prima"
// @Param        body  body  dto.AdjustStockRequest  true  "movement_type, quantity, reason"
// @Success      200   {object}  dto.AdjustRawMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id}/adjust [post]
func (h *RawMaterialHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Adjust(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	h.recorder.Record(c.UserContext(), GetUserID(c), activity.ActionMaterialAdjusted,
		fmt.Sprintf("Adjusted stock for %s: %s %s", out.Material.Code, in.MovementType, in.Quantity), c.IP())
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar materia prima (admin)
// @Description  Un cambio de current_stock queda registrado como movimiento adjust.
// @Tags         raw-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la materia prima"
// @Param        body  body  dto.UpdateRawMaterialRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RawMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id} [put]
func (h *RawMaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRawMaterialRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	h.recorder.Record(c.UserContext(), GetUserID(c), activity.ActionMaterialUpdated, "Updated material: "+out.Code, c.IP())
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar materia prima (admin)
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la materia prima"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id} [delete]
func (h *RawMaterialHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	m, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	h.recorder.Record(c.UserContext(), GetUserID(c), activity.ActionMaterialDeleted, "Deleted material: "+m.Code, c.IP())
	return c.JSON(dto.MessageResponse{Message: "materia prima eliminada"})
}
