package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factory-api/internal/application/activity"
	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/orders"
)

// OrderHandler órdenes de cliente y su flujo de estados.
type OrderHandler struct {
	uc       *orders.OrderUseCase
	recorder *activity.Recorder
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, recorder *activity.Recorder) *OrderHandler {
	return &OrderHandler{uc: uc, recorder: recorder}
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "Estado"
// @Param        customer  query  string  false  "Cliente (coincidencia parcial)"
// @Param        priority  query  string  false  "Prioridad"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var f dto.OrderFilter
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
// @Summary      Obtener orden con historial de estados
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear orden (admin)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.recorder.Record(c.UserContext(), GetUserID(c), activity.ActionOrderCreated, "Created order: "+out.Code, c.IP())
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar orden
// @Description  Los administradores pueden cambiar todos los campos; el resto de roles solo el estado.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	h.recorder.Record(c.UserContext(), GetUserID(c), activity.ActionOrderUpdated, "Updated order: "+out.Code, c.IP())
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Cambiar estado de la orden
// @Description  Siempre agrega una entrada al historial. Acepta estados fuera del flujo estándar.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la orden"
// @Param        body  body  dto.SetOrderStatusRequest  true  "Nuevo estado y comentario"
// @Success      200   {object}  dto.OrderStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetOrderStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SetStatus(c.UserContext(), id, *in.Status, in.Comment, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	h.recorder.Record(c.UserContext(), GetUserID(c), activity.ActionOrderUpdated,
		"Order "+out.Order.Code+" status: "+out.History.OldStatus+" -> "+out.History.NewStatus, c.IP())
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden (admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	o, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	h.recorder.Record(c.UserContext(), GetUserID(c), activity.ActionOrderDeleted, "Deleted order: "+o.Code, c.IP())
	return c.JSON(dto.MessageResponse{Message: "orden eliminada"})
}
