package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/factory-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard y los catálogos de categorías/proveedores.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	lookup *appanalytics.LookupUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, lookup *appanalytics.LookupUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, lookup: lookup}
}

// GetStats devuelve los conteos de órdenes, inventario, materias primas y compras,
// las últimas 10 actividades y las entregas de los próximos 7 días.
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// OrdersByStatus GET /api/dashboard/charts/orders-by-status
func (h *DashboardHandler) OrdersByStatus(c *fiber.Ctx) error {
	out, err := h.uc.OrdersByStatusChart(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InventoryStatus GET /api/dashboard/charts/inventory-status
func (h *DashboardHandler) InventoryStatus(c *fiber.Ctx) error {
	out, err := h.uc.InventoryStatusChart(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MonthlyOrders órdenes creadas por mes en los últimos 12 meses.
// GET /api/dashboard/charts/monthly-orders
func (h *DashboardHandler) MonthlyOrders(c *fiber.Ctx) error {
	out, err := h.uc.MonthlyOrdersChart(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías de artículos y materias primas
// @Tags         lookups
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoriesResponse
// @Router       /api/categories [get]
func (h *DashboardHandler) Categories(c *fiber.Ctx) error {
	out, err := h.lookup.Categories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Suppliers godoc
// @Summary      Proveedores conocidos
// @Tags         lookups
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SuppliersResponse
// @Router       /api/suppliers [get]
func (h *DashboardHandler) Suppliers(c *fiber.Ctx) error {
	out, err := h.lookup.Suppliers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
