package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/reports"
)

// ReportHandler reportes en JSON o exportados a PDF/XLSX según ?format=.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Orders godoc
// @Summary      Reporte de órdenes
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        status      query  string  false  "Estado"
// @Param        format      query  string  false  "json | pdf | xlsx"
// @Success      200  {object}  dto.OrderReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/orders [get]
func (h *ReportHandler) Orders(c *fiber.Ctx) error {
	var f dto.OrderReportFilter
	if ok, err := parseQuery(c, &f); !ok {
		return err
	}
	rep, err := h.uc.Orders(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	if isJSON(f.Format) {
		return c.JSON(rep)
	}
	return h.export(c, f.Format, "orders_report", reports.OrdersDocument(rep, f))
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        category  query  string  false  "Categoría"
// @Param        status    query  string  false  "in-stock | low-stock | out-of-stock"
// @Param        format    query  string  false  "json | pdf | xlsx"
// @Success      200  {object}  dto.InventoryReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	var f dto.InventoryReportFilter
	if ok, err := parseQuery(c, &f); !ok {
		return err
	}
	rep, err := h.uc.Inventory(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	if isJSON(f.Format) {
		return c.JSON(rep)
	}
	return h.export(c, f.Format, "inventory_report", reports.InventoryDocument(rep, f))
}

// PurchaseOrders godoc
// @Summary      Reporte de órdenes de compra
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "Desde (order_date, inclusive)"
// @Param        end_date    query  string  false  "Hasta (order_date, inclusive)"
// @Param        status      query  string  false  "ordered | received"
// @Param        supplier    query  string  false  "Proveedor (coincidencia parcial)"
// @Param        format      query  string  false  "json | pdf | xlsx"
// @Success      200  {object}  dto.PurchaseOrderReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/purchase-orders [get]
func (h *ReportHandler) PurchaseOrders(c *fiber.Ctx) error {
	var f dto.PurchaseOrderReportFilter
	if ok, err := parseQuery(c, &f); !ok {
		return err
	}
	rep, err := h.uc.PurchaseOrders(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	if isJSON(f.Format) {
		return c.JSON(rep)
	}
	return h.export(c, f.Format, "purchase_orders_report", reports.PurchaseOrdersDocument(rep, f))
}

func (h *ReportHandler) export(c *fiber.Ctx, format, name string, doc *reports.Document) error {
	out, err := h.uc.Export(c.UserContext(), format, name, doc)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Attachment(out.Filename)
	return c.Send(out.Content)
}

func isJSON(format string) bool {
	return format == "" || format == "json"
}
