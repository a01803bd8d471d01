// Package reports construye los reportes de órdenes, inventario y compras y su exportación.
package reports

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/inventory"
	"github.com/jhoicas/factory-api/internal/application/orders"
	"github.com/jhoicas/factory-api/internal/application/purchasing"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// Export resultado de exportar un reporte.
type Export struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ReportUseCase arma los reportes a partir de los repositorios de lectura.
type ReportUseCase struct {
	repos     repository.TxRepositories
	renderers map[string]Renderer
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. renderers se indexa por formato (pdf, xlsx).
func NewReportUseCase(repos repository.TxRepositories, renderers map[string]Renderer) *ReportUseCase {
	return &ReportUseCase{repos: repos, renderers: renderers, now: time.Now}
}

// Orders reporte de órdenes por rango de creación y estado.
func (uc *ReportUseCase) Orders(ctx context.Context, f dto.OrderReportFilter) (*dto.OrderReportResponse, error) {
	from, to, err := dateRange(f.StartDate, f.EndDate)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Orders.List(ctx, repository.OrderFilter{Status: f.Status, CreatedFrom: from, CreatedTo: to})
	if err != nil {
		return nil, err
	}
	out := &dto.OrderReportResponse{Orders: make([]dto.OrderResponse, 0, len(list))}
	total := decimal.Zero
	for _, o := range list {
		out.Orders = append(out.Orders, orders.ToOrderResponse(o))
		out.Summary.TotalQuantity += o.Quantity
		if o.TotalAmount != nil {
			total = total.Add(*o.TotalAmount)
		}
	}
	out.Summary.TotalOrders = len(list)
	out.Summary.TotalAmount = total.Round(2)
	return out, nil
}

// Inventory reporte de artículos por categoría y estado derivado.
func (uc *ReportUseCase) Inventory(ctx context.Context, f dto.InventoryReportFilter) (*dto.InventoryReportResponse, error) {
	list, err := uc.repos.Items.List(ctx, repository.StockFilter{Category: f.Category, Status: entity.StockStatus(f.Status)})
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryReportResponse{Items: make([]dto.InventoryItemResponse, 0, len(list))}
	total := decimal.Zero
	for _, it := range list {
		out.Items = append(out.Items, inventory.ToItemResponse(it))
		if it.UnitCost != nil {
			total = total.Add(it.CurrentStock.Mul(*it.UnitCost))
		}
	}
	out.Summary.TotalItems = len(list)
	out.Summary.TotalValue = total.Round(2)
	return out, nil
}

// PurchaseOrders reporte de compras por rango de order_date, estado y proveedor.
func (uc *ReportUseCase) PurchaseOrders(ctx context.Context, f dto.PurchaseOrderReportFilter) (*dto.PurchaseOrderReportResponse, error) {
	from, to, err := dateRange(f.StartDate, f.EndDate)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.PurchaseOrders.List(ctx, repository.PurchaseOrderFilter{
		Status: f.Status, Supplier: f.Supplier, OrderedFrom: from, OrderedTo: to,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseOrderReportResponse{PurchaseOrders: make([]dto.PurchaseOrderResponse, 0, len(list))}
	total := decimal.Zero
	for _, po := range list {
		out.PurchaseOrders = append(out.PurchaseOrders, purchasing.ToPurchaseOrderResponse(po))
		total = total.Add(po.TotalCost)
	}
	out.Summary.TotalPurchaseOrders = len(list)
	out.Summary.TotalCost = total.Round(2)
	return out, nil
}

// Export renderiza doc en el formato pedido.
func (uc *ReportUseCase) Export(ctx context.Context, format, name string, doc *Document) (*Export, error) {
	r, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato de reporte %q", domain.ErrInvalidInput, format)
	}
	doc.GeneratedAt = uc.now()
	content, err := r.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("reporte %s: %w", format, err)
	}
	return &Export{
		Content:     content,
		ContentType: r.ContentType(),
		Filename:    fmt.Sprintf("%s_%s.%s", name, doc.GeneratedAt.Format("20060102"), r.Extension()),
	}, nil
}

// OrdersDocument tabla exportable del reporte de órdenes.
func OrdersDocument(rep *dto.OrderReportResponse, f dto.OrderReportFilter) *Document {
	doc := &Document{
		Title:    "Reporte de órdenes",
		Subtitle: describeFilters("Desde", f.StartDate, "Hasta", f.EndDate, "Estado", f.Status),
		Columns: []Column{
			{Header: "Orden", Width: 2},
			{Header: "Cliente", Width: 2},
			{Header: "Producto", Width: 2},
			{Header: "Cant.", Width: 1, AlignRight: true},
			{Header: "Total", Width: 2, AlignRight: true},
			{Header: "Estado", Width: 2},
			{Header: "Entrega", Width: 1},
		},
	}
	for _, o := range rep.Orders {
		doc.Rows = append(doc.Rows, []string{
			o.Code, o.CustomerName, o.Product, strconv.Itoa(o.Quantity), money(o.TotalAmount), o.Status, o.Deadline,
		})
	}
	doc.Summary = []SummaryLine{
		{Label: "Total órdenes", Value: strconv.Itoa(rep.Summary.TotalOrders)},
		{Label: "Cantidad total", Value: strconv.Itoa(rep.Summary.TotalQuantity)},
		{Label: "Monto total", Value: rep.Summary.TotalAmount.StringFixed(2)},
	}
	return doc
}

// InventoryDocument tabla exportable del reporte de inventario.
func InventoryDocument(rep *dto.InventoryReportResponse, f dto.InventoryReportFilter) *Document {
	doc := &Document{
		Title:    "Reporte de inventario",
		Subtitle: describeFilters("Categoría", f.Category, "Estado", f.Status),
		Columns: []Column{
			{Header: "Código", Width: 2},
			{Header: "Artículo", Width: 3},
			{Header: "Categoría", Width: 2},
			{Header: "Stock", Width: 1, AlignRight: true},
			{Header: "Mín.", Width: 1, AlignRight: true},
			{Header: "Costo", Width: 1, AlignRight: true},
			{Header: "Estado", Width: 2},
		},
	}
	for _, it := range rep.Items {
		doc.Rows = append(doc.Rows, []string{
			it.Code, it.Name, it.Category, it.CurrentStock.String() + " " + it.Unit, it.MinLevel.String(), money(it.UnitCost), it.Status,
		})
	}
	doc.Summary = []SummaryLine{
		{Label: "Total artículos", Value: strconv.Itoa(rep.Summary.TotalItems)},
		{Label: "Valor total", Value: rep.Summary.TotalValue.StringFixed(2)},
	}
	return doc
}

// PurchaseOrdersDocument tabla exportable del reporte de compras.
func PurchaseOrdersDocument(rep *dto.PurchaseOrderReportResponse, f dto.PurchaseOrderReportFilter) *Document {
	doc := &Document{
		Title:    "Reporte de órdenes de compra",
		Subtitle: describeFilters("Desde", f.StartDate, "Hasta", f.EndDate, "Estado", f.Status, "Proveedor", f.Supplier),
		Columns: []Column{
			{Header: "OC", Width: 1},
			{Header: "Material", Width: 3},
			{Header: "Proveedor", Width: 2},
			{Header: "Cant.", Width: 1, AlignRight: true},
			{Header: "Costo total", Width: 2, AlignRight: true},
			{Header: "Fecha", Width: 2},
			{Header: "Estado", Width: 1},
		},
	}
	for _, po := range rep.PurchaseOrders {
		doc.Rows = append(doc.Rows, []string{
			po.Code, po.MaterialName, po.Supplier, po.Quantity.String() + " " + po.Unit,
			po.TotalCost.StringFixed(2), po.OrderDate, po.Status,
		})
	}
	doc.Summary = []SummaryLine{
		{Label: "Total órdenes de compra", Value: strconv.Itoa(rep.Summary.TotalPurchaseOrders)},
		{Label: "Costo total", Value: rep.Summary.TotalCost.StringFixed(2)},
	}
	return doc
}

// dateRange convierte las fechas YYYY-MM-DD en límites inclusivos [inicio del día, fin del día].
func dateRange(start, end string) (from, to *time.Time, err error) {
	if start != "" {
		d, err := time.Parse(dto.DateLayout, start)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, start)
		}
		from = &d
	}
	if end != "" {
		d, err := time.Parse(dto.DateLayout, end)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, end)
		}
		d = d.Add(24*time.Hour - time.Nanosecond)
		to = &d
	}
	return from, to, nil
}

func money(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.StringFixed(2)
}

// describeFilters arma "Etiqueta: valor" para los filtros no vacíos (pares etiqueta, valor).
func describeFilters(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			parts = append(parts, pairs[i]+": "+pairs[i+1])
		}
	}
	if len(parts) == 0 {
		return "Sin filtros"
	}
	return strings.Join(parts, "  |  ")
}
