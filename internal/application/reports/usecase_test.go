package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/infrastructure/memory"
)

type stubRenderer struct {
	got *Document
	err error
}

func (s *stubRenderer) Render(_ context.Context, doc *Document) ([]byte, error) {
	s.got = doc
	return []byte("ok"), s.err
}
func (s *stubRenderer) ContentType() string { return "text/plain" }
func (s *stubRenderer) Extension() string   { return "txt" }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(s string, h int) time.Time {
	d, _ := time.Parse(dto.DateLayout, s)
	return d.Add(time.Duration(h) * time.Hour)
}

func seedOrders(t *testing.T, store *memory.Store) {
	ctx := context.Background()
	repos := store.Repositories()
	orders := []*entity.Order{
		{ID: "o1", Code: "ORD-0001", CustomerName: "Acme", Product: "Bolts", Quantity: 10, UnitPrice: dec("2"), TotalAmount: dec("20"), Status: entity.OrderStatusProcessing, CreatedAt: day("2025-01-05", 9)},
		{ID: "o2", Code: "ORD-0002", CustomerName: "Globex", Product: "Nuts", Quantity: 5, Status: entity.OrderStatusProcessing, CreatedAt: day("2025-01-10", 23)},
		{ID: "o3", Code: "ORD-0003", CustomerName: "Initech", Product: "Gears", Quantity: 1, UnitPrice: dec("100"), TotalAmount: dec("100"), Status: entity.OrderStatusCompleted, CreatedAt: day("2025-02-01", 8)},
	}
	for _, o := range orders {
		require.NoError(t, repos.Orders.Create(ctx, o))
	}
}

func TestOrders_FiltersByInclusiveRange(t *testing.T) {
	store := memory.NewStore()
	seedOrders(t, store)
	uc := NewReportUseCase(store.Repositories(), nil)

	rep, err := uc.Orders(context.Background(), dto.OrderReportFilter{StartDate: "2025-01-01", EndDate: "2025-01-10"})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Summary.TotalOrders)
	assert.Equal(t, 15, rep.Summary.TotalQuantity)
	assert.True(t, rep.Summary.TotalAmount.Equal(decimal.NewFromInt(20)))

	rep, err = uc.Orders(context.Background(), dto.OrderReportFilter{Status: "completed"})
	require.NoError(t, err)
	require.Len(t, rep.Orders, 1)
	assert.Equal(t, "ORD-0003", rep.Orders[0].Code)
}

func TestOrders_InvalidDate(t *testing.T) {
	uc := NewReportUseCase(memory.NewStore().Repositories(), nil)
	_, err := uc.Orders(context.Background(), dto.OrderReportFilter{StartDate: "01/01/2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInventory_ValueSkipsUnknownCost(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{
		ID: "i1", Code: "ITM-0001", Name: "Bolt", Category: "Hardware", CurrentStock: decimal.NewFromInt(10), MinLevel: decimal.NewFromInt(5), UnitCost: dec("1.5"),
	}))
	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{
		ID: "i2", Code: "ITM-0002", Name: "Panel", Category: "Hardware", CurrentStock: decimal.NewFromInt(3), MinLevel: decimal.NewFromInt(5),
	}))
	uc := NewReportUseCase(repos, nil)

	rep, err := uc.Inventory(ctx, dto.InventoryReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Summary.TotalItems)
	assert.True(t, rep.Summary.TotalValue.Equal(decimal.NewFromInt(15)))

	rep, err = uc.Inventory(ctx, dto.InventoryReportFilter{Status: "low-stock"})
	require.NoError(t, err)
	require.Len(t, rep.Items, 1)
	assert.Equal(t, "ITM-0002", rep.Items[0].Code)
}

func TestPurchaseOrders_SummarisesCost(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	for i, supplier := range []string{"Steel Co", "Copper Inc"} {
		po := &entity.PurchaseOrder{
			ID: supplier, Code: []string{"PO-0001", "PO-0002"}[i], MaterialName: "Metal", Quantity: decimal.NewFromInt(10),
			UnitPrice: decimal.NewFromInt(int64(i + 1)), Supplier: supplier, Status: entity.PurchaseOrderOrdered,
			OrderDate: day("2025-03-01", 0),
		}
		po.RecalculateTotal()
		require.NoError(t, repos.PurchaseOrders.Create(ctx, po))
	}
	uc := NewReportUseCase(repos, nil)

	rep, err := uc.PurchaseOrders(ctx, dto.PurchaseOrderReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Summary.TotalPurchaseOrders)
	assert.True(t, rep.Summary.TotalCost.Equal(decimal.NewFromInt(30)))

	rep, err = uc.PurchaseOrders(ctx, dto.PurchaseOrderReportFilter{Supplier: "steel"})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Summary.TotalPurchaseOrders)
}

func TestExport(t *testing.T) {
	stub := &stubRenderer{}
	uc := NewReportUseCase(memory.NewStore().Repositories(), map[string]Renderer{"txt": stub})
	uc.now = func() time.Time { return time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC) }

	rep := &dto.OrderReportResponse{Orders: []dto.OrderResponse{{Code: "ORD-0001", Quantity: 2}}}
	out, err := uc.Export(context.Background(), "txt", "orders_report", OrdersDocument(rep, dto.OrderReportFilter{Status: "processing"}))
	require.NoError(t, err)
	assert.Equal(t, "orders_report_20250402.txt", out.Filename)
	assert.Equal(t, "text/plain", out.ContentType)
	require.NotNil(t, stub.got)
	assert.Equal(t, "Estado: processing", stub.got.Subtitle)
	assert.Equal(t, "-", stub.got.Rows[0][4])

	_, err = uc.Export(context.Background(), "csv", "orders_report", &Document{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stub.err = errors.New("boom")
	_, err = uc.Export(context.Background(), "txt", "orders_report", &Document{})
	assert.Error(t, err)
}

func TestDocuments_ColumnWidthsFillGrid(t *testing.T) {
	docs := []*Document{
		OrdersDocument(&dto.OrderReportResponse{}, dto.OrderReportFilter{}),
		InventoryDocument(&dto.InventoryReportResponse{}, dto.InventoryReportFilter{}),
		PurchaseOrdersDocument(&dto.PurchaseOrderReportResponse{}, dto.PurchaseOrderReportFilter{}),
	}
	for _, d := range docs {
		sum := 0
		for _, c := range d.Columns {
			sum += c.Width
		}
		assert.Equal(t, 12, sum, d.Title)
		assert.Equal(t, "Sin filtros", d.Subtitle)
	}
}
