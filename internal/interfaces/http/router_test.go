package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/factory-api/internal/application/activity"
	appanalytics "github.com/jhoicas/factory-api/internal/application/analytics"
	"github.com/jhoicas/factory-api/internal/application/auth"
	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/inventory"
	"github.com/jhoicas/factory-api/internal/application/orders"
	"github.com/jhoicas/factory-api/internal/application/purchasing"
	"github.com/jhoicas/factory-api/internal/application/reports"
	"github.com/jhoicas/factory-api/internal/application/seed"
	"github.com/jhoicas/factory-api/internal/application/usecase"
	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/internal/infrastructure/memory"
	infraxlsx "github.com/jhoicas/factory-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/factory-api/internal/interfaces/http"
	"github.com/jhoicas/factory-api/pkg/logger"
)

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	log := logger.Nop()
	gen := identifier.NewGenerator()

	authUC := auth.NewAuthUseCase(repos, store, gen, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	}).WithBcryptCost(bcrypt.MinCost)
	seeder := seed.NewSeeder(authUC, store, gen, log)
	require.NoError(t, seeder.EnsureDefaultUsers(context.Background(), seed.Passwords{Admin: "password", Manager: "manager123"}))

	ledger := inventory.NewStockLedger(store)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:          authUC,
		UserUC:          usecase.NewUserUseCase(repos, store).WithBcryptCost(bcrypt.MinCost),
		OrderUC:         orders.NewOrderUseCase(repos, store, gen, log),
		ItemUC:          inventory.NewItemUseCase(repos, store, ledger, gen),
		MaterialUC:      inventory.NewMaterialUseCase(repos, store, ledger, gen),
		PurchaseOrderUC: purchasing.NewPurchaseOrderUseCase(repos, store, gen),
		ActivityUC:      activity.NewQueryUseCase(repos.Activity),
		Recorder:        activity.NewRecorder(repos.Activity, log),
		DashboardUC:     appanalytics.NewDashboardUseCase(store.Analytics(), repos.Activity),
		LookupUC:        appanalytics.NewLookupUseCase(store.Analytics()),
		ReportUC:        reports.NewReportUseCase(repos, map[string]reports.Renderer{dto.ReportFormatXLSX: infraxlsx.NewExcelRenderer()}),
		Seeder:          seeder,
		AppName:         "factory-api-test",
		JWTSecret:       testJWTSecret,
	})
	return &testServer{app: app, store: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": username, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/health", "/api/health", "/api"} {
		resp := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var verr dto.ErrorResponse
	decode(t, resp, &verr)
	assert.Equal(t, "VALIDATION", verr.Code)
	assert.Equal(t, "required", verr.Fields["password"])

	// login por código de usuario
	token := s.login(t, "USR-002", "manager123")
	resp = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	decode(t, resp, &me)
	assert.Equal(t, "manager", me.Username)
	assert.NotNil(t, me.LastLogin)

	entries, total, err := s.store.Repositories().Activity.List(context.Background(), repository.ActivityLogFilter{Action: "login", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, me.ID, entries[0].UserID)
}

func TestOrders_RolesAndStatusFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "password")
	manager := s.login(t, "manager", "manager123")

	req := fiber.Map{"customer_name": "Acme", "product": "Widget", "quantity": 10, "unit_price": "2.50", "deadline": "2025-06-01"}

	resp := s.do(t, http.MethodPost, "/api/orders", manager, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/orders", admin, fiber.Map{"product": "Widget", "quantity": 0, "deadline": "01/06/2025"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var verr dto.ErrorResponse
	decode(t, resp, &verr)
	assert.Contains(t, verr.Fields, "customer_name")
	assert.Contains(t, verr.Fields, "deadline")

	resp = s.do(t, http.MethodPost, "/api/orders", admin, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order dto.OrderResponse
	decode(t, resp, &order)
	assert.Equal(t, "ORD-0001", order.Code)
	assert.Equal(t, "yet-to-process", order.Status)
	require.NotNil(t, order.TotalAmount)
	assert.Equal(t, "25", order.TotalAmount.String())

	// el manager solo cambia el estado
	resp = s.do(t, http.MethodPut, "/api/orders/"+order.ID, manager, fiber.Map{"customer_name": "Other", "status": "processing"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.OrderResponse
	decode(t, resp, &updated)
	assert.Equal(t, "Acme", updated.CustomerName)
	assert.Equal(t, "processing", updated.Status)

	resp = s.do(t, http.MethodPatch, "/api/orders/"+order.ID+"/status", manager, fiber.Map{"status": "processing", "comment": "sigue"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/orders/"+order.ID, manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.OrderDetailResponse
	decode(t, resp, &detail)
	require.Len(t, detail.StatusHistory, 2)
	assert.Equal(t, "processing", detail.StatusHistory[1].OldStatus)
	assert.Equal(t, "sigue", detail.StatusHistory[1].Comment)

	// "" es un estado válido; la ausencia de la clave no
	resp = s.do(t, http.MethodPatch, "/api/orders/"+order.ID+"/status", manager, fiber.Map{"status": ""})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st dto.OrderStatusResponse
	decode(t, resp, &st)
	assert.Equal(t, "", st.Order.Status)
	assert.Equal(t, "processing", st.History.OldStatus)

	resp = s.do(t, http.MethodPatch, "/api/orders/"+order.ID+"/status", manager, fiber.Map{"comment": "sin estado"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &verr)
	assert.Equal(t, "required", verr.Fields["status"])
}

func TestNonUUIDPathIDIsNotFound(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "password")

	for _, path := range []string{"/api/orders/missing", "/api/inventory/42", "/api/raw-materials/abc", "/api/purchase-orders/x", "/api/users/nope"} {
		resp := s.do(t, http.MethodGet, path, admin, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		var e dto.ErrorResponse
		decode(t, resp, &e)
		assert.Equal(t, "NOT_FOUND", e.Code, path)
	}

	resp := s.do(t, http.MethodPost, "/api/purchase-orders/not-a-uuid/receive", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestInventory_AdjustThroughLedger(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "password")

	resp := s.do(t, http.MethodPost, "/api/inventory", admin, fiber.Map{
		"item_name": "Bolt", "category": "Hardware", "current_stock": 100, "min_level": 20, "unit": "pcs",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item dto.InventoryItemResponse
	decode(t, resp, &item)
	assert.Equal(t, "ITM-0001", item.Code)

	resp = s.do(t, http.MethodPost, "/api/inventory/"+item.ID+"/adjust", admin, fiber.Map{
		"movement_type": "remove", "quantity": 150, "reason": "venta",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)

	resp = s.do(t, http.MethodPost, "/api/inventory/"+item.ID+"/adjust", admin, fiber.Map{
		"movement_type": "transfer", "quantity": 1, "reason": "x",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &e)
	assert.Equal(t, "INVALID_MOVEMENT_TYPE", e.Code)

	resp = s.do(t, http.MethodPost, "/api/inventory/"+item.ID+"/adjust", admin, fiber.Map{
		"movement_type": "remove", "quantity": 90, "reason": "venta",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adj dto.AdjustInventoryItemResponse
	decode(t, resp, &adj)
	assert.Equal(t, "10", adj.Item.CurrentStock.String())
	assert.Equal(t, "low-stock", adj.Item.Status)
	assert.Equal(t, "100", adj.Movement.PreviousStock.String())

	resp = s.do(t, http.MethodGet, "/api/inventory/"+item.ID, admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.InventoryItemDetailResponse
	decode(t, resp, &detail)
	assert.Len(t, detail.StockMovements, 1)

	resp = s.do(t, http.MethodGet, "/api/inventory?status=low-stock", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.InventoryItemResponse
	decode(t, resp, &list)
	assert.Len(t, list, 1)
}

func TestPurchaseOrders_ReceiveOnce(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "password")

	resp := s.do(t, http.MethodPost, "/api/purchase-orders", admin, fiber.Map{
		"material_name": "Copper Wire", "category": "Metals", "quantity": 30, "unit": "kg", "unit_price": "4",
		"supplier": "Copper Inc", "order_date": "2025-01-10", "expected_delivery": "2025-01-20",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var po dto.PurchaseOrderResponse
	decode(t, resp, &po)
	assert.Equal(t, "PO-0001", po.Code)

	resp = s.do(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec dto.ReceivePurchaseOrderResponse
	decode(t, resp, &rec)
	assert.Equal(t, "received", rec.PurchaseOrder.Status)
	assert.Equal(t, "MAT-0001", rec.Material.Code)
	assert.Equal(t, "30", rec.Material.CurrentStock.String())

	resp = s.do(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", admin, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "ALREADY_RECEIVED", e.Code)
}

func TestReports_ExportAndValidation(t *testing.T) {
	s := newTestServer(t)
	manager := s.login(t, "manager", "manager123")

	resp := s.do(t, http.MethodGet, "/api/reports/inventory?format=xlsx", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventory_report_")
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/reports/orders?format=csv", manager, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// pdf es un formato válido pero sin renderer configurado en esta prueba
	resp = s.do(t, http.MethodGet, "/api/reports/orders?format=pdf", manager, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/reports/orders", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rep dto.OrderReportResponse
	decode(t, resp, &rep)
	assert.Equal(t, 0, rep.Summary.TotalOrders)
	assert.NotNil(t, rep.Orders)
}

func TestSeedDataAndDashboard(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "password")
	manager := s.login(t, "manager", "manager123")

	resp := s.do(t, http.MethodPost, "/api/seed-data", manager, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/seed-data", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/dashboard/stats", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats dto.DashboardStatsResponse
	decode(t, resp, &stats)
	assert.Equal(t, 2, stats.Orders.Total)
	assert.Equal(t, 3, stats.Inventory.Total)
	assert.Equal(t, 1, stats.Inventory.LowStock)
	assert.Equal(t, 1, stats.PurchaseOrders.Pending)

	resp = s.do(t, http.MethodGet, "/api/dashboard/charts/inventory-status", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var chart dto.ChartResponse
	decode(t, resp, &chart)
	assert.Equal(t, []int{2, 1, 0}, chart.Data)

	resp = s.do(t, http.MethodGet, "/api/categories", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cats dto.CategoriesResponse
	decode(t, resp, &cats)
	assert.Equal(t, []string{"Components", "Finished Goods", "Metals", "Plastics"}, cats.Categories)

	resp = s.do(t, http.MethodGet, "/api/activity-logs?per_page=5", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.ActivityLogPage
	decode(t, resp, &page)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, "Sample Data Seeded", page.Logs[0].Action)

	resp = s.do(t, http.MethodGet, "/api/activity-logs", manager, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestUsers_LastAdminGuard(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "password")

	resp := s.do(t, http.MethodGet, "/api/auth/me", admin, nil)
	var me dto.UserResponse
	decode(t, resp, &me)

	resp = s.do(t, http.MethodDelete, "/api/users/"+me.ID, admin, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "LAST_ADMIN", e.Code)

	resp = s.do(t, http.MethodPost, "/api/auth/register", admin, fiber.Map{
		"username": "manager", "email": "x@factory.com", "password": "secret1", "full_name": "X", "role": "manager",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	decode(t, resp, &e)
	assert.Equal(t, "USERNAME_EXISTS", e.Code)
}
