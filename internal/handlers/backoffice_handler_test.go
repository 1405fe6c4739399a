package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice-service/internal/analytics"
	"backoffice-service/internal/models"
	"backoffice-service/internal/router"
	"backoffice-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBackoffice: each method delegates to its Func field when set.
type MockBackoffice struct {
	CreateCustomerFunc    func(ctx context.Context, in service.CreateCustomerInput) (*models.Customer, error)
	CreateProductFunc     func(ctx context.Context, in service.CreateProductInput) (*models.Product, error)
	CreateCategoryFunc    func(ctx context.Context, name string) (*models.Category, error)
	AssignCategoryFunc    func(ctx context.Context, productID, categoryID int64) error
	DeleteCustomerFunc    func(ctx context.Context, id int64) error
	DeleteProductFunc     func(ctx context.Context, id int64) error
	PlaceOrderFunc        func(ctx context.Context, in service.PlaceOrderInput) (*models.Order, error)
	GetOrderFunc          func(ctx context.Context, id int64) (*service.OrderDetails, error)
	UpdateOrderStatusFunc func(ctx context.Context, id int64, next models.OrderStatus) (*models.Order, error)
	DeleteOrderFunc       func(ctx context.Context, id int64) error
	ListTableFunc         func(ctx context.Context, table service.Table, limit int) (any, error)
	DashboardFunc         func(ctx context.Context) (analytics.Dashboard, error)
}

func (m *MockBackoffice) CreateCustomer(ctx context.Context, in service.CreateCustomerInput) (*models.Customer, error) {
	if m.CreateCustomerFunc != nil {
		return m.CreateCustomerFunc(ctx, in)
	}
	return &models.Customer{CustomerID: 1}, nil
}

func (m *MockBackoffice) CreateProduct(ctx context.Context, in service.CreateProductInput) (*models.Product, error) {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, in)
	}
	return &models.Product{ProductID: 1}, nil
}

func (m *MockBackoffice) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, name)
	}
	return &models.Category{CategoryID: 1, Name: name}, nil
}

func (m *MockBackoffice) AssignCategory(ctx context.Context, productID, categoryID int64) error {
	if m.AssignCategoryFunc != nil {
		return m.AssignCategoryFunc(ctx, productID, categoryID)
	}
	return nil
}

func (m *MockBackoffice) DeleteCustomer(ctx context.Context, id int64) error {
	if m.DeleteCustomerFunc != nil {
		return m.DeleteCustomerFunc(ctx, id)
	}
	return nil
}

func (m *MockBackoffice) DeleteProduct(ctx context.Context, id int64) error {
	if m.DeleteProductFunc != nil {
		return m.DeleteProductFunc(ctx, id)
	}
	return nil
}

func (m *MockBackoffice) PlaceOrder(ctx context.Context, in service.PlaceOrderInput) (*models.Order, error) {
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx, in)
	}
	return &models.Order{OrderID: 1, Status: models.OrderStatusPending}, nil
}

func (m *MockBackoffice) GetOrder(ctx context.Context, id int64) (*service.OrderDetails, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, id)
	}
	return &service.OrderDetails{Order: models.Order{OrderID: id}}, nil
}

func (m *MockBackoffice) UpdateOrderStatus(ctx context.Context, id int64, next models.OrderStatus) (*models.Order, error) {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, id, next)
	}
	return &models.Order{OrderID: id, Status: next}, nil
}

func (m *MockBackoffice) DeleteOrder(ctx context.Context, id int64) error {
	if m.DeleteOrderFunc != nil {
		return m.DeleteOrderFunc(ctx, id)
	}
	return nil
}

func (m *MockBackoffice) ListCustomers(ctx context.Context, limit int) ([]models.Customer, error) {
	return []models.Customer{}, nil
}

func (m *MockBackoffice) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return []models.Product{}, nil
}

func (m *MockBackoffice) ListCategories(ctx context.Context, limit int) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (m *MockBackoffice) ListProductCategories(ctx context.Context, limit int) ([]models.ProductCategory, error) {
	return []models.ProductCategory{}, nil
}

func (m *MockBackoffice) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (m *MockBackoffice) ListOrderItems(ctx context.Context, limit int) ([]models.OrderItem, error) {
	return []models.OrderItem{}, nil
}

func (m *MockBackoffice) ListTable(ctx context.Context, table service.Table, limit int) (any, error) {
	if m.ListTableFunc != nil {
		return m.ListTableFunc(ctx, table, limit)
	}
	return []any{}, nil
}

func (m *MockBackoffice) Dashboard(ctx context.Context) (analytics.Dashboard, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx)
	}
	return analytics.Dashboard{OrdersByStatus: []analytics.StatusCount{}, TopProducts: []analytics.ProductQuantity{}}, nil
}

type okPinger struct{ err error }

func (p okPinger) Ping(context.Context) error { return p.err }

func newTestRouter(svc service.Backoffice) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return router.Router(svc, okPinger{}, zap.NewNop())
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestPlaceOrder_Success(t *testing.T) {
	var got service.PlaceOrderInput
	mock := &MockBackoffice{
		PlaceOrderFunc: func(ctx context.Context, in service.PlaceOrderInput) (*models.Order, error) {
			got = in
			return &models.Order{
				OrderID:     10,
				CustomerID:  in.CustomerID,
				TotalAmount: decimal.RequireFromString("29.97"),
				Status:      models.OrderStatusPending,
			}, nil
		},
	}
	r := newTestRouter(mock)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer_id": 1,
		"items": []map[string]any{
			{"product_id": 2, "quantity": 3, "unit_price": "9.99"},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		OrderID     int64  `json:"order_id"`
		TotalAmount string `json:"total_amount"`
		Status      string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.OrderID)
	assert.Equal(t, "29.97", resp.TotalAmount)
	assert.Equal(t, "pending", resp.Status)

	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(2), got.Items[0].ProductID)
	assert.Equal(t, int32(3), got.Items[0].Quantity)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.RequireFromString("9.99")))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestPlaceOrder_EmptyItemsRejectedBeforeService(t *testing.T) {
	called := false
	mock := &MockBackoffice{
		PlaceOrderFunc: func(ctx context.Context, in service.PlaceOrderInput) (*models.Order, error) {
			called = true
			return nil, nil
		},
	}
	r := newTestRouter(mock)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer_id": 1,
		"items":       []any{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeCode(t, rec))
	assert.False(t, called)
}

func TestPlaceOrder_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", fmt.Errorf("%w: item 0", service.ErrUnitPriceInvalid), http.StatusBadRequest, "validation_error"},
		{"missing product", fmt.Errorf("%w: 99", service.ErrProductNotFound), http.StatusUnprocessableEntity, "reference_error"},
		{"missing customer", service.ErrCustomerNotFound, http.StatusUnprocessableEntity, "reference_error"},
		{"stock", service.ErrInsufficientStock, http.StatusConflict, "insufficient_stock"},
		{"constraint", service.ErrConstraint, http.StatusConflict, "conflict"},
		{"storage", fmt.Errorf("%w: timeout", service.ErrStorage), http.StatusServiceUnavailable, "storage_unavailable"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &MockBackoffice{
				PlaceOrderFunc: func(ctx context.Context, in service.PlaceOrderInput) (*models.Order, error) {
					return nil, tc.err
				},
			}
			r := newTestRouter(mock)
			rec := doJSON(t, r, http.MethodPost, "/api/v1/orders", map[string]any{
				"customer_id": 1,
				"items":       []map[string]any{{"product_id": 1, "quantity": 1, "unit_price": 1}},
			})
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decodeCode(t, rec))
		})
	}
}

func TestCreateCustomer(t *testing.T) {
	mock := &MockBackoffice{
		CreateCustomerFunc: func(ctx context.Context, in service.CreateCustomerInput) (*models.Customer, error) {
			assert.Equal(t, "Ada Lovelace", in.FullName)
			return &models.Customer{CustomerID: 5}, nil
		},
	}
	r := newTestRouter(mock)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/customers", map[string]any{
		"full_name": "Ada Lovelace",
		"email":     "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":5}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, "/api/v1/customers", map[string]any{
		"full_name": "No Email",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	mock := &MockBackoffice{
		CreateCustomerFunc: func(ctx context.Context, in service.CreateCustomerInput) (*models.Customer, error) {
			return nil, service.ErrAlreadyExists
		},
	}
	rec := doJSON(t, newTestRouter(mock), http.MethodPost, "/api/v1/customers", map[string]any{
		"full_name": "Ada", "email": "ada@example.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateProduct(t *testing.T) {
	mock := &MockBackoffice{
		CreateProductFunc: func(ctx context.Context, in service.CreateProductInput) (*models.Product, error) {
			assert.True(t, in.Price.Equal(decimal.RequireFromString("12.50")))
			assert.Equal(t, int32(4), in.StockQty)
			return &models.Product{ProductID: 3}, nil
		},
	}
	rec := doJSON(t, newTestRouter(mock), http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Mug", "sku": "MUG-1", "price": 12.5, "stock_qty": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":3}`, rec.Body.String())
}

func TestListTable(t *testing.T) {
	mock := &MockBackoffice{
		ListTableFunc: func(ctx context.Context, table service.Table, limit int) (any, error) {
			assert.Equal(t, service.TableOrders, table)
			assert.Equal(t, 2, limit)
			return []models.Order{{OrderID: 1}, {OrderID: 2}}, nil
		},
	}
	r := newTestRouter(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tables/orders?limit=2", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Table string            `json:"table"`
		Rows  []json.RawMessage `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "orders", resp.Table)
	assert.Len(t, resp.Rows, 2)
}

func TestListTable_UnknownAndBadLimit(t *testing.T) {
	r := newTestRouter(&MockBackoffice{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tables/users", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tables/orders?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTable_StorageDown(t *testing.T) {
	mock := &MockBackoffice{
		ListTableFunc: func(ctx context.Context, table service.Table, limit int) (any, error) {
			return nil, fmt.Errorf("%w: connection refused", service.ErrStorage)
		},
	}
	rec := httptest.NewRecorder()
	newTestRouter(mock).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tables/customers", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	mock := &MockBackoffice{
		UpdateOrderStatusFunc: func(ctx context.Context, id int64, next models.OrderStatus) (*models.Order, error) {
			if next == models.OrderStatusPending {
				return nil, service.ErrInvalidTransition
			}
			return &models.Order{OrderID: id, Status: next}, nil
		},
	}
	r := newTestRouter(mock)

	rec := doJSON(t, r, http.MethodPatch, "/api/v1/orders/7/status", map[string]any{"status": "shipped"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, "/api/v1/orders/7/status", map[string]any{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, "/api/v1/orders/7/status", map[string]any{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, "/api/v1/orders/abc/status", map[string]any{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAndDeleteOrder_NotFound(t *testing.T) {
	mock := &MockBackoffice{
		GetOrderFunc: func(ctx context.Context, id int64) (*service.OrderDetails, error) {
			return nil, service.ErrOrderNotFound
		},
		DeleteOrderFunc: func(ctx context.Context, id int64) error {
			return service.ErrOrderNotFound
		},
	}
	r := newTestRouter(mock)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/3", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/orders/3", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCustomer_Restricted(t *testing.T) {
	mock := &MockBackoffice{
		DeleteCustomerFunc: func(ctx context.Context, id int64) error {
			return service.ErrStillReferenced
		},
	}
	rec := httptest.NewRecorder()
	newTestRouter(mock).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/customers/1", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDashboard_Empty(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&MockBackoffice{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orders_by_status":[],"top_products":[]}`, rec.Body.String())
}

func TestReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := router.Router(&MockBackoffice{}, okPinger{err: fmt.Errorf("down")}, zap.NewNop())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateCustomer_FieldErrors(t *testing.T) {
	r := newTestRouter(&MockBackoffice{})

	rec := doJSON(t, r, http.MethodPost, "/api/v1/customers", map[string]any{
		"full_name": "Ada",
		"email":     "nope",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code   string `json:"code"`
		Fields []struct {
			Field string `json:"field"`
			Tag   string `json:"tag"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Code)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "CreateCustomerRequest.Email", body.Fields[0].Field)
	assert.Equal(t, "email", body.Fields[0].Tag)
}

func TestPlaceOrder_MissingUnitPrice(t *testing.T) {
	called := false
	mock := &MockBackoffice{
		PlaceOrderFunc: func(ctx context.Context, in service.PlaceOrderInput) (*models.Order, error) {
			called = true
			return &models.Order{OrderID: 1}, nil
		},
	}

	rec := doJSON(t, newTestRouter(mock), http.MethodPost, "/api/v1/orders", map[string]any{
		"customer_id": 1,
		"items":       []map[string]any{{"product_id": 1, "quantity": 3}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeCode(t, rec))
	assert.False(t, called, "a line without unit_price must not reach the service")
}

func TestPlaceOrder_ExplicitZeroUnitPrice(t *testing.T) {
	var got service.PlaceOrderInput
	mock := &MockBackoffice{
		PlaceOrderFunc: func(ctx context.Context, in service.PlaceOrderInput) (*models.Order, error) {
			got = in
			return &models.Order{OrderID: 1, Status: models.OrderStatusPending}, nil
		},
	}

	rec := doJSON(t, newTestRouter(mock), http.MethodPost, "/api/v1/orders", map[string]any{
		"customer_id": 1,
		"items":       []map[string]any{{"product_id": 1, "quantity": 1, "unit_price": "0"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].UnitPrice.IsZero())
}

func TestCreateProduct_MissingPrice(t *testing.T) {
	called := false
	mock := &MockBackoffice{
		CreateProductFunc: func(ctx context.Context, in service.CreateProductInput) (*models.Product, error) {
			called = true
			return &models.Product{ProductID: 1}, nil
		},
	}

	rec := doJSON(t, newTestRouter(mock), http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Mug", "sku": "MUG-1", "stock_qty": 4,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeCode(t, rec))
	assert.False(t, called)
}
