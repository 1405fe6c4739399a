package handlers

import (
	"net/http"
	"strconv"

	"backoffice-service/internal/dto"
	"backoffice-service/internal/models"
	"backoffice-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BackofficeHandler struct {
	svc service.Backoffice
	log *zap.Logger
}

func NewBackofficeHandler(svc service.Backoffice, log *zap.Logger) *BackofficeHandler {
	return &BackofficeHandler{
		svc: svc,
		log: log,
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ListTableNames GET /api/v1/tables
func (h *BackofficeHandler) ListTableNames(c *gin.Context) {
	names := make([]string, 0, len(service.Tables))
	for _, t := range service.Tables {
		names = append(names, string(t))
	}
	c.JSON(http.StatusOK, gin.H{"tables": names})
}

// ListTable GET /api/v1/tables/:name?limit=N
func (h *BackofficeHandler) ListTable(c *gin.Context) {
	table, err := service.ParseTable(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("unknown table "+c.Param("name")))
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		badRequest(c, h.log, "limit must be a non-negative integer", nil)
		return
	}

	rows, err := h.svc.ListTable(c.Request.Context(), table, limit)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.TableListResponse{Table: string(table), Rows: rows})
}

// CreateCustomer POST /api/v1/customers
func (h *BackofficeHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}

	cust, err := h.svc.CreateCustomer(c.Request.Context(), service.CreateCustomerInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: cust.CustomerID})
}

// DeleteCustomer DELETE /api/v1/customers/:id
func (h *BackofficeHandler) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, h.log, "invalid customer id", nil)
		return
	}
	if err := h.svc.DeleteCustomer(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateProduct POST /api/v1/products
func (h *BackofficeHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}

	p, err := h.svc.CreateProduct(c.Request.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		SKU:         req.SKU,
		StockQty:    req.StockQty,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: p.ProductID})
}

// DeleteProduct DELETE /api/v1/products/:id
func (h *BackofficeHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, h.log, "invalid product id", nil)
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignCategory POST /api/v1/products/:id/categories
func (h *BackofficeHandler) AssignCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, h.log, "invalid product id", nil)
		return
	}
	var req dto.AssignCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	if err := h.svc.AssignCategory(c.Request.Context(), id, req.CategoryID); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateCategory POST /api/v1/categories
func (h *BackofficeHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	cat, err := h.svc.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: cat.CategoryID})
}

// PlaceOrder POST /api/v1/orders
func (h *BackofficeHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}

	items := make([]service.PlaceOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.PlaceOrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: *it.UnitPrice,
		})
	}

	order, err := h.svc.PlaceOrder(c.Request.Context(), service.PlaceOrderInput{
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.PlaceOrderResponse{
		OrderID:     order.OrderID,
		TotalAmount: order.TotalAmount.StringFixed(2),
		Status:      order.Status,
	})
}

// GetOrder GET /api/v1/orders/:id
func (h *BackofficeHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, h.log, "invalid order id", nil)
		return
	}
	details, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// UpdateOrderStatus PATCH /api/v1/orders/:id/status
func (h *BackofficeHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, h.log, "invalid order id", nil)
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	next, valid := models.ParseOrderStatus(req.Status)
	if !valid {
		badRequest(c, h.log, "unknown order status "+req.Status, nil)
		return
	}

	order, err := h.svc.UpdateOrderStatus(c.Request.Context(), id, next)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder DELETE /api/v1/orders/:id
func (h *BackofficeHandler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, h.log, "invalid order id", nil)
		return
	}
	if err := h.svc.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard GET /api/v1/analytics/dashboard
func (h *BackofficeHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
