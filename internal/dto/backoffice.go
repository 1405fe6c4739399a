package dto

import (
	"backoffice-service/internal/models"

	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	FullName string `json:"full_name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Phone    string `json:"phone" binding:"max=30"`
}

type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	SKU         string           `json:"sku" binding:"required,max=100"`
	StockQty    int32            `json:"stock_qty" binding:"gte=0"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type AssignCategoryRequest struct {
	CategoryID int64 `json:"category_id" binding:"required,gt=0"`
}

type PlaceOrderItemRequest struct {
	ProductID int64            `json:"product_id" binding:"required,gt=0"`
	Quantity  int32            `json:"quantity" binding:"required,gte=1"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"required"`
}

type PlaceOrderRequest struct {
	CustomerID int64                   `json:"customer_id" binding:"required,gt=0"`
	Items      []PlaceOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type PlaceOrderResponse struct {
	OrderID     int64              `json:"order_id"`
	TotalAmount string             `json:"total_amount"`
	Status      models.OrderStatus `json:"status"`
}

type TableListResponse struct {
	Table string `json:"table"`
	Rows  any    `json:"rows"`
}
