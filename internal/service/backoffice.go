package service

import (
	"context"

	"backoffice-service/internal/analytics"
	"backoffice-service/internal/models"

	"github.com/shopspring/decimal"
)

// Limits mirror the column widths of the schema.
type CreateCustomerInput struct {
	FullName string `validate:"required,max=200"`
	Email    string `validate:"required,email,max=255"`
	Phone    string `validate:"max=30"`
}

type CreateProductInput struct {
	Name        string `validate:"required,max=200"`
	Description string
	Price       decimal.Decimal `validate:"-"`
	SKU         string `validate:"required,max=100"`
	StockQty    int32  `validate:"gte=0"`
}

type PlaceOrderItem struct {
	ProductID int64
	Quantity  int32
	UnitPrice decimal.Decimal
}

type PlaceOrderInput struct {
	CustomerID int64
	Items      []PlaceOrderItem
}

// OrderDetails is an order with its items, loaded by explicit queries.
type OrderDetails struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

type Table string

const (
	TableCustomers         Table = "customers"
	TableProducts          Table = "products"
	TableCategories        Table = "categories"
	TableProductCategories Table = "product_categories"
	TableOrders            Table = "orders"
	TableOrderItems        Table = "order_items"
)

var Tables = []Table{
	TableCustomers,
	TableProducts,
	TableCategories,
	TableProductCategories,
	TableOrders,
	TableOrderItems,
}

func ParseTable(name string) (Table, error) {
	for _, t := range Tables {
		if string(t) == name {
			return t, nil
		}
	}
	return "", ErrUnknownTable
}

// DashboardCache stores analytics snapshots keyed by generation.
// InvalidateDashboard moves to a new generation, so a snapshot computed
// before a write and stored after it is never served.
type DashboardCache interface {
	DashboardGeneration(ctx context.Context) (int64, error)
	GetDashboard(ctx context.Context, gen int64) (*analytics.Dashboard, error)
	SetDashboard(ctx context.Context, gen int64, d analytics.Dashboard) error
	InvalidateDashboard(ctx context.Context) error
}

type Backoffice interface {
	// records
	CreateCustomer(ctx context.Context, in CreateCustomerInput) (*models.Customer, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	AssignCategory(ctx context.Context, productID, categoryID int64) error
	DeleteCustomer(ctx context.Context, id int64) error
	DeleteProduct(ctx context.Context, id int64) error

	// orders
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*OrderDetails, error)
	UpdateOrderStatus(ctx context.Context, id int64, next models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	// read views
	ListCustomers(ctx context.Context, limit int) ([]models.Customer, error)
	ListProducts(ctx context.Context, limit int) ([]models.Product, error)
	ListCategories(ctx context.Context, limit int) ([]models.Category, error)
	ListProductCategories(ctx context.Context, limit int) ([]models.ProductCategory, error)
	ListOrders(ctx context.Context, limit int) ([]models.Order, error)
	ListOrderItems(ctx context.Context, limit int) ([]models.OrderItem, error)
	ListTable(ctx context.Context, table Table, limit int) (any, error)

	// analytics
	Dashboard(ctx context.Context) (analytics.Dashboard, error)
}
