package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	CustomerID int64     `gorm:"column:customer_id;primaryKey;autoIncrement" json:"customer_id"`
	FullName   string    `gorm:"type:varchar(200);not null" json:"full_name"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_customers_email" json:"email"`
	Phone      *string   `gorm:"type:varchar(30)" json:"phone,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Customer) TableName() string { return "customers" }

type Product struct {
	ProductID   int64           `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	Name        string          `gorm:"type:varchar(200);not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	SKU         string          `gorm:"column:sku;type:varchar(100);not null;uniqueIndex:ux_products_sku" json:"sku"`
	StockQty    int32           `gorm:"column:stock_qty;not null;default:0" json:"stock_qty"` // CHECK >= 0 в схеме
	CreatedAt   time.Time       `gorm:"not null;default:now()" json:"created_at"`
}

func (Product) TableName() string { return "products" }

type Category struct {
	CategoryID int64  `gorm:"column:category_id;primaryKey;autoIncrement" json:"category_id"`
	Name       string `gorm:"type:varchar(100);not null;uniqueIndex:ux_categories_name" json:"name"`
}

func (Category) TableName() string { return "categories" }

// ProductCategory is the many-to-many join; both sides cascade.
type ProductCategory struct {
	ProductID  int64 `gorm:"column:product_id;primaryKey;autoIncrement:false" json:"product_id"`
	CategoryID int64 `gorm:"column:category_id;primaryKey;autoIncrement:false" json:"category_id"`
}

func (ProductCategory) TableName() string { return "product_categories" }

type Order struct {
	OrderID     int64           `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	CustomerID  int64           `gorm:"column:customer_id;not null;index" json:"customer_id"`
	OrderDate   time.Time       `gorm:"column:order_date;not null;default:now()" json:"order_date"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null;default:0" json:"total_amount"`
	Status      OrderStatus     `gorm:"type:text;not null;default:'pending';index" json:"status"`
}

func (Order) TableName() string { return "orders" }

// OrderItem.UnitPrice is captured at placement time, not read from products.
type OrderItem struct {
	OrderItemID int64           `gorm:"column:order_item_id;primaryKey;autoIncrement" json:"order_item_id"`
	OrderID     int64           `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID   int64           `gorm:"column:product_id;not null;index" json:"product_id"`
	Quantity    int32           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unit_price"`
}

func (OrderItem) TableName() string { return "order_items" }

func (it OrderItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt32(it.Quantity))
}
