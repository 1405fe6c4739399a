package service

import (
	"context"
	"time"

	"backoffice-service/internal/models"

	"github.com/shopspring/decimal"
)

type OrderItemEvent struct {
	ProductID int64           `json:"product_id"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type OrderPlacedEvent struct {
	OrderID     int64            `json:"order_id"`
	CustomerID  int64            `json:"customer_id"`
	Items       []OrderItemEvent `json:"items"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	OrderDate   time.Time        `json:"order_date"`
}

type OrderStatusChangedEvent struct {
	OrderID   int64              `json:"order_id"`
	From      models.OrderStatus `json:"from"`
	To        models.OrderStatus `json:"to"`
	Restocked bool               `json:"restocked"`
	ChangedAt time.Time          `json:"changed_at"`
}

// EventBus is notified after a transaction commits. A nil bus disables
// publishing.
type EventBus interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}
