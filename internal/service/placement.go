package service

import (
	"context"
	"fmt"
	"slices"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func validatePlacement(in PlaceOrderInput) error {
	if in.CustomerID <= 0 {
		return fmt.Errorf("%w: customer id is required", ErrValidation)
	}
	if len(in.Items) == 0 {
		return ErrEmptyItems
	}
	for i, it := range in.Items {
		if it.ProductID <= 0 {
			return fmt.Errorf("%w: item %d: product id is required", ErrValidation, i)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: item %d", ErrQuantityInvalid, i)
		}
		if !validPrice(it.UnitPrice) {
			return fmt.Errorf("%w: item %d", ErrUnitPriceInvalid, i)
		}
	}
	return nil
}

// PlaceOrder creates the order, its items and the stock decrements in one
// transaction. On any failure nothing of the placement is left behind.
func (s *backofficeService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if err := validatePlacement(in); err != nil {
		return nil, err
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		order *models.Order
		items = make([]models.OrderItem, 0, len(in.Items))
	)

	err := s.repo.WithTx(opCtx, func(tx *repository.Repository) error {
		exists, err := tx.Customers.Exists(opCtx, in.CustomerID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %d", ErrCustomerNotFound, in.CustomerID)
		}

		// итог пишется после вставки всех позиций
		order = &models.Order{
			CustomerID:  in.CustomerID,
			OrderDate:   s.now(),
			TotalAmount: decimal.Zero,
			Status:      models.OrderStatusPending,
		}
		if err := tx.Orders.Create(opCtx, order); err != nil {
			return mapInsertErr(err)
		}

		// Locks are taken in ascending product id order so that two
		// placements over the same products cannot deadlock.
		requested := make(map[int64]int64, len(in.Items))
		for _, line := range in.Items {
			requested[line.ProductID] += int64(line.Quantity)
		}
		ids := make([]int64, 0, len(requested))
		for id := range requested {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		stock := make(map[int64]int32, len(ids))
		for _, id := range ids {
			p, err := tx.Products.GetForUpdate(opCtx, id)
			if err != nil {
				return err
			}
			if p != nil {
				stock[id] = p.StockQty
			}
		}

		total := decimal.Zero
		for i, line := range in.Items {
			have, ok := stock[line.ProductID]
			if !ok {
				return fmt.Errorf("%w: item %d: product %d", ErrProductNotFound, i, line.ProductID)
			}
			if want := requested[line.ProductID]; int64(have) < want {
				return fmt.Errorf("%w: product %d has %d, requested %d", ErrInsufficientStock, line.ProductID, have, want)
			}

			item := models.OrderItem{
				OrderID:   order.OrderID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}
			total = total.Add(item.LineTotal())
			items = append(items, item)
		}

		if err := tx.OrderItems.BulkCreate(opCtx, items); err != nil {
			return mapInsertErr(err)
		}

		for _, id := range ids {
			// requested fits in int32: it is bounded by the locked stock
			ok, err := tx.Products.DecrementStock(opCtx, id, int32(requested[id]))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, id)
			}
		}

		total = total.Round(2)
		stored, err := tx.OrderItems.SumByOrder(opCtx, order.OrderID)
		if err != nil {
			return err
		}
		if !stored.Equal(total) {
			return fmt.Errorf("%w: order %d: stored lines sum to %s, computed %s", ErrStorage, order.OrderID, stored.StringFixed(2), total.StringFixed(2))
		}
		if err := tx.Orders.UpdateTotal(opCtx, order.OrderID, total); err != nil {
			return err
		}
		order.TotalAmount = total
		return nil
	})
	if err != nil {
		err = mapStorageErr(err)
		s.log.Warn("place order failed", zap.Int64("customer_id", in.CustomerID), zap.Int("items", len(in.Items)), zap.Error(err))
		return nil, err
	}

	s.log.Info("order placed",
		zap.Int64("order_id", order.OrderID),
		zap.Int64("customer_id", order.CustomerID),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
	)

	s.invalidateDashboard(ctx)
	s.publishOrderPlaced(ctx, order, items)
	return order, nil
}

func (s *backofficeService) publishOrderPlaced(ctx context.Context, order *models.Order, items []models.OrderItem) {
	if s.events == nil {
		return
	}
	evItems := make([]OrderItemEvent, 0, len(items))
	for _, it := range items {
		evItems = append(evItems, OrderItemEvent{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal(),
		})
	}
	err := s.events.PublishOrderPlaced(ctx, OrderPlacedEvent{
		OrderID:     order.OrderID,
		CustomerID:  order.CustomerID,
		Items:       evItems,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
	})
	if err != nil {
		// заказ уже закоммичен, событие не критично
		s.log.Error("publish order placed failed", zap.Int64("order_id", order.OrderID), zap.Error(err))
	}
}
