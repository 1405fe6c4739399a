package service

import (
	"context"
	"fmt"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"go.uber.org/zap"
)

func (s *backofficeService) GetOrder(ctx context.Context, id int64) (*OrderDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, id)
	}
	items, err := s.repo.OrderItems.GetByOrderID(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return &OrderDetails{Order: *o, Items: items}, nil
}

// UpdateOrderStatus moves an order along its lifecycle. Cancelling a
// pending or confirmed order returns its items to stock in the same
// transaction.
func (s *backofficeService) UpdateOrderStatus(ctx context.Context, id int64, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		order     *models.Order
		prev      models.OrderStatus
		restocked bool
	)
	err := s.repo.WithTx(opCtx, func(tx *repository.Repository) error {
		o, err := tx.Orders.GetForUpdate(opCtx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: %d", ErrOrderNotFound, id)
		}
		prev = o.Status
		if o.Status.Terminal() {
			return fmt.Errorf("%w: order %d is already %s", ErrInvalidTransition, id, o.Status)
		}
		if !o.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
		}

		if next == models.OrderStatusCancelled && o.Status.Restocks() {
			items, err := tx.OrderItems.GetByOrderID(opCtx, id)
			if err != nil {
				return err
			}
			for _, it := range items {
				if _, err := tx.Products.IncrementStock(opCtx, it.ProductID, it.Quantity); err != nil {
					return err
				}
			}
			restocked = len(items) > 0
		}

		if err := tx.Orders.UpdateStatus(opCtx, id, next); err != nil {
			return err
		}
		o.Status = next
		order = o
		return nil
	})
	if err != nil {
		return nil, mapStorageErr(err)
	}

	s.log.Info("order status changed",
		zap.Int64("order_id", id),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
		zap.Bool("restocked", restocked),
	)
	s.invalidateDashboard(ctx)

	if s.events != nil {
		if err := s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
			OrderID:   id,
			From:      prev,
			To:        next,
			Restocked: restocked,
			ChangedAt: s.now(),
		}); err != nil {
			s.log.Error("publish order status changed failed", zap.Int64("order_id", id), zap.Error(err))
		}
	}
	return order, nil
}

// DeleteOrder removes the order and, by cascade, its items. Stock is not
// returned; cancel first for that.
func (s *backofficeService) DeleteOrder(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.Orders.Delete(ctx, id)
	if err != nil {
		return mapStorageErr(err)
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrOrderNotFound, id)
	}
	s.invalidateDashboard(ctx)
	return nil
}
