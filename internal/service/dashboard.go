package service

import (
	"context"

	"backoffice-service/internal/analytics"

	"go.uber.org/zap"
)

// Dashboard computes the analytics aggregates from the full read views.
// A cached snapshot is served when available; cache failures only log.
// The generation is read before the views, so a write committed while the
// aggregates are being built leaves the result under a retired generation.
func (s *backofficeService) Dashboard(ctx context.Context) (analytics.Dashboard, error) {
	gen := int64(-1)
	if s.cache != nil {
		g, err := s.cache.DashboardGeneration(ctx)
		if err != nil {
			s.log.Warn("dashboard cache read failed", zap.Error(err))
		} else {
			gen = g
			d, err := s.cache.GetDashboard(ctx, gen)
			if err != nil {
				s.log.Warn("dashboard cache read failed", zap.Error(err))
			} else if d != nil {
				return *d, nil
			}
		}
	}

	orders, err := s.ListOrders(ctx, 0)
	if err != nil {
		return analytics.Dashboard{}, err
	}
	items, err := s.ListOrderItems(ctx, 0)
	if err != nil {
		return analytics.Dashboard{}, err
	}
	products, err := s.ListProducts(ctx, 0)
	if err != nil {
		return analytics.Dashboard{}, err
	}

	d := analytics.Build(orders, items, products)

	if s.cache != nil && gen >= 0 {
		if err := s.cache.SetDashboard(ctx, gen, d); err != nil {
			s.log.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return d, nil
}
