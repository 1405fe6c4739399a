package service

import (
	"context"
	"time"

	"backoffice-service/internal/repository"

	"go.uber.org/zap"
)

const DefaultOpTimeout = 5 * time.Second

type backofficeService struct {
	repo      *repository.Repository
	events    EventBus
	cache     DashboardCache
	log       *zap.Logger
	opTimeout time.Duration
	now       func() time.Time
}

// NewBackofficeService wires the data access layer. events and cache may be
// nil.
func NewBackofficeService(repo *repository.Repository, events EventBus, cache DashboardCache, log *zap.Logger, opTimeout time.Duration) Backoffice {
	if log == nil {
		log = zap.NewNop()
	}
	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}
	return &backofficeService{
		repo:      repo,
		events:    events,
		cache:     cache,
		log:       log,
		opTimeout: opTimeout,
		now:       time.Now,
	}
}

// withTimeout bounds a single operation; expiry surfaces as ErrStorage.
func (s *backofficeService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *backofficeService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDashboard(ctx); err != nil {
		s.log.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
