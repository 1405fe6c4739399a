package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"backoffice-service/internal/analytics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Snapshots live under a generation number; invalidation bumps the
// generation instead of deleting, so a snapshot computed from data read
// before a write can only land under a generation nobody reads anymore.
const (
	dashboardGenKey    = "backoffice:dashboard:gen"
	dashboardKeyPrefix = "backoffice:dashboard:v"
)

func dashboardKey(gen int64) string {
	return dashboardKeyPrefix + strconv.FormatInt(gen, 10)
}

type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, ttl time.Duration, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis connected successfully", zap.String("addr", addr))

	return newRedisClient(rdb, ttl, log), nil
}

func newRedisClient(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisClient {
	return &RedisClient{client: rdb, ttl: ttl, log: log}
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// DashboardGeneration returns the current snapshot generation, 0 before
// the first invalidation.
func (r *RedisClient) DashboardGeneration(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, dashboardGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetDashboard returns nil, nil on a cache miss.
func (r *RedisClient) GetDashboard(ctx context.Context, gen int64) (*analytics.Dashboard, error) {
	key := dashboardKey(gen)
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var d analytics.Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		// битый снапшот просто выбрасываем
		r.log.Warn("dropping undecodable dashboard snapshot", zap.String("key", key), zap.Error(err))
		_ = r.client.Del(ctx, key).Err()
		return nil, nil
	}
	return &d, nil
}

func (r *RedisClient) SetDashboard(ctx context.Context, gen int64, d analytics.Dashboard) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, dashboardKey(gen), raw, r.ttl).Err()
}

// InvalidateDashboard retires every snapshot stored so far; they expire by
// TTL.
func (r *RedisClient) InvalidateDashboard(ctx context.Context) error {
	return r.client.Incr(ctx, dashboardGenKey).Err()
}
