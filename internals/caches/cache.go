// Package cache keeps small, read-heavy rows (feature flags, footer settings, admin stats)
// in Redis. With no REDIS_ADDR the no-op store is used and every read misses.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"estatehub_backend/internals/configs"
	"estatehub_backend/internals/logger"
)

const (
	KeyFeatureFlags   = "feature_flags:all"
	KeyFooterSettings = "settings:footer"
	KeyOrganization   = "settings:organization"
	KeyAdminStats     = "admin:stats"
)

type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var defaultStore Store = Noop{}

func Default() Store { return defaultStore }

// SetDefault swaps the process-wide store.
func SetDefault(s Store) {
	if s == nil {
		s = Noop{}
	}
	defaultStore = s
}

// Init connects to Redis when REDIS_ADDR is set. A failed ping falls back to Noop.
func Init(ctx context.Context) {
	addr := configs.GetEnv("REDIS_ADDR")
	if addr == "" {
		logger.L().Info("redis not configured, cache disabled")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: configs.GetEnv("REDIS_PASSWORD"),
		DB:       configs.GetEnvInt("REDIS_DB", 0),
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.L().Warn("redis ping failed, cache disabled", zap.String("addr", addr), zap.Error(err))
		_ = client.Close()
		return
	}
	SetDefault(&RedisStore{Client: client})
	logger.L().Info("redis cache enabled", zap.String("addr", addr))
}

type RedisStore struct {
	Client *redis.Client
}

func (s *RedisStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, sonic.Unmarshal(data, dst)
}

func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, key, data, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.Client.Del(ctx, keys...).Err()
}

type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)         { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error               { return nil }

// Remember returns the cached value for key, or calls load and caches its result.
// Cache failures are logged and never fail the request.
func Remember[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var out T
	store := Default()
	if ok, err := store.Get(ctx, key, &out); err == nil && ok {
		return out, nil
	} else if err != nil {
		logger.L().Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	out, err := load()
	if err != nil {
		return out, err
	}
	if err := store.Set(ctx, key, out, ttl); err != nil {
		logger.L().Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return out, nil
}

// Invalidate drops keys, logging failures.
func Invalidate(ctx context.Context, keys ...string) {
	if err := Default().Delete(ctx, keys...); err != nil {
		logger.L().Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
