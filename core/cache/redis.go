package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
	"trainhub-api/core/config"
	"trainhub-api/core/constants"
	"trainhub-api/core/logger"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	AddToTokenBlacklist(ctx context.Context, token string) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)

	IsLoginBlocked(ctx context.Context, key string) (bool, error)
	IncrementLoginAttempt(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, key string) error

	Ping(ctx context.Context) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis initialized successfully", "addr", cfg.Addr, "db", cfg.DB)
	return &RedisCache{client: client}, nil
}

// Client exposes the underlying client for components sharing the connection.
func (r *RedisCache) Client() *redis.Client {
	return r.client
}

// Tokens are stored by digest; the raw JWT never lands in redis.
func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return constants.RedisKeyTokenBlacklist + hex.EncodeToString(sum[:])
}

func (r *RedisCache) AddToTokenBlacklist(ctx context.Context, token string) error {
	ttl := constants.BlockDuration
	if cfg, ok := config.GetSafe(); ok && cfg.JWT.RefreshTTL > 0 {
		ttl = cfg.JWT.RefreshTTL
	}
	return r.client.Set(ctx, blacklistKey(token), 1, ttl).Err()
}

func (r *RedisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisCache) IsLoginBlocked(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Get(ctx, constants.RedisKeyLoginAttempt+key).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n >= constants.MaxLoginAttempts, nil
}

func (r *RedisCache) IncrementLoginAttempt(ctx context.Context, key string) error {
	k := constants.RedisKeyLoginAttempt + key
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, constants.BlockDuration)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Expire(ctx, constants.RedisKeyLoginAttempt+key, ttl).Err()
}

func (r *RedisCache) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, constants.RedisKeyLoginAttempt+key).Err()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
