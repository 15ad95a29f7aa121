package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"marketplace-dispatch/internal/config"
)

const (
	keyNamespace    = "dispatch"
	rejectionPrefix = "rejected"
)

type setStore interface {
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func optionsFromConfig(cfg config.Redis) (*redis.Options, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis address is required")
	}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

// RedisRejections keeps each partner's rejected deliveries in a redis set that
// expires ttl after the latest rejection.
type RedisRejections struct {
	store setStore
	ttl   time.Duration
}

// NewRedisRejections creates a RedisRejections.
func NewRedisRejections(client *redis.Client, ttl time.Duration) *RedisRejections {
	return &RedisRejections{store: client, ttl: ttl}
}

// Add records that partnerID rejected deliveryID.
func (r *RedisRejections) Add(ctx context.Context, partnerID, deliveryID int64) error {
	key := RejectionKey(partnerID)
	if err := r.store.SAdd(ctx, key, deliveryID).Err(); err != nil {
		return fmt.Errorf("sadd %s: %w", key, err)
	}
	if r.ttl > 0 {
		if err := r.store.Expire(ctx, key, r.ttl).Err(); err != nil {
			return fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return nil
}

// Rejected returns the deliveries partnerID rejected.
func (r *RedisRejections) Rejected(ctx context.Context, partnerID int64) (map[int64]struct{}, error) {
	key := RejectionKey(partnerID)
	members, err := r.store.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", key, err)
	}
	out := make(map[int64]struct{}, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		out[id] = struct{}{}
	}
	return out, nil
}

// RejectionKey returns the redis key holding a partner's rejections.
func RejectionKey(partnerID int64) string {
	return fmt.Sprintf("%s:%s:%d", keyNamespace, rejectionPrefix, partnerID)
}
