// internal/infrastructure/cache/idempotency.go
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore 用 redis SETNX 实现请求幂等键的占位。
// 下单接口带 Idempotency-Key 时，同一个键只有第一次请求会被处理。
type IdempotencyStore struct {
	client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Reserve 尝试占用一个幂等键。返回 false 表示键已被占用（重复请求）。
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	return s.client.SetNX(ctx, "idem:"+key, 1, idempotencyTTL).Result()
}

// Release 释放一个幂等键，用于请求处理失败后允许重试。
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, "idem:"+key).Err()
}
