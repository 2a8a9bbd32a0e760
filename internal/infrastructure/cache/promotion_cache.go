// internal/infrastructure/cache/promotion_cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"forno/internal/pkg/logger"
	"forno/internal/service/order/domain"
)

const promotionTTL = 5 * time.Minute

// CachedPromotionRepository 给 PromotionRepository 套一层 redis 读穿缓存。
// 促销记录读多写少，下单路径每次都要解析促销码，缓存可以省掉绝大部分
// 数据库往返。缓存只加速，不改变语义：redis 故障时直接回源。
type CachedPromotionRepository struct {
	inner  domain.PromotionRepository
	client *redis.Client
}

func NewCachedPromotionRepository(inner domain.PromotionRepository, client *redis.Client) *CachedPromotionRepository {
	return &CachedPromotionRepository{inner: inner, client: client}
}

func (r *CachedPromotionRepository) FindByCode(ctx context.Context, code uuid.UUID) (*domain.Promotion, error) {
	key := promotionKey(code)

	payload, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var promotion domain.Promotion
		if err := json.Unmarshal(payload, &promotion); err == nil {
			return &promotion, nil
		}
		// 缓存内容损坏，当作未命中回源
	} else if !errors.Is(err, redis.Nil) {
		logger.Ctx(ctx).Warn().Err(err).Msg("promotion cache read failed, falling back to store")
	}

	promotion, err := r.inner.FindByCode(ctx, code)
	if err != nil || promotion == nil {
		return promotion, err
	}

	if payload, err := json.Marshal(promotion); err == nil {
		if err := r.client.Set(ctx, key, payload, promotionTTL).Err(); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("promotion cache write failed")
		}
	}
	return promotion, nil
}

func (r *CachedPromotionRepository) FindAll(ctx context.Context) ([]domain.Promotion, error) {
	return r.inner.FindAll(ctx)
}

// Save 写穿到底层存储并使缓存失效，保证启停操作立刻生效。
func (r *CachedPromotionRepository) Save(ctx context.Context, promotion *domain.Promotion) error {
	if err := r.inner.Save(ctx, promotion); err != nil {
		return err
	}
	if err := r.client.Del(ctx, promotionKey(promotion.Code)).Err(); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("promotion cache invalidation failed")
	}
	return nil
}

func promotionKey(code uuid.UUID) string {
	return "promo:" + code.String()
}
