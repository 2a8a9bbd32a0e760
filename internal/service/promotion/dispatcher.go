// internal/service/promotion/dispatcher.go
package promotion

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"forno/internal/pkg/logger"
	"forno/internal/pkg/metrics"
	"forno/internal/service/order/domain"
)

// Dispatcher 将促销码解析为生效的促销记录，并派发给对应的策略变体。
type Dispatcher struct {
	promoRepo domain.PromotionRepository
	tracer    trace.Tracer
}

// NewDispatcher 创建一个促销派发器实例。
func NewDispatcher(promoRepo domain.PromotionRepository, tracer trace.Tracer) *Dispatcher {
	return &Dispatcher{promoRepo: promoRepo, tracer: tracer}
}

// Apply 对已定价的订单结果套用促销。
//
// 没有促销码时结果原样通过，PriceWithPromotion 保持为 nil。
// 有促销码时：码无法解析或促销停用是业务错误；描述码没有对应策略
// 是致命的配置错误。策略成功后写入折后价，并把促销的描述挂到结果上。
func (d *Dispatcher) Apply(ctx context.Context, result *domain.OrderResult, promoCode *uuid.UUID) error {
	if promoCode == nil {
		return nil
	}

	ctx, span := d.tracer.Start(ctx, "promotion.Apply")
	defer span.End()
	span.SetAttributes(attribute.String("promotion.code", promoCode.String()))

	promo, err := d.promoRepo.FindByCode(ctx, *promoCode)
	if err != nil {
		return err
	}
	if promo == nil {
		return &domain.PromotionNotFoundError{Code: *promoCode}
	}
	if !promo.Active {
		return &domain.PromotionInactiveError{Code: *promoCode}
	}

	kind := promo.DescriptiveCode.Kind()
	strategy, ok := strategies[kind]
	if !ok {
		return &domain.ConfigurationError{DescriptiveCode: promo.DescriptiveCode}
	}

	discounted, err := strategy(result.PriceWithoutPromotion, result.Pizzas, promo)
	if err != nil {
		return err
	}

	result.PriceWithPromotion = &discounted
	result.PromoCode = promoCode
	result.PromoCodeDescription = &promo.Description

	metrics.PromotionsApplied.WithLabelValues(string(kind)).Inc()
	span.SetAttributes(
		attribute.String("promotion.kind", string(kind)),
		attribute.Int("order.price_with_promotion", discounted),
	)
	logger.Ctx(ctx).Info().
		Str("promo_code", promoCode.String()).
		Str("kind", string(kind)).
		Int("price_with_promotion", discounted).
		Msg("promotion applied")
	return nil
}
