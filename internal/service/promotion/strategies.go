// internal/service/promotion/strategies.go
package promotion

import (
	"forno/internal/service/order/domain"
)

// StrategyFunc 是促销策略的统一能力：输入未打折总价、按单价降序排列的
// 披萨列表和促销记录，输出打折后的总价。三个变体都是纯函数，
// 新的促销种类通过在策略表里注册新变体接入。
type StrategyFunc func(priceWithoutPromotion int, pizzas []domain.Pizza, promo *domain.Promotion) (int, error)

// strategies 是判别器到策略的封闭映射表。
var strategies = map[domain.PromotionKind]StrategyFunc{
	domain.KindPercentOff:            applyPercentOff,
	domain.KindPurchaseAboveDiscount: applyPurchaseAboveDiscount,
	domain.KindBuyHalfFree:           applyBuyHalfFree,
}

// applyPercentOff 按百分比立减，折扣额向下取整：
// 总价 97、折扣 30% 时减 29，得 68。
func applyPercentOff(priceWithoutPromotion int, _ []domain.Pizza, promo *domain.Promotion) (int, error) {
	percent, ok := promo.DescriptiveCode.PercentOff()
	if !ok {
		return 0, &domain.ConfigurationError{DescriptiveCode: promo.DescriptiveCode}
	}
	return priceWithoutPromotion - priceWithoutPromotion*percent/100, nil
}

// applyPurchaseAboveDiscount 在总价严格大于最低消费时立减固定金额；
// 不满足门槛（等于也不行）是业务错误，不是静默跳过。
func applyPurchaseAboveDiscount(priceWithoutPromotion int, _ []domain.Pizza, promo *domain.Promotion) (int, error) {
	amountOff, minTotal, ok := promo.DescriptiveCode.ThresholdParams()
	if !ok {
		return 0, &domain.ConfigurationError{DescriptiveCode: promo.DescriptiveCode}
	}
	if priceWithoutPromotion <= minTotal {
		return 0, &domain.ThresholdNotMetError{MinTotal: minTotal, Code: promo.Code}
	}
	return priceWithoutPromotion - amountOff, nil
}

// applyBuyHalfFree 把按单价降序的披萨列表划出"付费半区"：
// 偶数张时取最贵的前一半；奇数张时取前 (n-1)/2 张，再加上最便宜的
// 最后一张（它没有可配对的披萨）。折后价直接等于付费半区的单价之和，
// 不是在原总价上做减法——两者算术上等价，但语义以付费半区为准。
func applyBuyHalfFree(_ int, pizzas []domain.Pizza, _ *domain.Promotion) (int, error) {
	count := len(pizzas)
	charged := make([]domain.Pizza, 0, count/2+1)
	if count%2 == 0 {
		charged = append(charged, pizzas[:count/2]...)
	} else {
		charged = append(charged, pizzas[:(count-1)/2]...)
		charged = append(charged, pizzas[count-1])
	}

	total := 0
	for _, pizza := range charged {
		total += pizza.UnitPrice
	}
	return total, nil
}
