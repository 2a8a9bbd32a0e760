// internal/service/order/domain/promotion.go
package domain

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// PromotionKind 是促销策略的判别器，一个封闭的和类型：
// 新的促销种类通过新增变体接入，而不是修改已有变体。
type PromotionKind string

const (
	KindPercentOff            PromotionKind = "PERCENT_OFF"
	KindPurchaseAboveDiscount PromotionKind = "PURCHASE_ABOVE_DISCOUNT"
	KindBuyHalfFree           PromotionKind = "BUY_HALF_FREE"
	KindUnknown               PromotionKind = "UNKNOWN"
)

// DescriptiveCode 是促销记录携带的策略描述码，策略参数内嵌在码值里，
// 例如 C_30_OFF、C_10_USD_OFF_PURCHASE_GREATER_THAN_30、C_2_X_1。
type DescriptiveCode string

const (
	Code50Off                DescriptiveCode = "C_50_OFF"
	Code30Off                DescriptiveCode = "C_30_OFF"
	Code10OffPurchaseAbove30 DescriptiveCode = "C_10_USD_OFF_PURCHASE_GREATER_THAN_30"
	CodeTwoForOne            DescriptiveCode = "C_2_X_1"
)

var digitsPattern = regexp.MustCompile(`\d+`)

// Kind 将描述码归类到策略变体。未知的码值返回 KindUnknown，
// 由派发器作为配置错误处理。
func (c DescriptiveCode) Kind() PromotionKind {
	s := string(c)
	switch {
	case c == CodeTwoForOne:
		return KindBuyHalfFree
	case strings.Contains(s, "_PURCHASE_GREATER_THAN_"):
		return KindPurchaseAboveDiscount
	case strings.HasSuffix(s, "_OFF"):
		return KindPercentOff
	}
	return KindUnknown
}

// PercentOff 从描述码中解析折扣百分比，如 C_30_OFF -> 30。
func (c DescriptiveCode) PercentOff() (int, bool) {
	m := digitsPattern.FindString(string(c))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ThresholdParams 从描述码中解析立减金额和最低消费，
// 如 C_10_USD_OFF_PURCHASE_GREATER_THAN_30 -> (10, 30)。
func (c DescriptiveCode) ThresholdParams() (amountOff, minTotal int, ok bool) {
	matches := digitsPattern.FindAllString(string(c), -1)
	if len(matches) < 2 {
		return 0, 0, false
	}
	amountOff, err := strconv.Atoi(matches[0])
	if err != nil {
		return 0, 0, false
	}
	minTotal, err = strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, false
	}
	return amountOff, minTotal, true
}

// Promotion 是一条促销记录。核心流水线只读它，写操作属于促销管理。
type Promotion struct {
	Code            uuid.UUID
	DescriptiveCode DescriptiveCode
	Description     string
	Active          bool
}
