// internal/service/order/domain/size.go
package domain

// PizzaSize 定义了披萨的尺寸。NOT_APPLICABLE 用于不按尺寸计价的商品（饼底）。
type PizzaSize string

const (
	SizeSmall         PizzaSize = "SMALL"
	SizeMedium        PizzaSize = "MEDIUM"
	SizeBig           PizzaSize = "BIG"
	SizeNotApplicable PizzaSize = "NOT_APPLICABLE"
)

// Valid 判断尺寸是否为已知值。
func (s PizzaSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeBig, SizeNotApplicable:
		return true
	}
	return false
}

// Multiplier 返回库存核算用的尺寸系数。
// SMALL 和 NOT_APPLICABLE 不放大，MEDIUM 翻倍，BIG 三倍。
func (s PizzaSize) Multiplier() int {
	switch s {
	case SizeMedium:
		return 2
	case SizeBig:
		return 3
	default:
		return 1
	}
}
