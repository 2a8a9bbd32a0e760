// internal/service/order/domain/validation.go
package domain

import "github.com/google/uuid"

// lineRule 校验一张披萨上某一类型的全部商品行。
// 两个变体：BASE/CHEESE 用严格单件规则，ADDITION 用唯一性加数量区间规则。
type lineRule func(lines []ProductLine) bool

// compositionRules 是按商品类型派发的规则表。
var compositionRules = map[ProductType]lineRule{
	TypeBase:     singleItemRule,
	TypeCheese:   singleItemRule,
	TypeAddition: additionRule,
}

// singleItemRule: 恰好一行，数量恰好为 1。
func singleItemRule(lines []ProductLine) bool {
	return len(lines) == 1 && lines[0].Quantity == 1
}

// additionRule: 同一商品最多出现一次，每行数量在 [1,3] 之间。
func additionRule(lines []ProductLine) bool {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.ProductID]; dup {
			return false
		}
		seen[line.ProductID] = struct{}{}
		if line.Quantity < 1 || line.Quantity > 3 {
			return false
		}
	}
	return true
}

// ValidateComposition 对单张披萨按类型套用规则表。
func ValidateComposition(pizza PizzaSpec) bool {
	for productType, rule := range compositionRules {
		if !rule(linesOfType(pizza.Lines, productType)) {
			return false
		}
	}
	return true
}

// ValidateRequest 逐张校验整个请求的商品构成。
// 任何一张披萨违规都会让整个请求失败，并且只返回一个
// 汇总所有规则的固定错误，不指明具体哪一张/哪一行违规。
func ValidateRequest(pizzas []PizzaSpec) error {
	for _, pizza := range pizzas {
		if !ValidateComposition(pizza) {
			return ErrCompositionInvalid
		}
	}
	return nil
}

func linesOfType(lines []ProductLine, productType ProductType) []ProductLine {
	out := make([]ProductLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductType == productType {
			out = append(out, line)
		}
	}
	return out
}
