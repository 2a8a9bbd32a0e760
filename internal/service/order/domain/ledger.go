// internal/service/order/domain/ledger.go
package domain

import "github.com/google/uuid"

// AggregateLines 将多张披萨的商品行摊平为一份按商品去重的台账。
//
// Quantity 按出现次数累加；RealQuantity 在每次出现时按该披萨的尺寸系数
// 折算后再累加（而不是对累加结果统一乘系数）：同一个配料在一张 SMALL 和
// 一张 MEDIUM 上各要 2 份，台账里的 RealQuantity 是 2×1 + 2×2 = 6。
//
// 饼底按单件计入库存，与披萨声明的尺寸无关，因此 BASE 行始终按
// NOT_APPLICABLE 的系数折算。
//
// 台账按商品首次出现的顺序输出。后续的存在性检查、库存校验和扣减
// 都作用于台账；定价不使用台账，而是按披萨逐张计算。
func AggregateLines(pizzas []PizzaSpec) []ProductLine {
	index := make(map[uuid.UUID]int)
	ledger := make([]ProductLine, 0, len(pizzas)*4)

	for _, pizza := range pizzas {
		for _, line := range pizza.Lines {
			size := pizza.Size
			if line.ProductType == TypeBase {
				size = SizeNotApplicable
			}
			real := line.Quantity * size.Multiplier()

			if i, ok := index[line.ProductID]; ok {
				ledger[i].Quantity += line.Quantity
				ledger[i].RealQuantity += real
				continue
			}
			index[line.ProductID] = len(ledger)
			ledger = append(ledger, ProductLine{
				ProductID:    line.ProductID,
				ProductType:  line.ProductType,
				Quantity:     line.Quantity,
				RealQuantity: real,
			})
		}
	}
	return ledger
}
