// internal/service/order/domain/order.go
package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// ProductLine 是一行商品请求。Quantity 为客户端请求的数量，
// RealQuantity 为按尺寸折算后的库存核算数量，永远由服务端推导，不接受客户端提供。
type ProductLine struct {
	ProductID    uuid.UUID
	ProductType  ProductType
	Quantity     int
	RealQuantity int
}

// PizzaSpec 是一张披萨的配置：尺寸加商品行。请求级对象，处理完即丢弃。
type PizzaSpec struct {
	Size  PizzaSize
	Lines []ProductLine
}

// OrderRequest 是一次下单请求。PromoCode 为空表示不使用促销。
type OrderRequest struct {
	Pizzas    []PizzaSpec
	PromoCode *uuid.UUID
}

// PizzaPart 是定价结果中对饼底/芝士的展示引用。
type PizzaPart struct {
	ID   uuid.UUID
	Name string
}

// Addition 是定价结果中的配料行。
type Addition struct {
	ID     uuid.UUID
	Name   string
	Amount int
}

// Pizza 是定价后的披萨。由定价引擎创建，定价完成后不再变更。
type Pizza struct {
	Base      PizzaPart
	Cheese    PizzaPart
	Additions []Addition
	Size      PizzaSize
	UnitPrice int
}

// OrderResult 是整条流水线的产出。
// PriceWithPromotion 在促销解析之前保持为 nil。
type OrderResult struct {
	OrderID               uuid.UUID
	Pizzas                []Pizza
	PriceWithoutPromotion int
	PriceWithPromotion    *int
	PromoCode             *uuid.UUID
	PromoCodeDescription  *string
}

// OrderPlaced 是订单成功落库后对外发布的事件。
type OrderPlaced struct {
	OrderID               uuid.UUID `json:"orderId"`
	OwnerID               uuid.UUID `json:"ownerId"`
	PriceWithoutPromotion int       `json:"priceWithoutPromotion"`
	PriceWithPromotion    *int      `json:"priceWithPromotion,omitempty"`
	PlacedAt              time.Time `json:"placedAt"`
}

// NewOrderPlaced 由成功落库的订单结果构造事件。
func NewOrderPlaced(result *OrderResult, ownerID uuid.UUID) *OrderPlaced {
	return &OrderPlaced{
		OrderID:               result.OrderID,
		OwnerID:               ownerID,
		PriceWithoutPromotion: result.PriceWithoutPromotion,
		PriceWithPromotion:    result.PriceWithPromotion,
		PlacedAt:              time.Now(),
	}
}

// SortPizzasByUnitPriceDesc 将披萨按单价从高到低排序。
// 排序是稳定的：单价相同时保持请求中的先后顺序。
// buy-half-free 策略的"付费半区"划分依赖这个顺序。
func SortPizzasByUnitPriceDesc(pizzas []Pizza) {
	sort.SliceStable(pizzas, func(i, j int) bool {
		return pizzas[i].UnitPrice > pizzas[j].UnitPrice
	})
}
