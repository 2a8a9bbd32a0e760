// internal/service/order/application/dto.go
package application

import (
	"fmt"

	"github.com/google/uuid"

	"forno/internal/service/order/domain"
)

// ProductLineDTO 是请求里的一行商品。Quantity 用指针区分"没传"和 0：
// 两者都会在构成校验中被拒绝。
type ProductLineDTO struct {
	ID          string `json:"id"`
	ProductType string `json:"productType"`
	Quantity    *int   `json:"quantity"`
}

// PizzaRequestDTO 是请求里的一张披萨。
type PizzaRequestDTO struct {
	PizzaSize string           `json:"pizzaSize"`
	Products  []ProductLineDTO `json:"products"`
}

// OrderRequestDTO 是下单接口的请求体。
type OrderRequestDTO struct {
	PizzaRequests []PizzaRequestDTO `json:"pizzaRequests"`
	PromoCode     *string           `json:"promoCode,omitempty"`
}

// ToDomain 将传输结构转换为领域请求。
// 标识符和枚举值的格式错误在这里拦下；数量规则留给构成校验。
func (d *OrderRequestDTO) ToDomain() (*domain.OrderRequest, error) {
	req := &domain.OrderRequest{}

	if d.PromoCode != nil && *d.PromoCode != "" {
		code, err := uuid.Parse(*d.PromoCode)
		if err != nil {
			return nil, fmt.Errorf("invalid promo code: %s", *d.PromoCode)
		}
		req.PromoCode = &code
	}

	for _, pizzaDTO := range d.PizzaRequests {
		size := domain.PizzaSize(pizzaDTO.PizzaSize)
		if !size.Valid() {
			return nil, fmt.Errorf("invalid pizza size: %s", pizzaDTO.PizzaSize)
		}

		spec := domain.PizzaSpec{Size: size}
		for _, lineDTO := range pizzaDTO.Products {
			id, err := uuid.Parse(lineDTO.ID)
			if err != nil {
				return nil, fmt.Errorf("invalid product id: %s", lineDTO.ID)
			}
			productType := domain.ProductType(lineDTO.ProductType)
			if !productType.Valid() {
				return nil, fmt.Errorf("invalid product type: %s", lineDTO.ProductType)
			}

			quantity := 0
			if lineDTO.Quantity != nil {
				quantity = *lineDTO.Quantity
			}
			spec.Lines = append(spec.Lines, domain.ProductLine{
				ProductID:   id,
				ProductType: productType,
				Quantity:    quantity,
			})
		}
		req.Pizzas = append(req.Pizzas, spec)
	}
	return req, nil
}

// PizzaPartDTO / AdditionDTO / PizzaDTO / OrderResponseDTO 组成下单接口的响应体。
type PizzaPartDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AdditionDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

type PizzaDTO struct {
	Base      PizzaPartDTO  `json:"base"`
	Cheese    PizzaPartDTO  `json:"cheese"`
	Additions []AdditionDTO `json:"additions"`
	Size      string        `json:"size"`
	UnitPrice int           `json:"unitPrice"`
}

type OrderResponseDTO struct {
	OrderID               string     `json:"orderId"`
	Pizzas                []PizzaDTO `json:"pizzas"`
	PriceWithoutPromotion int        `json:"priceWithoutPromotion"`
	PriceWithPromotion    *int       `json:"priceWithPromotion,omitempty"`
	PromoCode             *string    `json:"promoCode,omitempty"`
	PromoCodeDescription  *string    `json:"promoCodeDescription,omitempty"`
}

// FromDomain 将领域结果转换为响应体。
func FromDomain(result *domain.OrderResult) *OrderResponseDTO {
	dto := &OrderResponseDTO{
		OrderID:               result.OrderID.String(),
		PriceWithoutPromotion: result.PriceWithoutPromotion,
		PriceWithPromotion:    result.PriceWithPromotion,
		PromoCodeDescription:  result.PromoCodeDescription,
	}
	if result.PromoCode != nil {
		code := result.PromoCode.String()
		dto.PromoCode = &code
	}
	for _, pizza := range result.Pizzas {
		pizzaDTO := PizzaDTO{
			Base:      PizzaPartDTO{ID: pizza.Base.ID.String(), Name: pizza.Base.Name},
			Cheese:    PizzaPartDTO{ID: pizza.Cheese.ID.String(), Name: pizza.Cheese.Name},
			Size:      string(pizza.Size),
			UnitPrice: pizza.UnitPrice,
		}
		for _, addition := range pizza.Additions {
			pizzaDTO.Additions = append(pizzaDTO.Additions, AdditionDTO{
				ID:     addition.ID.String(),
				Name:   addition.Name,
				Amount: addition.Amount,
			})
		}
		dto.Pizzas = append(dto.Pizzas, pizzaDTO)
	}
	return dto
}
