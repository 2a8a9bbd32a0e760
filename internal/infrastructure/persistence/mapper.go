// internal/infrastructure/persistence/mapper.go
package persistence

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"forno/internal/service/order/domain"
)

// ToDomainProduct 将数据库模型转换为领域模型。
func ToDomainProduct(model *ProductModel) (*domain.Product, error) {
	id, err := uuid.Parse(model.ProductID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt product id %q", model.ProductID)
	}
	return &domain.Product{
		ID:   id,
		Name: model.Name,
		Type: domain.ProductType(model.Type),
	}, nil
}

func FromDomainProduct(product *domain.Product) *ProductModel {
	return &ProductModel{
		ProductID: product.ID.String(),
		Name:      product.Name,
		Type:      string(product.Type),
	}
}

func ToDomainPrice(model *PriceModel) (*domain.Price, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt price id %q", model.ID)
	}
	productID, err := uuid.Parse(model.ProductID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt product id %q", model.ProductID)
	}
	return &domain.Price{
		ID:        id,
		ProductID: productID,
		Value:     model.Value,
		Size:      domain.PizzaSize(model.PizzaSize),
	}, nil
}

func FromDomainPrice(price *domain.Price) *PriceModel {
	return &PriceModel{
		ID:        price.ID.String(),
		ProductID: price.ProductID.String(),
		Value:     price.Value,
		PizzaSize: string(price.Size),
	}
}

func ToDomainInventory(model *InventoryModel) (*domain.InventoryRecord, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt inventory id %q", model.ID)
	}
	productID, err := uuid.Parse(model.ProductID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt product id %q", model.ProductID)
	}
	return &domain.InventoryRecord{
		ID:                id,
		ProductID:         productID,
		AvailableQuantity: model.AvailableQuantity,
	}, nil
}

func FromDomainInventory(record *domain.InventoryRecord) *InventoryModel {
	return &InventoryModel{
		ID:                record.ID.String(),
		ProductID:         record.ProductID.String(),
		AvailableQuantity: record.AvailableQuantity,
	}
}

func ToDomainPromotion(model *PromotionModel) (*domain.Promotion, error) {
	code, err := uuid.Parse(model.Code)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt promotion code %q", model.Code)
	}
	return &domain.Promotion{
		Code:            code,
		DescriptiveCode: domain.DescriptiveCode(model.DescriptiveCode),
		Description:     model.Description,
		Active:          model.Active,
	}, nil
}

func FromDomainPromotion(promotion *domain.Promotion) *PromotionModel {
	return &PromotionModel{
		Code:            promotion.Code.String(),
		DescriptiveCode: string(promotion.DescriptiveCode),
		Description:     promotion.Description,
		Active:          promotion.Active,
	}
}

func ToDomainOrder(model *OrderModel) (*domain.OrderResult, error) {
	orderID, err := uuid.Parse(model.OrderID)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt order id %q", model.OrderID)
	}

	var pizzas []domain.Pizza
	if model.Pizzas != "" {
		if err := json.Unmarshal([]byte(model.Pizzas), &pizzas); err != nil {
			return nil, errors.Wrapf(err, "corrupt pizzas payload for order %s", model.OrderID)
		}
	}

	result := &domain.OrderResult{
		OrderID:               orderID,
		Pizzas:                pizzas,
		PriceWithoutPromotion: model.PriceWithoutPromotion,
		PriceWithPromotion:    model.PriceWithPromotion,
		PromoCodeDescription:  model.PromoCodeDescription,
	}
	if model.PromoCode != nil {
		code, err := uuid.Parse(*model.PromoCode)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt promo code %q", *model.PromoCode)
		}
		result.PromoCode = &code
	}
	return result, nil
}

func FromDomainOrder(result *domain.OrderResult, ownerID uuid.UUID) (*OrderModel, error) {
	pizzas, err := json.Marshal(result.Pizzas)
	if err != nil {
		return nil, errors.Wrap(err, "marshal pizzas")
	}

	model := &OrderModel{
		OrderID:               result.OrderID.String(),
		UserID:                ownerID.String(),
		PriceWithoutPromotion: result.PriceWithoutPromotion,
		PriceWithPromotion:    result.PriceWithPromotion,
		PromoCodeDescription:  result.PromoCodeDescription,
		Pizzas:                string(pizzas),
	}
	if result.PromoCode != nil {
		code := result.PromoCode.String()
		model.PromoCode = &code
	}
	return model, nil
}
