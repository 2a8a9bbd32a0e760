// internal/infrastructure/persistence/price_repo.go
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forno/internal/service/order/domain"
)

// GormPriceRepository 是 domain.PriceRepository 的 GORM 实现。
type GormPriceRepository struct {
	db *gorm.DB
}

func NewGormPriceRepository(db *gorm.DB) *GormPriceRepository {
	return &GormPriceRepository{db: db}
}

func (r *GormPriceRepository) FindBySizeAndProductIDs(ctx context.Context, ids []uuid.UUID, size domain.PizzaSize) ([]domain.Price, error) {
	var models []PriceModel
	err := r.db.WithContext(ctx).
		Where("product_id IN ? AND pizza_size = ?", uuidStrings(ids), string(size)).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainPrices(models)
}

func (r *GormPriceRepository) FindByProductID(ctx context.Context, id uuid.UUID) ([]domain.Price, error) {
	var models []PriceModel
	err := r.db.WithContext(ctx).Where("product_id = ?", id.String()).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainPrices(models)
}

func (r *GormPriceRepository) SaveAll(ctx context.Context, prices []domain.Price) error {
	if len(prices) == 0 {
		return nil
	}
	models := make([]PriceModel, 0, len(prices))
	for i := range prices {
		models = append(models, *FromDomainPrice(&prices[i]))
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *GormPriceRepository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID.String()).Delete(&PriceModel{}).Error
}

func toDomainPrices(models []PriceModel) ([]domain.Price, error) {
	prices := make([]domain.Price, 0, len(models))
	for i := range models {
		price, err := ToDomainPrice(&models[i])
		if err != nil {
			return nil, err
		}
		prices = append(prices, *price)
	}
	return prices, nil
}
