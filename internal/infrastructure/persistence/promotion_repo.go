// internal/infrastructure/persistence/promotion_repo.go
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"forno/internal/service/order/domain"
)

// GormPromotionRepository 是 domain.PromotionRepository 的 GORM 实现。
type GormPromotionRepository struct {
	db *gorm.DB
}

func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// FindByCode 按促销码查记录；不存在时返回 (nil, nil)。
func (r *GormPromotionRepository) FindByCode(ctx context.Context, code uuid.UUID) (*domain.Promotion, error) {
	var model PromotionModel
	err := r.db.WithContext(ctx).Where("code = ?", code.String()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ToDomainPromotion(&model)
}

func (r *GormPromotionRepository) FindAll(ctx context.Context) ([]domain.Promotion, error) {
	var models []PromotionModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}

	promotions := make([]domain.Promotion, 0, len(models))
	for i := range models {
		promotion, err := ToDomainPromotion(&models[i])
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, *promotion)
	}
	return promotions, nil
}

func (r *GormPromotionRepository) Save(ctx context.Context, promotion *domain.Promotion) error {
	model := FromDomainPromotion(promotion)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model).Error
}
