// internal/infrastructure/persistence/order_repo.go
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forno/internal/service/order/domain"
)

// GormOrderRepository 是 domain.OrderRepository 的 GORM 实现。
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Save(ctx context.Context, result *domain.OrderResult, ownerID uuid.UUID) (*domain.OrderResult, error) {
	model, err := FromDomainOrder(result, ownerID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *GormOrderRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.OrderResult, error) {
	var models []OrderModel
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID.String()).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainOrders(models)
}

func (r *GormOrderRepository) FindAll(ctx context.Context) ([]domain.OrderResult, error) {
	var models []OrderModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(models)
}

func toDomainOrders(models []OrderModel) ([]domain.OrderResult, error) {
	results := make([]domain.OrderResult, 0, len(models))
	for i := range models {
		result, err := ToDomainOrder(&models[i])
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}
