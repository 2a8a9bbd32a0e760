// internal/infrastructure/persistence/product_repo.go
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"forno/internal/service/order/domain"
)

// GormProductRepository 是 domain.ProductRepository 的 GORM 实现。
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID 按主键查商品；不存在时返回 (nil, nil)。
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).Where("product_id = ?", id.String()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ToDomainProduct(&model)
}

func (r *GormProductRepository) FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	var models []ProductModel
	err := r.db.WithContext(ctx).Where("product_id IN ?", uuidStrings(ids)).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainProducts(models)
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var models []ProductModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(models)
}

func (r *GormProductRepository) Save(ctx context.Context, product *domain.Product) error {
	model := FromDomainProduct(product)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model).Error
}

func (r *GormProductRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("product_id = ?", id.String()).Delete(&ProductModel{}).Error
}

func toDomainProducts(models []ProductModel) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(models))
	for i := range models {
		product, err := ToDomainProduct(&models[i])
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
