// internal/infrastructure/persistence/inventory_repo.go
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"forno/internal/service/order/domain"
)

// GormInventoryRepository 是 domain.InventoryRepository 的 GORM 实现。
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) FindByProductIDs(ctx context.Context, ids []uuid.UUID) ([]domain.InventoryRecord, error) {
	var models []InventoryModel
	err := r.db.WithContext(ctx).Where("product_id IN ?", uuidStrings(ids)).Find(&models).Error
	if err != nil {
		return nil, err
	}

	records := make([]domain.InventoryRecord, 0, len(models))
	for i := range models {
		record, err := ToDomainInventory(&models[i])
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// ApplyDelta 以单条 UPDATE 原子地修改可用数量并返回修改后的记录。
// 单条订单内逐商品调用；跨订单的先检查后扣减竞争由上层文档化，
// 这里不做锁。
func (r *GormInventoryRepository) ApplyDelta(ctx context.Context, productID uuid.UUID, delta int) (*domain.InventoryRecord, error) {
	var model InventoryModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&InventoryModel{}).
			Where("product_id = ?", productID.String()).
			Update("available_quantity", gorm.Expr("available_quantity + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &domain.ProductNotInInventoryError{ProductID: productID}
		}
		return tx.Where("product_id = ?", productID.String()).First(&model).Error
	})
	if err != nil {
		return nil, err
	}
	return ToDomainInventory(&model)
}

func (r *GormInventoryRepository) Save(ctx context.Context, record *domain.InventoryRecord) error {
	model := FromDomainInventory(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model).Error
}

func (r *GormInventoryRepository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID.String()).Delete(&InventoryModel{}).Error
}
