// internal/service/order/domain/repository.go
package domain

import (
	"context"

	"github.com/google/uuid"
)

// 以下端口定义了核心流水线依赖的外部存储契约。
// 它们位于领域层，由基础设施层实现；延迟和失败特性对核心不透明，
// 核心只负责 await 并向上传播错误。
//
// 查询单条记录的端口用 (nil, nil) 表示"不存在"，由调用方决定
// 缺失是否构成业务错误。

// ProductRepository 是商品目录的端口。
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// InventoryRepository 是库存的端口。
// ApplyDelta 以正负增量修改可用数量并返回修改后的记录，
// 是整条流水线里唯一的库存写操作。
type InventoryRepository interface {
	FindByProductIDs(ctx context.Context, ids []uuid.UUID) ([]InventoryRecord, error)
	ApplyDelta(ctx context.Context, productID uuid.UUID, delta int) (*InventoryRecord, error)
	Save(ctx context.Context, record *InventoryRecord) error
	DeleteByProductID(ctx context.Context, productID uuid.UUID) error
}

// PriceRepository 是价格的端口。饼底不按尺寸计价，用 FindByProductID 查。
type PriceRepository interface {
	FindBySizeAndProductIDs(ctx context.Context, ids []uuid.UUID, size PizzaSize) ([]Price, error)
	FindByProductID(ctx context.Context, id uuid.UUID) ([]Price, error)
	SaveAll(ctx context.Context, prices []Price) error
	DeleteByProductID(ctx context.Context, productID uuid.UUID) error
}

// PromotionRepository 是促销记录的端口。核心流水线只用 FindByCode，
// 写操作属于促销管理。
type PromotionRepository interface {
	FindByCode(ctx context.Context, code uuid.UUID) (*Promotion, error)
	FindAll(ctx context.Context) ([]Promotion, error)
	Save(ctx context.Context, promotion *Promotion) error
}

// OrderRepository 是订单的端口。
type OrderRepository interface {
	Save(ctx context.Context, result *OrderResult, ownerID uuid.UUID) (*OrderResult, error)
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]OrderResult, error)
	FindAll(ctx context.Context) ([]OrderResult, error)
}

// OrderEventPublisher 是订单事件的出站端口。
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *OrderPlaced) error
}
