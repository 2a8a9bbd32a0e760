// internal/infrastructure/persistence/models.go
package persistence

// 数据库模型与领域模型分离，转换逻辑集中在 mapper.go。
// 主键统一用 char(36) 存 UUID 字符串，省去驱动层的二进制转换。

type ProductModel struct {
	ProductID string `gorm:"column:product_id;type:char(36);primaryKey"`
	Name      string `gorm:"column:name"`
	Type      string `gorm:"column:type;type:varchar(16)"`
}

func (ProductModel) TableName() string {
	return "product"
}

type PriceModel struct {
	ID        string `gorm:"column:id;type:char(36);primaryKey"`
	ProductID string `gorm:"column:product_id;type:char(36);index"`
	Value     int    `gorm:"column:value"`
	PizzaSize string `gorm:"column:pizza_size;type:varchar(16)"`
}

func (PriceModel) TableName() string {
	return "price"
}

type InventoryModel struct {
	ID                string `gorm:"column:id;type:char(36);primaryKey"`
	ProductID         string `gorm:"column:product_id;type:char(36);uniqueIndex"`
	AvailableQuantity int    `gorm:"column:available_quantity"`
}

func (InventoryModel) TableName() string {
	return "inventory"
}

type PromotionModel struct {
	Code            string `gorm:"column:code;type:char(36);primaryKey"`
	DescriptiveCode string `gorm:"column:descriptive_code;type:varchar(64)"`
	Description     string `gorm:"column:description"`
	Active          bool   `gorm:"column:active"`
}

func (PromotionModel) TableName() string {
	return "promotion"
}

type OrderModel struct {
	OrderID               string  `gorm:"column:order_id;type:char(36);primaryKey"`
	UserID                string  `gorm:"column:user_id;type:char(36);index"`
	PriceWithoutPromotion int     `gorm:"column:price_without_promotion"`
	PriceWithPromotion    *int    `gorm:"column:price_with_promotion"`
	PromoCode             *string `gorm:"column:promo_code;type:char(36)"`
	PromoCodeDescription  *string `gorm:"column:promo_code_description"`
	// 披萨明细整体序列化为 JSON 存储；订单一旦生成就不再变更，不需要按行查询
	Pizzas string `gorm:"column:pizzas;type:text"`
}

func (OrderModel) TableName() string {
	return "pizza_order"
}
