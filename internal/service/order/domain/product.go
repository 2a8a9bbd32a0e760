// internal/service/order/domain/product.go
package domain

import "github.com/google/uuid"

// ProductType 定义了披萨商品的类型。
type ProductType string

const (
	TypeBase     ProductType = "BASE"
	TypeCheese   ProductType = "CHEESE"
	TypeAddition ProductType = "ADDITION"
)

// Valid 判断类型是否为已知值。
func (t ProductType) Valid() bool {
	switch t {
	case TypeBase, TypeCheese, TypeAddition:
		return true
	}
	return false
}

// Product 是商品目录中的一条记录。
type Product struct {
	ID   uuid.UUID
	Name string
	Type ProductType
}

// Price 是某个商品在某个尺寸下的价格记录。
// Value 以最小货币单位表示，整条流水线不做任何舍入。
type Price struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Value     int
	Size      PizzaSize
}

// InventoryRecord 是某个商品的库存记录。
type InventoryRecord struct {
	ID                uuid.UUID
	ProductID         uuid.UUID
	AvailableQuantity int
}
