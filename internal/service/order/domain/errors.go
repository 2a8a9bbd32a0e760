// internal/service/order/domain/errors.go
package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrCompositionInvalid 是构成校验的固定错误：不区分具体违规的披萨或商品行。
var ErrCompositionInvalid = errors.New(
	"Invalid pizza request: Cannot send more than one addition with same id, " +
		"its minimum amount is 1 maximum amount is 3, " +
		"for base and cheese amount allowed is only 1, and can ask only for one of its type")

// ErrEmptyOrder 表示请求中一张披萨都没有。
var ErrEmptyOrder = errors.New("order must contain at least one pizza")

// ProductNotFoundError 表示请求引用的商品不存在。
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product not found: %s", e.ProductID)
}

// ProductTypeMismatchError 表示商品存在，但存储的类型与请求声明的类型不一致。
type ProductTypeMismatchError struct {
	Requested ProductType
	ProductID uuid.UUID
}

func (e *ProductTypeMismatchError) Error() string {
	return fmt.Sprintf("Product type: %s does not exist for product id: %s", e.Requested, e.ProductID)
}

// ProductNotInInventoryError 表示商品没有库存记录。
type ProductNotInInventoryError struct {
	ProductID uuid.UUID
}

func (e *ProductNotInInventoryError) Error() string {
	return fmt.Sprintf("Product %s is not present in inventory", e.ProductID)
}

// InsufficientInventoryError 表示库存不足以覆盖台账上的 RealQuantity。
type InsufficientInventoryError struct {
	ProductID uuid.UUID
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("Insufficient inventory for product: %s", e.ProductID)
}

// PromotionNotFoundError 表示促销码无法解析到任何促销记录。
type PromotionNotFoundError struct {
	Code uuid.UUID
}

func (e *PromotionNotFoundError) Error() string {
	return fmt.Sprintf("No promotion found for id: %s", e.Code)
}

// PromotionInactiveError 表示促销记录存在但已停用。
type PromotionInactiveError struct {
	Code uuid.UUID
}

func (e *PromotionInactiveError) Error() string {
	return fmt.Sprintf("Current promo code %s is expired", e.Code)
}

// ThresholdNotMetError 表示满减策略在低于最低消费时被使用。
type ThresholdNotMetError struct {
	MinTotal int
	Code     uuid.UUID
}

func (e *ThresholdNotMetError) Error() string {
	return fmt.Sprintf("Purchase must be greater than $%d to apply the promotional code: %s", e.MinTotal, e.Code)
}

// ConfigurationError 是致命的配置错误：促销记录的描述码没有对应的策略。
// 这不是用户能修正的问题。
type ConfigurationError struct {
	DescriptiveCode DescriptiveCode
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no promotion strategy matches descriptive code: %s", e.DescriptiveCode)
}

// DepletionError 表示订单已经落库但库存扣减失败。
// 这是需要告警的致命不一致，不做静默重试。
type DepletionError struct {
	OrderID uuid.UUID
	Err     error
}

func (e *DepletionError) Error() string {
	return fmt.Sprintf("order %s persisted but inventory depletion failed: %v", e.OrderID, e.Err)
}

func (e *DepletionError) Unwrap() error { return e.Err }
