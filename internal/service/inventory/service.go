// internal/service/inventory/service.go
package inventory

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"forno/internal/pkg/logger"
	"forno/internal/service/order/domain"
)

// Service 负责库存的充足性校验、订单扣减、补货和查询。
//
// 校验和扣减是两个分离的操作（check-then-act）：校验在定价和促销之前，
// 扣减在订单落库之后。两个并发的相同订单可以在这两步之间竞争——
// 这是刻意保留的形态；真正的互斥需要库存存储提供事务或版本化写入
// 的保证，不在核心逻辑的范围内。
type Service struct {
	inventoryRepo domain.InventoryRepository
	productRepo   domain.ProductRepository
	tracer        trace.Tracer
}

func NewService(inventoryRepo domain.InventoryRepository, productRepo domain.ProductRepository, tracer trace.Tracer) *Service {
	return &Service{inventoryRepo: inventoryRepo, productRepo: productRepo, tracer: tracer}
}

// CheckAvailability 校验台账上每个商品都有库存记录，且可用数量
// 覆盖 RealQuantity。所有条目都检查完才返回，期间不做任何库存变更。
func (s *Service) CheckAvailability(ctx context.Context, ledger []domain.ProductLine) error {
	ctx, span := s.tracer.Start(ctx, "inventory.CheckAvailability")
	defer span.End()

	records, err := s.inventoryRepo.FindByProductIDs(ctx, productIDs(ledger))
	if err != nil {
		return err
	}

	byProduct := make(map[uuid.UUID]domain.InventoryRecord, len(records))
	for _, record := range records {
		byProduct[record.ProductID] = record
	}

	for _, line := range ledger {
		record, ok := byProduct[line.ProductID]
		if !ok {
			return &domain.ProductNotInInventoryError{ProductID: line.ProductID}
		}
		if record.AvailableQuantity < line.RealQuantity {
			return &domain.InsufficientInventoryError{ProductID: line.ProductID}
		}
	}
	return nil
}

// Deplete 按台账逐项扣减库存（减 RealQuantity）。
// 只应在订单成功落库之后调用。
func (s *Service) Deplete(ctx context.Context, ledger []domain.ProductLine) error {
	ctx, span := s.tracer.Start(ctx, "inventory.Deplete")
	defer span.End()
	span.SetAttributes(attribute.Int("ledger.size", len(ledger)))

	for _, line := range ledger {
		if _, err := s.inventoryRepo.ApplyDelta(ctx, line.ProductID, -line.RealQuantity); err != nil {
			return err
		}
	}
	return nil
}

// View 是库存查询/补货响应里带商品信息的一条记录。
type View struct {
	ProductID         uuid.UUID
	ProductName       string
	ProductType       domain.ProductType
	AvailableQuantity int
}

// Refill 为给定商品补货。补货按请求数量加回，不做尺寸折算。
func (s *Service) Refill(ctx context.Context, lines []domain.ProductLine) ([]View, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Refill")
	defer span.End()

	views := make([]View, 0, len(lines))
	for _, line := range lines {
		record, err := s.inventoryRepo.ApplyDelta(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		view, err := s.joinProduct(ctx, *record)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
		logger.Ctx(ctx).Info().
			Str("product_id", line.ProductID.String()).
			Int("added", line.Quantity).
			Int("available", record.AvailableQuantity).
			Msg("inventory refilled")
	}
	return views, nil
}

// Query 返回给定商品的库存，并补上商品名称和类型。
func (s *Service) Query(ctx context.Context, ids []uuid.UUID) ([]View, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Query")
	defer span.End()

	records, err := s.inventoryRepo.FindByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(records))
	for _, record := range records {
		view, err := s.joinProduct(ctx, record)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) joinProduct(ctx context.Context, record domain.InventoryRecord) (View, error) {
	product, err := s.productRepo.FindByID(ctx, record.ProductID)
	if err != nil {
		return View{}, err
	}
	view := View{
		ProductID:         record.ProductID,
		AvailableQuantity: record.AvailableQuantity,
	}
	if product != nil {
		view.ProductName = product.Name
		view.ProductType = product.Type
	}
	return view, nil
}

func productIDs(ledger []domain.ProductLine) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(ledger))
	for _, line := range ledger {
		ids = append(ids, line.ProductID)
	}
	return ids
}
