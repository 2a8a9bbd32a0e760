// internal/service/order/application/service.go
package application

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"forno/internal/pkg/logger"
	"forno/internal/pkg/metrics"
	"forno/internal/service/inventory"
	"forno/internal/service/order/domain"
	"forno/internal/service/pricing"
	"forno/internal/service/product"
	"forno/internal/service/promotion"
)

// OrderService 只负责业务流程编排：
// 台账聚合 → 构成校验 → 存在性/库存闸口 → 定价 → 促销 → 组装落库。
type OrderService struct {
	products   *product.Service
	inventory  *inventory.Service
	pricing    *pricing.Engine
	promotions *promotion.Dispatcher

	orderRepo domain.OrderRepository
	publisher domain.OrderEventPublisher
	tracer    trace.Tracer
}

// NewOrderService 创建订单编排服务。publisher 可以为 nil，表示不发事件。
func NewOrderService(
	products *product.Service,
	inventorySvc *inventory.Service,
	pricingEngine *pricing.Engine,
	promotions *promotion.Dispatcher,
	orderRepo domain.OrderRepository,
	publisher domain.OrderEventPublisher,
	tracer trace.Tracer,
) *OrderService {
	return &OrderService{
		products:   products,
		inventory:  inventorySvc,
		pricing:    pricingEngine,
		promotions: promotions,
		orderRepo:  orderRepo,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// ProcessOrder 执行整条下单流水线并返回定价结果。
//
// 各阶段严格顺序执行；任何一个阶段失败，后续阶段全部跳过，
// 本次请求不会发生任何库存变更。库存扣减只在订单落库之后执行，
// 扣减失败是致命不一致：记录告警并原样上抛，不做重试。
func (s *OrderService) ProcessOrder(ctx context.Context, req *domain.OrderRequest, ownerID uuid.UUID) (*domain.OrderResult, error) {
	ctx, span := s.tracer.Start(ctx, "order.ProcessOrder")
	defer span.End()
	span.SetAttributes(attribute.Int("order.pizza_count", len(req.Pizzas)))

	result, err := s.processOrder(ctx, req, ownerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order processing failed")
		metrics.OrdersProcessed.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.OrdersProcessed.WithLabelValues("ok").Inc()
	metrics.OrderTotalPrice.Observe(float64(result.PriceWithoutPromotion))
	return result, nil
}

func (s *OrderService) processOrder(ctx context.Context, req *domain.OrderRequest, ownerID uuid.UUID) (*domain.OrderResult, error) {
	if len(req.Pizzas) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	// 1. 构成校验：逐张披萨按类型套规则，任何违规中止整个请求
	if err := domain.ValidateRequest(req.Pizzas); err != nil {
		return nil, err
	}

	// 2. 聚合成按商品去重的台账；后续的存在性/库存检查和扣减都作用于它
	ledger := domain.AggregateLines(req.Pizzas)

	// 3. 存在性与库存闸口：所有条目检查完才继续，期间不动库存
	if err := s.products.CheckExistence(ctx, ledger); err != nil {
		return nil, err
	}
	if err := s.inventory.CheckAvailability(ctx, ledger); err != nil {
		return nil, err
	}

	// 4. 组装待定价的披萨并逐张定价（定价不作用于台账）
	names, err := s.products.ResolveNames(ctx, ledger)
	if err != nil {
		return nil, err
	}
	pizzas := assemblePizzas(req.Pizzas, names)

	pricedPizzas, total, err := s.pricing.PriceOrder(ctx, pizzas)
	if err != nil {
		return nil, err
	}

	result := &domain.OrderResult{
		OrderID:               uuid.New(),
		Pizzas:                pricedPizzas,
		PriceWithoutPromotion: total,
	}

	// 5. 促销：没有促销码时原样通过
	if err := s.promotions.Apply(ctx, result, req.PromoCode); err != nil {
		return nil, err
	}

	// 6. 先落库订单，再扣库存。扣减失败时订单已经存在，
	//    这里只能上抛并告警，留给人工或对账处理。
	if _, err := s.orderRepo.Save(ctx, result, ownerID); err != nil {
		return nil, err
	}
	if err := s.inventory.Deplete(ctx, ledger); err != nil {
		metrics.DepletionFailures.Inc()
		logger.Ctx(ctx).Error().
			Err(err).
			Str("order_id", result.OrderID.String()).
			Msg("CRITICAL: order persisted but inventory depletion failed")
		return nil, &domain.DepletionError{OrderID: result.OrderID, Err: err}
	}

	s.publishOrderPlaced(ctx, result, ownerID)

	logger.Ctx(ctx).Info().
		Str("order_id", result.OrderID.String()).
		Int("price_without_promotion", result.PriceWithoutPromotion).
		Msg("order processed")
	return result, nil
}

// OrdersForUser 返回某个用户的全部订单。
func (s *OrderService) OrdersForUser(ctx context.Context, ownerID uuid.UUID) ([]domain.OrderResult, error) {
	ctx, span := s.tracer.Start(ctx, "order.OrdersForUser")
	defer span.End()
	return s.orderRepo.FindAllByOwner(ctx, ownerID)
}

// Orders 返回订单列表；ownerID 为 nil 时返回全部。
func (s *OrderService) Orders(ctx context.Context, ownerID *uuid.UUID) ([]domain.OrderResult, error) {
	ctx, span := s.tracer.Start(ctx, "order.Orders")
	defer span.End()
	if ownerID != nil {
		return s.orderRepo.FindAllByOwner(ctx, *ownerID)
	}
	return s.orderRepo.FindAll(ctx)
}

// assemblePizzas 把请求里的披萨配置转成待定价的披萨，填充展示名。
// 构成校验已经保证每张披萨恰好一行 BASE、一行 CHEESE。
func assemblePizzas(specs []domain.PizzaSpec, names map[uuid.UUID]string) []domain.Pizza {
	pizzas := make([]domain.Pizza, 0, len(specs))
	for _, spec := range specs {
		pizza := domain.Pizza{Size: spec.Size}
		for _, line := range spec.Lines {
			switch line.ProductType {
			case domain.TypeBase:
				pizza.Base = domain.PizzaPart{ID: line.ProductID, Name: names[line.ProductID]}
			case domain.TypeCheese:
				pizza.Cheese = domain.PizzaPart{ID: line.ProductID, Name: names[line.ProductID]}
			case domain.TypeAddition:
				pizza.Additions = append(pizza.Additions, domain.Addition{
					ID:     line.ProductID,
					Name:   names[line.ProductID],
					Amount: line.Quantity,
				})
			}
		}
		pizzas = append(pizzas, pizza)
	}
	return pizzas
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, result *domain.OrderResult, ownerID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	event := domain.NewOrderPlaced(result, ownerID)
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		// 事件只用于通知，发布失败不影响订单本身
		logger.Ctx(ctx).Warn().Err(err).Str("order_id", result.OrderID.String()).Msg("failed to publish OrderPlaced event")
	}
}
