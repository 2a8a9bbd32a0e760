// internal/service/pricing/engine.go
package pricing

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"forno/internal/service/order/domain"
)

// Engine 负责计算每张披萨的单价并汇总订单总价。
type Engine struct {
	priceRepo domain.PriceRepository
	tracer    trace.Tracer
}

// NewEngine 创建一个定价引擎实例。
func NewEngine(priceRepo domain.PriceRepository, tracer trace.Tracer) *Engine {
	return &Engine{priceRepo: priceRepo, tracer: tracer}
}

// PriceOrder 为每张披萨计算单价，然后按单价从高到低排序并汇总总价。
//
// 单价 = 饼底价(不分尺寸) + 芝士价(按尺寸) + Σ 配料价(按尺寸) × 数量。
//
// 各披萨之间互不依赖，价格查询并发执行；汇总必须等全部查询完成，
// errgroup 保证了这一点。查询顺序不保证。
func (e *Engine) PriceOrder(ctx context.Context, pizzas []domain.Pizza) ([]domain.Pizza, int, error) {
	ctx, span := e.tracer.Start(ctx, "pricing.PriceOrder")
	defer span.End()

	priced := make([]domain.Pizza, len(pizzas))
	g, gctx := errgroup.WithContext(ctx)
	for i, pizza := range pizzas {
		g.Go(func() error {
			unitPrice, err := e.pizzaUnitPrice(gctx, pizza)
			if err != nil {
				return err
			}
			pizza.UnitPrice = unitPrice
			priced[i] = pizza
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	domain.SortPizzasByUnitPriceDesc(priced)

	total := 0
	for _, pizza := range priced {
		total += pizza.UnitPrice
	}

	span.SetAttributes(
		attribute.Int("order.pizza_count", len(priced)),
		attribute.Int("order.price_without_promotion", total),
	)
	return priced, total, nil
}

// pizzaUnitPrice 计算单张披萨的价格。
func (e *Engine) pizzaUnitPrice(ctx context.Context, pizza domain.Pizza) (int, error) {
	basePrice, err := e.basePrice(ctx, pizza.Base.ID)
	if err != nil {
		return 0, err
	}

	cheesePrice, err := e.cheesePrice(ctx, pizza.Cheese.ID, pizza.Size)
	if err != nil {
		return 0, err
	}

	additionsPrice, err := e.additionsPrice(ctx, pizza.Additions, pizza.Size)
	if err != nil {
		return 0, err
	}

	return basePrice + cheesePrice + additionsPrice, nil
}

// basePrice 查饼底价格。饼底只有 NOT_APPLICABLE 一条价格记录，按商品查即可。
func (e *Engine) basePrice(ctx context.Context, baseID uuid.UUID) (int, error) {
	prices, err := e.priceRepo.FindByProductID(ctx, baseID)
	if err != nil {
		return 0, err
	}
	if len(prices) == 0 {
		return 0, &domain.ProductNotFoundError{ProductID: baseID}
	}
	return prices[0].Value, nil
}

func (e *Engine) cheesePrice(ctx context.Context, cheeseID uuid.UUID, size domain.PizzaSize) (int, error) {
	prices, err := e.priceRepo.FindBySizeAndProductIDs(ctx, []uuid.UUID{cheeseID}, size)
	if err != nil {
		return 0, err
	}
	if len(prices) == 0 {
		return 0, &domain.ProductNotFoundError{ProductID: cheeseID}
	}
	return prices[0].Value, nil
}

func (e *Engine) additionsPrice(ctx context.Context, additions []domain.Addition, size domain.PizzaSize) (int, error) {
	if len(additions) == 0 {
		return 0, nil
	}

	amountByID := make(map[uuid.UUID]int, len(additions))
	ids := make([]uuid.UUID, 0, len(additions))
	for _, addition := range additions {
		amountByID[addition.ID] = addition.Amount
		ids = append(ids, addition.ID)
	}

	prices, err := e.priceRepo.FindBySizeAndProductIDs(ctx, ids, size)
	if err != nil {
		return 0, err
	}
	if len(prices) != len(ids) {
		for _, id := range ids {
			if !priceListed(prices, id) {
				return 0, &domain.ProductNotFoundError{ProductID: id}
			}
		}
	}

	total := 0
	for _, price := range prices {
		total += price.Value * amountByID[price.ProductID]
	}
	return total, nil
}

func priceListed(prices []domain.Price, id uuid.UUID) bool {
	for _, price := range prices {
		if price.ProductID == id {
			return true
		}
	}
	return false
}
