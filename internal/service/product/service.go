// internal/service/product/service.go
package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"forno/internal/pkg/logger"
	"forno/internal/service/order/domain"
)

// Service 负责商品存在性校验和商品目录的管理。
type Service struct {
	productRepo   domain.ProductRepository
	inventoryRepo domain.InventoryRepository
	priceRepo     domain.PriceRepository
	tracer        trace.Tracer
}

func NewService(productRepo domain.ProductRepository, inventoryRepo domain.InventoryRepository, priceRepo domain.PriceRepository, tracer trace.Tracer) *Service {
	return &Service{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		priceRepo:     priceRepo,
		tracer:        tracer,
	}
}

// CheckExistence 校验台账上的每个商品都存在，且存储的类型与请求声明一致。
func (s *Service) CheckExistence(ctx context.Context, ledger []domain.ProductLine) error {
	ctx, span := s.tracer.Start(ctx, "product.CheckExistence")
	defer span.End()

	for _, line := range ledger {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.ProductNotFoundError{ProductID: line.ProductID}
		}
		if product.Type != line.ProductType {
			return &domain.ProductTypeMismatchError{Requested: line.ProductType, ProductID: line.ProductID}
		}
	}
	return nil
}

// ResolveNames 按台账批量取回商品，供结果组装时填充展示名。
func (s *Service) ResolveNames(ctx context.Context, ledger []domain.ProductLine) (map[uuid.UUID]string, error) {
	products, err := s.productRepo.FindManyByIDs(ctx, productIDs(ledger))
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}

// NewProduct 是新增商品的入参：名称、类型、各尺寸价格和初始库存。
type NewProduct struct {
	Name             string
	Type             domain.ProductType
	PriceBySize      map[domain.PizzaSize]int
	InitialInventory int
}

// View 是商品管理接口的展示结构。
type View struct {
	ID          uuid.UUID
	Name        string
	Type        domain.ProductType
	Inventory   int
	PriceBySize map[domain.PizzaSize]int
}

// Add 新增一个商品，并落库它的价格和初始库存。
//
// 价格规则：CHEESE/ADDITION 必须给全 SMALL、MEDIUM、BIG 三个尺寸；
// BASE 只允许 NOT_APPLICABLE 一条价格。
func (s *Service) Add(ctx context.Context, req NewProduct) (*View, error) {
	ctx, span := s.tracer.Start(ctx, "product.Add")
	defer span.End()

	if err := validatePriceBySize(req); err != nil {
		return nil, err
	}

	product := &domain.Product{ID: uuid.New(), Name: req.Name, Type: req.Type}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	record := &domain.InventoryRecord{
		ID:                uuid.New(),
		ProductID:         product.ID,
		AvailableQuantity: req.InitialInventory,
	}
	if err := s.inventoryRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	prices := make([]domain.Price, 0, len(req.PriceBySize))
	for size, value := range req.PriceBySize {
		prices = append(prices, domain.Price{
			ID:        uuid.New(),
			ProductID: product.ID,
			Value:     value,
			Size:      size,
		})
	}
	if err := s.priceRepo.SaveAll(ctx, prices); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().
		Str("product_id", product.ID.String()).
		Str("type", string(product.Type)).
		Msg("product added")

	return &View{
		ID:          product.ID,
		Name:        product.Name,
		Type:        product.Type,
		Inventory:   record.AvailableQuantity,
		PriceBySize: req.PriceBySize,
	}, nil
}

// Delete 删除商品及其库存和价格记录。
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "product.Delete")
	defer span.End()

	if err := s.inventoryRepo.DeleteByProductID(ctx, id); err != nil {
		return err
	}
	if err := s.priceRepo.DeleteByProductID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.DeleteByID(ctx, id)
}

// List 返回全部商品及其库存和按尺寸的价格。
func (s *Service) List(ctx context.Context) ([]View, error) {
	ctx, span := s.tracer.Start(ctx, "product.List")
	defer span.End()

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(products))
	for _, product := range products {
		view := View{ID: product.ID, Name: product.Name, Type: product.Type}

		records, err := s.inventoryRepo.FindByProductIDs(ctx, []uuid.UUID{product.ID})
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			view.Inventory = records[0].AvailableQuantity
		}

		prices, err := s.priceRepo.FindByProductID(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		view.PriceBySize = make(map[domain.PizzaSize]int, len(prices))
		for _, price := range prices {
			view.PriceBySize[price.Size] = price.Value
		}

		views = append(views, view)
	}
	return views, nil
}

var sizedPrices = map[domain.PizzaSize]struct{}{
	domain.SizeSmall:  {},
	domain.SizeMedium: {},
	domain.SizeBig:    {},
}

func validatePriceBySize(req NewProduct) error {
	switch req.Type {
	case domain.TypeCheese, domain.TypeAddition:
		if len(req.PriceBySize) != len(sizedPrices) {
			return fmt.Errorf("product type %s must include price for BIG, MEDIUM and SMALL sizes", req.Type)
		}
		for size := range sizedPrices {
			if _, ok := req.PriceBySize[size]; !ok {
				return fmt.Errorf("product type %s must include price for BIG, MEDIUM and SMALL sizes", req.Type)
			}
		}
	case domain.TypeBase:
		if len(req.PriceBySize) != 1 {
			return fmt.Errorf("product type BASE must only have price for NOT_APPLICABLE pizza size")
		}
		if _, ok := req.PriceBySize[domain.SizeNotApplicable]; !ok {
			return fmt.Errorf("product type BASE must only have price for NOT_APPLICABLE pizza size")
		}
	default:
		return fmt.Errorf("unknown product type: %s", req.Type)
	}
	return nil
}

func productIDs(ledger []domain.ProductLine) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(ledger))
	for _, line := range ledger {
		ids = append(ids, line.ProductID)
	}
	return ids
}
