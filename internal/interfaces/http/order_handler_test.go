package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace/noop"

	"forno/internal/service/inventory"
	"forno/internal/service/order/application"
	"forno/internal/service/order/domain"
	"forno/internal/service/pricing"
	"forno/internal/service/product"
	"forno/internal/service/promotion"
)

// orderBackend 用内存仓储搭出真实的下单流水线，供处理器测试驱动。
type orderBackend struct {
	baseID   uuid.UUID
	cheeseID uuid.UUID

	inventory    map[uuid.UUID]int
	products     map[uuid.UUID]*domain.Product
	savedOrders  int
	depletionErr error
}

type beProductRepo struct{ be *orderBackend }

func (r beProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	return r.be.products[id], nil
}

func (r beProductRepo) FindManyByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.be.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r beProductRepo) FindAll(context.Context) ([]domain.Product, error) { return nil, nil }

func (r beProductRepo) Save(context.Context, *domain.Product) error { return nil }

func (r beProductRepo) DeleteByID(context.Context, uuid.UUID) error { return nil }

type beInventoryRepo struct{ be *orderBackend }

func (r beInventoryRepo) FindByProductIDs(_ context.Context, ids []uuid.UUID) ([]domain.InventoryRecord, error) {
	out := make([]domain.InventoryRecord, 0, len(ids))
	for _, id := range ids {
		if qty, ok := r.be.inventory[id]; ok {
			out = append(out, domain.InventoryRecord{ID: uuid.New(), ProductID: id, AvailableQuantity: qty})
		}
	}
	return out, nil
}

func (r beInventoryRepo) ApplyDelta(_ context.Context, productID uuid.UUID, delta int) (*domain.InventoryRecord, error) {
	if r.be.depletionErr != nil {
		return nil, r.be.depletionErr
	}
	r.be.inventory[productID] += delta
	return &domain.InventoryRecord{ProductID: productID, AvailableQuantity: r.be.inventory[productID]}, nil
}

func (r beInventoryRepo) Save(context.Context, *domain.InventoryRecord) error { return nil }

func (r beInventoryRepo) DeleteByProductID(context.Context, uuid.UUID) error { return nil }

type bePriceRepo struct{ be *orderBackend }

func (r bePriceRepo) FindBySizeAndProductIDs(_ context.Context, ids []uuid.UUID, size domain.PizzaSize) ([]domain.Price, error) {
	out := make([]domain.Price, 0, len(ids))
	for _, id := range ids {
		if id == r.be.cheeseID {
			out = append(out, domain.Price{ID: uuid.New(), ProductID: id, Value: 5, Size: size})
		}
	}
	return out, nil
}

func (r bePriceRepo) FindByProductID(_ context.Context, id uuid.UUID) ([]domain.Price, error) {
	if id == r.be.baseID {
		return []domain.Price{{ID: uuid.New(), ProductID: id, Value: 10, Size: domain.SizeNotApplicable}}, nil
	}
	return nil, nil
}

func (r bePriceRepo) SaveAll(context.Context, []domain.Price) error { return nil }

func (r bePriceRepo) DeleteByProductID(context.Context, uuid.UUID) error { return nil }

type bePromotionRepo struct{}

func (bePromotionRepo) FindByCode(context.Context, uuid.UUID) (*domain.Promotion, error) {
	return nil, nil
}

func (bePromotionRepo) FindAll(context.Context) ([]domain.Promotion, error) { return nil, nil }

func (bePromotionRepo) Save(context.Context, *domain.Promotion) error { return nil }

type beOrderRepo struct{ be *orderBackend }

func (r beOrderRepo) Save(_ context.Context, result *domain.OrderResult, _ uuid.UUID) (*domain.OrderResult, error) {
	r.be.savedOrders++
	return result, nil
}

func (r beOrderRepo) FindAllByOwner(context.Context, uuid.UUID) ([]domain.OrderResult, error) {
	return nil, nil
}

func (r beOrderRepo) FindAll(context.Context) ([]domain.OrderResult, error) { return nil, nil }

// recordingIdemStore 记录幂等键的占用和释放次数。
type recordingIdemStore struct {
	reserved int
	released int
}

func (s *recordingIdemStore) Reserve(context.Context, string) (bool, error) {
	s.reserved++
	return true, nil
}

func (s *recordingIdemStore) Release(context.Context, string) error {
	s.released++
	return nil
}

func newOrderBackend() *orderBackend {
	be := &orderBackend{
		baseID:    uuid.New(),
		cheeseID:  uuid.New(),
		inventory: make(map[uuid.UUID]int),
	}
	be.products = map[uuid.UUID]*domain.Product{
		be.baseID:   {ID: be.baseID, Name: "classic dough", Type: domain.TypeBase},
		be.cheeseID: {ID: be.cheeseID, Name: "mozzarella", Type: domain.TypeCheese},
	}
	be.inventory[be.baseID] = 10
	be.inventory[be.cheeseID] = 10
	return be
}

func (be *orderBackend) newHandler(idem IdempotencyStore) *OrderHandler {
	tracer := noop.NewTracerProvider().Tracer("test")
	svc := application.NewOrderService(
		product.NewService(beProductRepo{be}, beInventoryRepo{be}, bePriceRepo{be}, tracer),
		inventory.NewService(beInventoryRepo{be}, beProductRepo{be}, tracer),
		pricing.NewEngine(bePriceRepo{be}, tracer),
		promotion.NewDispatcher(bePromotionRepo{}, tracer),
		beOrderRepo{be}, nil, tracer,
	)
	return NewOrderHandler(svc, idem)
}

func (be *orderBackend) placeOrderRequest(t *testing.T) *http.Request {
	t.Helper()
	one := 1
	body, err := json.Marshal(application.OrderRequestDTO{
		PizzaRequests: []application.PizzaRequestDTO{{
			PizzaSize: "SMALL",
			Products: []application.ProductLineDTO{
				{ID: be.baseID.String(), ProductType: "BASE", Quantity: &one},
				{ID: be.cheeseID.String(), ProductType: "CHEESE", Quantity: &one},
			},
		}},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/order", bytes.NewReader(body))
	req.Header.Set("X-User-ID", uuid.New().String())
	req.Header.Set("Idempotency-Key", "order-key-1")
	return req
}

func TestPlaceOrderKeepsIdempotencyKeyOnDepletionFailure(t *testing.T) {
	be := newOrderBackend()
	be.depletionErr = errors.New("inventory store offline")
	idem := &recordingIdemStore{}
	handler := be.newHandler(idem)

	rec := httptest.NewRecorder()
	handler.placeOrder(rec, be.placeOrderRequest(t))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if be.savedOrders != 1 {
		t.Fatalf("saved %d orders, want 1", be.savedOrders)
	}
	// 订单已落库：释放幂等键会让重试生成重复订单
	if idem.reserved != 1 || idem.released != 0 {
		t.Errorf("idempotency key reserved=%d released=%d, want reserved once and never released",
			idem.reserved, idem.released)
	}
}

func TestPlaceOrderReleasesIdempotencyKeyBeforePersist(t *testing.T) {
	be := newOrderBackend()
	be.inventory[be.cheeseID] = 0 // 库存不足，落库之前失败
	idem := &recordingIdemStore{}
	handler := be.newHandler(idem)

	rec := httptest.NewRecorder()
	handler.placeOrder(rec, be.placeOrderRequest(t))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if be.savedOrders != 0 {
		t.Fatalf("saved %d orders, want 0", be.savedOrders)
	}
	if idem.reserved != 1 || idem.released != 1 {
		t.Errorf("idempotency key reserved=%d released=%d, want reserved and released once",
			idem.reserved, idem.released)
	}
}

func TestPlaceOrderDuplicateIdempotencyKey(t *testing.T) {
	be := newOrderBackend()
	handler := be.newHandler(&conflictIdemStore{})

	rec := httptest.NewRecorder()
	handler.placeOrder(rec, be.placeOrderRequest(t))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if be.savedOrders != 0 {
		t.Error("order processed despite duplicate idempotency key")
	}
}

// conflictIdemStore 模拟键已被占用的情况。
type conflictIdemStore struct{}

func (conflictIdemStore) Reserve(context.Context, string) (bool, error) { return false, nil }

func (conflictIdemStore) Release(context.Context, string) error { return nil }
