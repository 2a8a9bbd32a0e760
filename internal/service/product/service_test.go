package product

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace/noop"

	"forno/internal/service/order/domain"
)

type stubProductRepo struct {
	products map[uuid.UUID]*domain.Product
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	return r.products[id], nil
}

func (r *stubProductRepo) FindManyByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindAll(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) Save(_ context.Context, p *domain.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

type stubInventoryRepo struct {
	records map[uuid.UUID]*domain.InventoryRecord
}

func (r *stubInventoryRepo) FindByProductIDs(_ context.Context, ids []uuid.UUID) ([]domain.InventoryRecord, error) {
	out := make([]domain.InventoryRecord, 0, len(ids))
	for _, id := range ids {
		if record, ok := r.records[id]; ok {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) ApplyDelta(_ context.Context, productID uuid.UUID, delta int) (*domain.InventoryRecord, error) {
	record, ok := r.records[productID]
	if !ok {
		return nil, &domain.ProductNotInInventoryError{ProductID: productID}
	}
	record.AvailableQuantity += delta
	return record, nil
}

func (r *stubInventoryRepo) Save(_ context.Context, record *domain.InventoryRecord) error {
	r.records[record.ProductID] = record
	return nil
}

func (r *stubInventoryRepo) DeleteByProductID(_ context.Context, productID uuid.UUID) error {
	delete(r.records, productID)
	return nil
}

type stubPriceRepo struct {
	byProduct map[uuid.UUID][]domain.Price
}

func (r *stubPriceRepo) FindBySizeAndProductIDs(_ context.Context, ids []uuid.UUID, size domain.PizzaSize) ([]domain.Price, error) {
	out := make([]domain.Price, 0)
	for _, id := range ids {
		for _, price := range r.byProduct[id] {
			if price.Size == size {
				out = append(out, price)
			}
		}
	}
	return out, nil
}

func (r *stubPriceRepo) FindByProductID(_ context.Context, id uuid.UUID) ([]domain.Price, error) {
	return r.byProduct[id], nil
}

func (r *stubPriceRepo) SaveAll(_ context.Context, prices []domain.Price) error {
	for _, price := range prices {
		r.byProduct[price.ProductID] = append(r.byProduct[price.ProductID], price)
	}
	return nil
}

func (r *stubPriceRepo) DeleteByProductID(_ context.Context, productID uuid.UUID) error {
	delete(r.byProduct, productID)
	return nil
}

func newTestService() (*Service, *stubProductRepo, *stubInventoryRepo, *stubPriceRepo) {
	productRepo := &stubProductRepo{products: make(map[uuid.UUID]*domain.Product)}
	inventoryRepo := &stubInventoryRepo{records: make(map[uuid.UUID]*domain.InventoryRecord)}
	priceRepo := &stubPriceRepo{byProduct: make(map[uuid.UUID][]domain.Price)}
	svc := NewService(productRepo, inventoryRepo, priceRepo, noop.NewTracerProvider().Tracer("test"))
	return svc, productRepo, inventoryRepo, priceRepo
}

func TestCheckExistence(t *testing.T) {
	svc, productRepo, _, _ := newTestService()
	cheese := uuid.New()
	productRepo.products[cheese] = &domain.Product{ID: cheese, Name: "gouda", Type: domain.TypeCheese}

	err := svc.CheckExistence(context.Background(), []domain.ProductLine{
		{ProductID: cheese, ProductType: domain.TypeCheese},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckExistenceUnknownProduct(t *testing.T) {
	svc, _, _, _ := newTestService()
	missing := uuid.New()

	err := svc.CheckExistence(context.Background(), []domain.ProductLine{
		{ProductID: missing, ProductType: domain.TypeBase},
	})
	var notFound *domain.ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ProductNotFoundError, got %v", err)
	}
	if want := "Product not found: " + missing.String(); err.Error() != want {
		t.Errorf("error message = %q, want %q", err.Error(), want)
	}
}

func TestCheckExistenceTypeMismatch(t *testing.T) {
	svc, productRepo, _, _ := newTestService()
	id := uuid.New()
	productRepo.products[id] = &domain.Product{ID: id, Name: "ham", Type: domain.TypeAddition}

	err := svc.CheckExistence(context.Background(), []domain.ProductLine{
		{ProductID: id, ProductType: domain.TypeCheese},
	})
	var mismatch *domain.ProductTypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ProductTypeMismatchError, got %v", err)
	}
	if want := "Product type: CHEESE does not exist for product id: " + id.String(); err.Error() != want {
		t.Errorf("error message = %q, want %q", err.Error(), want)
	}
}

func TestAddPersistsProductInventoryAndPrices(t *testing.T) {
	svc, productRepo, inventoryRepo, priceRepo := newTestService()

	view, err := svc.Add(context.Background(), NewProduct{
		Name: "pepperoni",
		Type: domain.TypeAddition,
		PriceBySize: map[domain.PizzaSize]int{
			domain.SizeSmall:  2,
			domain.SizeMedium: 3,
			domain.SizeBig:    4,
		},
		InitialInventory: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := productRepo.products[view.ID]; !ok {
		t.Error("product not persisted")
	}
	record, ok := inventoryRepo.records[view.ID]
	if !ok || record.AvailableQuantity != 50 {
		t.Errorf("inventory record = %+v, want quantity 50", record)
	}
	if len(priceRepo.byProduct[view.ID]) != 3 {
		t.Errorf("persisted %d prices, want 3", len(priceRepo.byProduct[view.ID]))
	}
}

func TestAddRejectsIncompletePrices(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Add(context.Background(), NewProduct{
		Name:        "cheddar",
		Type:        domain.TypeCheese,
		PriceBySize: map[domain.PizzaSize]int{domain.SizeSmall: 2},
	})
	if err == nil || !strings.Contains(err.Error(), "must include price for BIG, MEDIUM and SMALL sizes") {
		t.Fatalf("expected sized price error, got %v", err)
	}

	_, err = svc.Add(context.Background(), NewProduct{
		Name:        "thin crust",
		Type:        domain.TypeBase,
		PriceBySize: map[domain.PizzaSize]int{domain.SizeSmall: 5},
	})
	if err == nil || !strings.Contains(err.Error(), "NOT_APPLICABLE") {
		t.Fatalf("expected base price error, got %v", err)
	}
}

func TestDeleteRemovesAllRecords(t *testing.T) {
	svc, productRepo, inventoryRepo, priceRepo := newTestService()
	id := uuid.New()
	productRepo.products[id] = &domain.Product{ID: id, Name: "rustic", Type: domain.TypeBase}
	inventoryRepo.records[id] = &domain.InventoryRecord{ID: uuid.New(), ProductID: id, AvailableQuantity: 3}
	priceRepo.byProduct[id] = []domain.Price{{ID: uuid.New(), ProductID: id, Value: 9, Size: domain.SizeNotApplicable}}

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := productRepo.products[id]; ok {
		t.Error("product still present after delete")
	}
	if _, ok := inventoryRepo.records[id]; ok {
		t.Error("inventory record still present after delete")
	}
	if _, ok := priceRepo.byProduct[id]; ok {
		t.Error("prices still present after delete")
	}
}
