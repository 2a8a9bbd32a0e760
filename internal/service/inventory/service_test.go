package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace/noop"

	"forno/internal/service/order/domain"
)

type stubInventoryRepo struct {
	available map[uuid.UUID]int
	deltas    []appliedDelta
}

type appliedDelta struct {
	productID uuid.UUID
	delta     int
}

func (r *stubInventoryRepo) FindByProductIDs(_ context.Context, ids []uuid.UUID) ([]domain.InventoryRecord, error) {
	out := make([]domain.InventoryRecord, 0, len(ids))
	for _, id := range ids {
		if qty, ok := r.available[id]; ok {
			out = append(out, domain.InventoryRecord{ID: uuid.New(), ProductID: id, AvailableQuantity: qty})
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) ApplyDelta(_ context.Context, productID uuid.UUID, delta int) (*domain.InventoryRecord, error) {
	if _, ok := r.available[productID]; !ok {
		return nil, &domain.ProductNotInInventoryError{ProductID: productID}
	}
	r.available[productID] += delta
	r.deltas = append(r.deltas, appliedDelta{productID: productID, delta: delta})
	return &domain.InventoryRecord{ProductID: productID, AvailableQuantity: r.available[productID]}, nil
}

func (r *stubInventoryRepo) Save(_ context.Context, record *domain.InventoryRecord) error {
	r.available[record.ProductID] = record.AvailableQuantity
	return nil
}

func (r *stubInventoryRepo) DeleteByProductID(_ context.Context, productID uuid.UUID) error {
	delete(r.available, productID)
	return nil
}

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

func (r *stubProductRepo) FindAll(context.Context) ([]domain.Product, error) { return nil, nil }

func (r *stubProductRepo) Save(_ context.Context, p *domain.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func newTestService(available map[uuid.UUID]int) (*Service, *stubInventoryRepo) {
	invRepo := &stubInventoryRepo{available: available}
	prodRepo := &stubProductRepo{products: make(map[uuid.UUID]*domain.Product)}
	return NewService(invRepo, prodRepo, noop.NewTracerProvider().Tracer("test")), invRepo
}

func TestCheckAvailability(t *testing.T) {
	stocked := uuid.New()
	svc, _ := newTestService(map[uuid.UUID]int{stocked: 5})

	if err := svc.CheckAvailability(context.Background(), []domain.ProductLine{
		{ProductID: stocked, RealQuantity: 5},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckAvailabilityMissingRecord(t *testing.T) {
	missing := uuid.New()
	svc, _ := newTestService(map[uuid.UUID]int{})

	err := svc.CheckAvailability(context.Background(), []domain.ProductLine{
		{ProductID: missing, RealQuantity: 1},
	})
	var notInStock *domain.ProductNotInInventoryError
	if !errors.As(err, &notInStock) {
		t.Fatalf("expected ProductNotInInventoryError, got %v", err)
	}
	if want := "Product " + missing.String() + " is not present in inventory"; err.Error() != want {
		t.Errorf("error message = %q, want %q", err.Error(), want)
	}
}

func TestCheckAvailabilityInsufficient(t *testing.T) {
	scarce := uuid.New()
	svc, _ := newTestService(map[uuid.UUID]int{scarce: 5})

	err := svc.CheckAvailability(context.Background(), []domain.ProductLine{
		{ProductID: scarce, RealQuantity: 6},
	})
	var insufficient *domain.InsufficientInventoryError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientInventoryError, got %v", err)
	}
	if want := "Insufficient inventory for product: " + scarce.String(); err.Error() != want {
		t.Errorf("error message = %q, want %q", err.Error(), want)
	}
}

func TestDepleteSubtractsRealQuantity(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	svc, repo := newTestService(map[uuid.UUID]int{first: 10, second: 8})

	err := svc.Deplete(context.Background(), []domain.ProductLine{
		{ProductID: first, RealQuantity: 6},
		{ProductID: second, RealQuantity: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.available[first] != 4 {
		t.Errorf("first product left %d, want 4", repo.available[first])
	}
	if repo.available[second] != 6 {
		t.Errorf("second product left %d, want 6", repo.available[second])
	}
}

func TestRefillAddsRequestedQuantity(t *testing.T) {
	id := uuid.New()
	invRepo := &stubInventoryRepo{available: map[uuid.UUID]int{id: 3}}
	prodRepo := &stubProductRepo{products: map[uuid.UUID]*domain.Product{
		id: {ID: id, Name: "mozzarella", Type: domain.TypeCheese},
	}}
	svc := NewService(invRepo, prodRepo, noop.NewTracerProvider().Tracer("test"))

	views, err := svc.Refill(context.Background(), []domain.ProductLine{{ProductID: id, Quantity: 7}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if views[0].AvailableQuantity != 10 {
		t.Errorf("AvailableQuantity = %d, want 10", views[0].AvailableQuantity)
	}
	if views[0].ProductName != "mozzarella" || views[0].ProductType != domain.TypeCheese {
		t.Errorf("product info not joined: %+v", views[0])
	}
}
