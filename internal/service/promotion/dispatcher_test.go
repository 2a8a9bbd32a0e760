package promotion

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace/noop"

	"forno/internal/service/order/domain"
)

type stubPromotionRepo struct {
	byCode map[uuid.UUID]*domain.Promotion
}

func (r *stubPromotionRepo) FindByCode(_ context.Context, code uuid.UUID) (*domain.Promotion, error) {
	return r.byCode[code], nil
}

func (r *stubPromotionRepo) FindAll(context.Context) ([]domain.Promotion, error) { return nil, nil }

func (r *stubPromotionRepo) Save(context.Context, *domain.Promotion) error { return nil }

func newTestDispatcher(promos ...*domain.Promotion) *Dispatcher {
	repo := &stubPromotionRepo{byCode: make(map[uuid.UUID]*domain.Promotion)}
	for _, promo := range promos {
		repo.byCode[promo.Code] = promo
	}
	return NewDispatcher(repo, noop.NewTracerProvider().Tracer("test"))
}

func TestApplyWithoutCodeIsPassthrough(t *testing.T) {
	d := newTestDispatcher()
	result := &domain.OrderResult{PriceWithoutPromotion: 50}

	if err := d.Apply(context.Background(), result, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PriceWithPromotion != nil {
		t.Error("PriceWithPromotion should stay nil without a promo code")
	}
}

func TestApplyUnknownCode(t *testing.T) {
	d := newTestDispatcher()
	code := uuid.New()
	result := &domain.OrderResult{PriceWithoutPromotion: 50}

	err := d.Apply(context.Background(), result, &code)
	var notFound *domain.PromotionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PromotionNotFoundError, got %v", err)
	}
	if want := "No promotion found for id: " + code.String(); err.Error() != want {
		t.Errorf("error message = %q, want %q", err.Error(), want)
	}
}

func TestApplyInactivePromotion(t *testing.T) {
	promo := &domain.Promotion{Code: uuid.New(), DescriptiveCode: domain.Code30Off, Active: false}
	d := newTestDispatcher(promo)
	result := &domain.OrderResult{PriceWithoutPromotion: 50}

	err := d.Apply(context.Background(), result, &promo.Code)
	var inactive *domain.PromotionInactiveError
	if !errors.As(err, &inactive) {
		t.Fatalf("expected PromotionInactiveError, got %v", err)
	}
	if want := "Current promo code " + promo.Code.String() + " is expired"; err.Error() != want {
		t.Errorf("error message = %q, want %q", err.Error(), want)
	}
}

func TestApplyUnmappedDescriptiveCode(t *testing.T) {
	promo := &domain.Promotion{Code: uuid.New(), DescriptiveCode: "C_MYSTERY", Active: true}
	d := newTestDispatcher(promo)
	result := &domain.OrderResult{PriceWithoutPromotion: 50}

	err := d.Apply(context.Background(), result, &promo.Code)
	var configErr *domain.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestApplyAttachesPromotionToResult(t *testing.T) {
	promo := &domain.Promotion{
		Code:            uuid.New(),
		DescriptiveCode: domain.Code50Off,
		Description:     "half price",
		Active:          true,
	}
	d := newTestDispatcher(promo)
	result := &domain.OrderResult{PriceWithoutPromotion: 90}

	if err := d.Apply(context.Background(), result, &promo.Code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PriceWithPromotion == nil || *result.PriceWithPromotion != 45 {
		t.Fatalf("PriceWithPromotion = %v, want 45", result.PriceWithPromotion)
	}
	if result.PromoCode == nil || *result.PromoCode != promo.Code {
		t.Error("PromoCode not attached to result")
	}
	if result.PromoCodeDescription == nil || *result.PromoCodeDescription != "half price" {
		t.Error("PromoCodeDescription not attached to result")
	}
}
