// internal/service/promotion/management.go
package promotion

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"forno/internal/service/order/domain"
)

// ManagementService 提供促销记录的启停和查询。核心流水线不依赖它。
type ManagementService struct {
	promoRepo domain.PromotionRepository
	tracer    trace.Tracer
}

func NewManagementService(promoRepo domain.PromotionRepository, tracer trace.Tracer) *ManagementService {
	return &ManagementService{promoRepo: promoRepo, tracer: tracer}
}

// Activate 启用一条促销。
func (s *ManagementService) Activate(ctx context.Context, code uuid.UUID) (*domain.Promotion, error) {
	return s.setActive(ctx, code, true)
}

// Deactivate 停用一条促销。
func (s *ManagementService) Deactivate(ctx context.Context, code uuid.UUID) (*domain.Promotion, error) {
	return s.setActive(ctx, code, false)
}

// ListAll 返回全部促销记录。
func (s *ManagementService) ListAll(ctx context.Context) ([]domain.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.ListAll")
	defer span.End()
	return s.promoRepo.FindAll(ctx)
}

func (s *ManagementService) setActive(ctx context.Context, code uuid.UUID, active bool) (*domain.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.SetActive")
	defer span.End()

	promo, err := s.promoRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, &domain.PromotionNotFoundError{Code: code}
	}

	promo.Active = active
	if err := s.promoRepo.Save(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}
