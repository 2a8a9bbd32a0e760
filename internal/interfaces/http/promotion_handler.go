// internal/interfaces/http/promotion_handler.go
package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"forno/internal/service/order/domain"
	"forno/internal/service/promotion"
)

// PromotionHandler 暴露促销记录的启停和查询接口。
type PromotionHandler struct {
	promotions *promotion.ManagementService
}

func NewPromotionHandler(promotions *promotion.ManagementService) *PromotionHandler {
	return &PromotionHandler{promotions: promotions}
}

func (h *PromotionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("PUT /api/v1/promotion/activate", h.activate)
	mux.HandleFunc("PUT /api/v1/promotion/deactivate", h.deactivate)
	mux.HandleFunc("GET /api/v1/promotion", h.list)
}

type promotionDTO struct {
	Code            string `json:"code"`
	DescriptiveCode string `json:"descriptiveCode"`
	Description     string `json:"description"`
	Active          bool   `json:"active"`
}

func (h *PromotionHandler) activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.promotions.Activate)
}

func (h *PromotionHandler) deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.promotions.Deactivate)
}

func (h *PromotionHandler) setActive(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (*domain.Promotion, error)) {
	raw := r.URL.Query().Get("promotionCode")
	code, err := uuid.Parse(raw)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid promotion code: "+raw)
		return
	}

	promo, err := op(r.Context(), code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPromotionDTO(promo))
}

func (h *PromotionHandler) list(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotions.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	dtos := make([]promotionDTO, 0, len(promotions))
	for i := range promotions {
		dtos = append(dtos, toPromotionDTO(&promotions[i]))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func toPromotionDTO(promo *domain.Promotion) promotionDTO {
	return promotionDTO{
		Code:            promo.Code.String(),
		DescriptiveCode: string(promo.DescriptiveCode),
		Description:     promo.Description,
		Active:          promo.Active,
	}
}
