// internal/interfaces/http/order_handler.go
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"forno/internal/pkg/logger"
	"forno/internal/service/order/application"
	"forno/internal/service/order/domain"
)

// IdempotencyStore 是下单接口的幂等键占位能力。
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// OrderHandler 暴露下单和订单查询接口。
type OrderHandler struct {
	orders      *application.OrderService
	idempotency IdempotencyStore
}

// NewOrderHandler 创建订单处理器。idempotency 可以为 nil，表示不启用幂等检查。
func NewOrderHandler(orders *application.OrderService, idempotency IdempotencyStore) *OrderHandler {
	return &OrderHandler{orders: orders, idempotency: idempotency}
}

func (h *OrderHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/order", h.placeOrder)
	mux.HandleFunc("GET /api/v1/order", h.listOrders)
}

// placeOrder 处理下单请求。调用方通过 X-User-ID 标识下单用户，
// 可选地带 Idempotency-Key 防止重复提交。
func (h *OrderHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "missing or invalid X-User-ID header")
		return
	}

	var dto application.OrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req, err := dto.ToDomain()
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")
	if h.idempotency != nil && idemKey != "" {
		reserved, err := h.idempotency.Reserve(r.Context(), idemKey)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if !reserved {
			writeMessage(w, http.StatusConflict, "duplicate request: idempotency key already used")
			return
		}
	}

	result, err := h.orders.ProcessOrder(r.Context(), req, ownerID)
	if err != nil {
		// 扣减失败时订单已经落库，幂等键必须保持占用，
		// 否则调用方重试会生成重复订单。其余错误都发生在落库之前，
		// 释放幂等键允许调用方重试。
		var depletion *domain.DepletionError
		if h.idempotency != nil && idemKey != "" && !errors.As(err, &depletion) {
			if releaseErr := h.idempotency.Release(r.Context(), idemKey); releaseErr != nil {
				logger.Ctx(r.Context()).Warn().Err(releaseErr).Msg("failed to release idempotency key")
			}
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, application.FromDomain(result))
}

// listOrders 返回订单列表。带 userId 参数时只返回该用户的订单；
// 不带参数但带 X-User-ID 头时返回当前用户自己的订单。
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid userId: "+raw)
			return
		}
		h.respondOrders(w, r, func() ([]domain.OrderResult, error) {
			return h.orders.Orders(r.Context(), &id)
		})
		return
	}

	if ownerID, err := uuid.Parse(r.Header.Get("X-User-ID")); err == nil {
		h.respondOrders(w, r, func() ([]domain.OrderResult, error) {
			return h.orders.OrdersForUser(r.Context(), ownerID)
		})
		return
	}

	h.respondOrders(w, r, func() ([]domain.OrderResult, error) {
		return h.orders.Orders(r.Context(), nil)
	})
}

func (h *OrderHandler) respondOrders(w http.ResponseWriter, r *http.Request, fetch func() ([]domain.OrderResult, error)) {
	results, err := fetch()
	if err != nil {
		writeError(w, r, err)
		return
	}

	dtos := make([]*application.OrderResponseDTO, 0, len(results))
	for i := range results {
		dtos = append(dtos, application.FromDomain(&results[i]))
	}
	writeJSON(w, http.StatusOK, dtos)
}
