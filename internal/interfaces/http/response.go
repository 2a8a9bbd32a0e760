// internal/interfaces/http/response.go
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"forno/internal/pkg/logger"
	"forno/internal/service/order/domain"
)

// StandardResponse 是所有接口统一的响应信封。
type StandardResponse struct {
	Payload interface{} `json:"payload,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(StandardResponse{Payload: payload})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(StandardResponse{Message: message})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		logger.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(StandardResponse{Error: err.Error()})
}

// statusFor 把领域错误映射到 HTTP 状态码。
// 用户可修正的业务错误一律 400；配置错误和扣减失败属于服务端问题，
// 返回 500。
func statusFor(err error) int {
	var (
		notFound     *domain.ProductNotFoundError
		typeMismatch *domain.ProductTypeMismatchError
		notInStock   *domain.ProductNotInInventoryError
		insufficient *domain.InsufficientInventoryError
		promoMissing *domain.PromotionNotFoundError
		promoExpired *domain.PromotionInactiveError
		threshold    *domain.ThresholdNotMetError
		configErr    *domain.ConfigurationError
		depletion    *domain.DepletionError
	)
	switch {
	case errors.Is(err, domain.ErrCompositionInvalid),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.As(err, &notFound),
		errors.As(err, &typeMismatch),
		errors.As(err, &notInStock),
		errors.As(err, &insufficient),
		errors.As(err, &promoMissing),
		errors.As(err, &promoExpired),
		errors.As(err, &threshold):
		return http.StatusBadRequest
	case errors.As(err, &configErr), errors.As(err, &depletion):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
