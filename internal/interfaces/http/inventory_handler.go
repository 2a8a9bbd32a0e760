// internal/interfaces/http/inventory_handler.go
package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"forno/internal/service/inventory"
	"forno/internal/service/order/domain"
)

// InventoryHandler 暴露库存的补货和查询接口。
type InventoryHandler struct {
	inventory *inventory.Service
}

func NewInventoryHandler(inventorySvc *inventory.Service) *InventoryHandler {
	return &InventoryHandler{inventory: inventorySvc}
}

func (h *InventoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/inventory/refill", h.refill)
	mux.HandleFunc("GET /api/v1/inventory", h.query)
}

type refillLineDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type inventoryViewDTO struct {
	ProductID         string `json:"productId"`
	ProductName       string `json:"productName"`
	ProductType       string `json:"productType"`
	AvailableQuantity int    `json:"availableQuantity"`
}

func (h *InventoryHandler) refill(w http.ResponseWriter, r *http.Request) {
	var dtos []refillLineDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	lines := make([]domain.ProductLine, 0, len(dtos))
	for _, dto := range dtos {
		id, err := uuid.Parse(dto.ProductID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid product id: "+dto.ProductID)
			return
		}
		if dto.Quantity <= 0 {
			writeMessage(w, http.StatusBadRequest, "refill quantity must be positive")
			return
		}
		lines = append(lines, domain.ProductLine{ProductID: id, Quantity: dto.Quantity})
	}

	views, err := h.inventory.Refill(r.Context(), lines)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryViewDTOs(views))
}

// query 按 productIds 参数（逗号分隔）查询库存。
func (h *InventoryHandler) query(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("productIds")
	if raw == "" {
		writeMessage(w, http.StatusBadRequest, "missing productIds parameter")
		return
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid product id: "+part)
			return
		}
		ids = append(ids, id)
	}

	views, err := h.inventory.Query(r.Context(), ids)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryViewDTOs(views))
}

func toInventoryViewDTOs(views []inventory.View) []inventoryViewDTO {
	dtos := make([]inventoryViewDTO, 0, len(views))
	for _, view := range views {
		dtos = append(dtos, inventoryViewDTO{
			ProductID:         view.ProductID.String(),
			ProductName:       view.ProductName,
			ProductType:       string(view.ProductType),
			AvailableQuantity: view.AvailableQuantity,
		})
	}
	return dtos
}
