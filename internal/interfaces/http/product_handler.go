// internal/interfaces/http/product_handler.go
package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"forno/internal/service/order/domain"
	"forno/internal/service/product"
)

// ProductHandler 暴露商品目录的管理接口。
type ProductHandler struct {
	products *product.Service
}

func NewProductHandler(products *product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/product", h.addProduct)
	mux.HandleFunc("GET /api/v1/product", h.listProducts)
	mux.HandleFunc("DELETE /api/v1/product/{id}", h.deleteProduct)
}

type newProductDTO struct {
	Name             string         `json:"name"`
	ProductType      string         `json:"productType"`
	PriceBySize      map[string]int `json:"priceBySize"`
	InitialInventory int            `json:"initialInventory"`
}

type productViewDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	ProductType string         `json:"productType"`
	Inventory   int            `json:"inventory"`
	PriceBySize map[string]int `json:"priceBySize"`
}

func (h *ProductHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	var dto newProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	productType := domain.ProductType(dto.ProductType)
	if !productType.Valid() {
		writeMessage(w, http.StatusBadRequest, "invalid product type: "+dto.ProductType)
		return
	}

	req := product.NewProduct{
		Name:             dto.Name,
		Type:             productType,
		PriceBySize:      make(map[domain.PizzaSize]int, len(dto.PriceBySize)),
		InitialInventory: dto.InitialInventory,
	}
	for raw, value := range dto.PriceBySize {
		size := domain.PizzaSize(raw)
		if !size.Valid() {
			writeMessage(w, http.StatusBadRequest, "invalid pizza size: "+raw)
			return
		}
		req.PriceBySize[size] = value
	}

	view, err := h.products.Add(r.Context(), req)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toProductViewDTO(*view))
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	views, err := h.products.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	dtos := make([]productViewDTO, 0, len(views))
	for _, view := range views {
		dtos = append(dtos, toProductViewDTO(view))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid product id: "+r.PathValue("id"))
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "product deleted")
}

func toProductViewDTO(view product.View) productViewDTO {
	dto := productViewDTO{
		ID:          view.ID.String(),
		Name:        view.Name,
		ProductType: string(view.Type),
		Inventory:   view.Inventory,
		PriceBySize: make(map[string]int, len(view.PriceBySize)),
	}
	for size, value := range view.PriceBySize {
		dto.PriceBySize[string(size)] = value
	}
	return dto
}
