package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/handler"
	"github.com/ncordova/vinoteca/internal/repository"
)

// CartHandler serves the persisted per-user cart endpoints.
type CartHandler struct {
	cart     domain.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cart domain.CartService) *CartHandler {
	return &CartHandler{
		cart:     cart,
		validate: validator.New(),
	}
}

// cartLineJSON is the wire shape for a cart line.
type cartLineJSON struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"producto_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	SizeML    int32   `json:"size_ml"`
	Stock     int32   `json:"stock"`
	Quantity  int32   `json:"cantidad"`
}

func toCartJSON(items []repository.CartItemDetail) []cartLineJSON {
	lines := make([]cartLineJSON, len(items))
	for i, item := range items {
		lines[i] = cartLineJSON{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			SizeML:    item.SizeML,
			Stock:     item.Stock,
			Quantity:  item.Quantity,
		}
	}
	return lines
}

func respondCart(w http.ResponseWriter, status int, items []repository.CartItemDetail) {
	handler.RespondSuccess(w, status, map[string]interface{}{
		"items": toCartJSON(items),
	})
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	items, err := h.cart.GetCart(r.Context(), domain.UserIDFromContext(r.Context()))
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	respondCart(w, http.StatusOK, items)
}

type addCartItemRequest struct {
	ProductID int64 `json:"producto_id" validate:"required,gt=0"`
	Quantity  int32 `json:"cantidad" validate:"required,gte=1"`
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, r, domain.Invalid("cart.add_item", "Cuerpo de la solicitud inválido"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handler.RespondError(w, r, domain.Invalid("cart.add_item", "Datos del artículo inválidos"))
		return
	}

	items, err := h.cart.AddItem(r.Context(), domain.UserIDFromContext(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	respondCart(w, http.StatusCreated, items)
}

type updateCartItemRequest struct {
	Quantity int32 `json:"cantidad" validate:"gte=0"`
}

// UpdateItem handles PUT /api/cart/items/{id}.
// A quantity of 0 removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.Invalid("cart.update_item", "Identificador de producto inválido"))
		return
	}

	var req updateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.RespondError(w, r, domain.Invalid("cart.update_item", "Cuerpo de la solicitud inválido"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handler.RespondError(w, r, domain.Invalid("cart.update_item", "Cantidad inválida"))
		return
	}

	items, err := h.cart.UpdateItemQuantity(r.Context(), domain.UserIDFromContext(r.Context()), productID, req.Quantity)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	respondCart(w, http.StatusOK, items)
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.Invalid("cart.remove_item", "Identificador de producto inválido"))
		return
	}

	items, err := h.cart.RemoveItem(r.Context(), domain.UserIDFromContext(r.Context()), productID)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	respondCart(w, http.StatusOK, items)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.ClearCart(r.Context(), domain.UserIDFromContext(r.Context())); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	respondCart(w, http.StatusOK, []repository.CartItemDetail{})
}
