package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/repository"
)

func cartLines(lines ...repository.CartItemDetail) []repository.CartItemDetail {
	return lines
}

func TestCartGet(t *testing.T) {
	cart := &mockCart{
		GetCartFn: func(ctx context.Context, userID int64) ([]repository.CartItemDetail, error) {
			if userID != 7 {
				t.Errorf("userID = %d, want 7", userID)
			}
			return cartLines(repository.CartItemDetail{
				ID:        100,
				ProductID: 1,
				Name:      "Malbec Reserva",
				Price:     93.40,
				SizeML:    750,
				Stock:     10,
				Quantity:  2,
			}), nil
		},
	}
	h := NewCartHandler(cart)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/cart", nil), 7)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decodeBody(t, rec)
	items := resp["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("items = %v, want 1 entry", resp["items"])
	}
	line := items[0].(map[string]interface{})
	if line["producto_id"] != float64(1) {
		t.Errorf("producto_id = %v, want 1", line["producto_id"])
	}
	if line["cantidad"] != float64(2) {
		t.Errorf("cantidad = %v, want 2", line["cantidad"])
	}
}

func TestCartAddItem(t *testing.T) {
	cart := &mockCart{
		AddItemFn: func(ctx context.Context, userID, productID int64, quantity int32) ([]repository.CartItemDetail, error) {
			if productID != 3 || quantity != 2 {
				t.Errorf("AddItem(%d, %d), want (3, 2)", productID, quantity)
			}
			return cartLines(repository.CartItemDetail{ID: 300, ProductID: 3, Quantity: 2}), nil
		},
	}
	h := NewCartHandler(cart)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"producto_id":3,"cantidad":2}`)), 7)
	rec := httptest.NewRecorder()

	h.AddItem(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestCartAddItem_InvalidQuantity(t *testing.T) {
	h := NewCartHandler(&mockCart{})

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"producto_id":3,"cantidad":0}`)), 7)
	rec := httptest.NewRecorder()

	h.AddItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCartAddItem_UnknownProduct(t *testing.T) {
	cart := &mockCart{
		AddItemFn: func(ctx context.Context, userID, productID int64, quantity int32) ([]repository.CartItemDetail, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewCartHandler(cart)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"producto_id":99,"cantidad":1}`)), 7)
	rec := httptest.NewRecorder()

	h.AddItem(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCartUpdateItem_ZeroRemoves(t *testing.T) {
	cart := &mockCart{
		UpdateItemQuantityFn: func(ctx context.Context, userID, productID int64, quantity int32) ([]repository.CartItemDetail, error) {
			if quantity != 0 {
				t.Errorf("quantity = %d, want 0", quantity)
			}
			return cartLines(), nil
		},
	}
	h := NewCartHandler(cart)

	req := asUser(httptest.NewRequest(http.MethodPut, "/api/cart/items/3", strings.NewReader(`{"cantidad":0}`)), 7)
	req.SetPathValue("id", "3")
	rec := httptest.NewRecorder()

	h.UpdateItem(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decodeBody(t, rec)
	items := resp["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("items = %v, want empty", resp["items"])
	}
}

func TestCartRemoveItem_NotFound(t *testing.T) {
	cart := &mockCart{
		RemoveItemFn: func(ctx context.Context, userID, productID int64) ([]repository.CartItemDetail, error) {
			return nil, domain.ErrCartItemNotFound
		},
	}
	h := NewCartHandler(cart)

	req := asUser(httptest.NewRequest(http.MethodDelete, "/api/cart/items/99", nil), 7)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()

	h.RemoveItem(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Artículo no encontrado en el carrito" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestCartClear(t *testing.T) {
	cleared := false
	cart := &mockCart{
		ClearCartFn: func(ctx context.Context, userID int64) error {
			cleared = true
			return nil
		},
	}
	h := NewCartHandler(cart)

	req := asUser(httptest.NewRequest(http.MethodDelete, "/api/cart", nil), 7)
	rec := httptest.NewRecorder()

	h.Clear(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !cleared {
		t.Error("ClearCart not called")
	}
}
