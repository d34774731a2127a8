package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ncordova/vinoteca/internal/domain"
)

func TestOrderCreate_Success(t *testing.T) {
	var gotTotal float64
	var gotItems []domain.CartLineItem
	checkout := &mockCheckout{
		CreateOrderFn: func(ctx context.Context, userID int64, items []domain.CartLineItem, total float64) (string, error) {
			if userID != 7 {
				t.Errorf("userID = %d, want 7", userID)
			}
			gotTotal = total
			gotItems = items
			return "PAYPAL-123", nil
		},
	}
	h := NewOrderHandler(checkout, nil)

	body := `{"items":[{"id":1,"name":"Malbec Reserva","price":93.40,"quantity":2,"size_ml":750}],"total":212.30}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders/paypal/create", strings.NewReader(body)), 7)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != true {
		t.Errorf("success = %v, want true", resp["success"])
	}
	if resp["orderId"] != "PAYPAL-123" {
		t.Errorf("orderId = %v, want PAYPAL-123", resp["orderId"])
	}
	if gotTotal != 212.30 {
		t.Errorf("submitted total = %v, want 212.30", gotTotal)
	}
	if len(gotItems) != 1 || gotItems[0].ProductID != 1 || gotItems[0].Quantity != 2 {
		t.Errorf("items not mapped: %+v", gotItems)
	}
}

func TestOrderCreate_TotalMismatch(t *testing.T) {
	checkout := &mockCheckout{
		CreateOrderFn: func(ctx context.Context, userID int64, items []domain.CartLineItem, total float64) (string, error) {
			return "", domain.ErrTotalMismatch
		},
	}
	h := NewOrderHandler(checkout, nil)

	body := `{"items":[{"id":1,"name":"Malbec","price":10,"quantity":1}],"total":999}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders/paypal/create", strings.NewReader(body)), 7)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != false {
		t.Errorf("success = %v, want false", resp["success"])
	}
	if resp["message"] != "El total enviado no coincide con el total calculado" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestOrderCreate_InvalidBody(t *testing.T) {
	h := NewOrderHandler(&mockCheckout{}, nil)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders/paypal/create", strings.NewReader("{")), 7)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestOrderCreate_EmptyItems(t *testing.T) {
	h := NewOrderHandler(&mockCheckout{}, nil)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders/paypal/create", strings.NewReader(`{"items":[],"total":0}`)), 7)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestOrderCapture_Success(t *testing.T) {
	checkout := &mockCheckout{
		CaptureOrderFn: func(ctx context.Context, userID int64, gatewayOrderID string) (*domain.CaptureResult, error) {
			if gatewayOrderID != "PAYPAL-123" {
				t.Errorf("gatewayOrderID = %q, want PAYPAL-123", gatewayOrderID)
			}
			return &domain.CaptureResult{
				OrderID:        42,
				GatewayOrderID: gatewayOrderID,
				Total:          316.80,
			}, nil
		},
	}
	h := NewOrderHandler(checkout, nil)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders/paypal/capture", strings.NewReader(`{"orderId":"PAYPAL-123"}`)), 7)
	rec := httptest.NewRecorder()

	h.Capture(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != true {
		t.Errorf("success = %v, want true", resp["success"])
	}
	if resp["pedidoId"] != float64(42) {
		t.Errorf("pedidoId = %v, want 42", resp["pedidoId"])
	}
	if resp["orderId"] != "PAYPAL-123" {
		t.Errorf("orderId = %v, want PAYPAL-123", resp["orderId"])
	}
	if resp["total"] != 316.80 {
		t.Errorf("total = %v, want 316.80", resp["total"])
	}
}

func TestOrderCapture_GatewayFailure(t *testing.T) {
	checkout := &mockCheckout{
		CaptureOrderFn: func(ctx context.Context, userID int64, gatewayOrderID string) (*domain.CaptureResult, error) {
			return nil, domain.PaymentFailed(nil, "checkout.capture", "No se pudo procesar el pago")
		},
	}
	h := NewOrderHandler(checkout, nil)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders/paypal/capture", strings.NewReader(`{"orderId":"PAYPAL-500"}`)), 7)
	rec := httptest.NewRecorder()

	h.Capture(rec, req)

	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusPaymentRequired)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "No se pudo procesar el pago" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestOrderCapture_MissingOrderID(t *testing.T) {
	h := NewOrderHandler(&mockCheckout{}, nil)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/orders/paypal/capture", strings.NewReader(`{}`)), 7)
	rec := httptest.NewRecorder()

	h.Capture(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
