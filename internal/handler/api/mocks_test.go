package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/repository"
	"github.com/ncordova/vinoteca/internal/service"
)

// =============================================================================
// SERVICE MOCKS
// =============================================================================

type mockCheckout struct {
	CreateOrderFn  func(ctx context.Context, userID int64, items []domain.CartLineItem, total float64) (string, error)
	CaptureOrderFn func(ctx context.Context, userID int64, gatewayOrderID string) (*domain.CaptureResult, error)
}

func (m *mockCheckout) CreateOrder(ctx context.Context, userID int64, items []domain.CartLineItem, total float64) (string, error) {
	return m.CreateOrderFn(ctx, userID, items, total)
}

func (m *mockCheckout) CaptureOrder(ctx context.Context, userID int64, gatewayOrderID string) (*domain.CaptureResult, error) {
	return m.CaptureOrderFn(ctx, userID, gatewayOrderID)
}

var _ domain.CheckoutService = (*mockCheckout)(nil)

type mockQuotes struct {
	QuoteFn func(ctx context.Context, items []domain.CartLineItem) (*service.Quote, error)
}

func (m *mockQuotes) Quote(ctx context.Context, items []domain.CartLineItem) (*service.Quote, error) {
	return m.QuoteFn(ctx, items)
}

var _ service.QuoteService = (*mockQuotes)(nil)

type mockProducts struct {
	ListProductsFn        func(ctx context.Context) ([]domain.ProductDetail, error)
	GetProductFn          func(ctx context.Context, id int64) (*domain.ProductDetail, error)
	CreateProductFn       func(ctx context.Context, params domain.CreateProductParams) (*domain.ProductDetail, error)
	UpdateProductFn       func(ctx context.Context, id int64, params domain.UpdateProductParams) (*domain.ProductDetail, error)
	DeleteProductFn       func(ctx context.Context, id int64) error
	RecommendedProductsFn func(ctx context.Context, id int64) ([]domain.ProductDetail, error)
	PromotionListingFn    func(ctx context.Context) (*domain.PromotionListing, error)
	CreatePromotionFn     func(ctx context.Context, params domain.CreatePromotionParams) (*repository.Promotion, error)
	LowStockProductsFn    func(ctx context.Context) ([]repository.Product, error)
}

func (m *mockProducts) ListProducts(ctx context.Context) ([]domain.ProductDetail, error) {
	return m.ListProductsFn(ctx)
}

func (m *mockProducts) GetProduct(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	return m.GetProductFn(ctx, id)
}

func (m *mockProducts) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.ProductDetail, error) {
	return m.CreateProductFn(ctx, params)
}

func (m *mockProducts) UpdateProduct(ctx context.Context, id int64, params domain.UpdateProductParams) (*domain.ProductDetail, error) {
	return m.UpdateProductFn(ctx, id, params)
}

func (m *mockProducts) DeleteProduct(ctx context.Context, id int64) error {
	return m.DeleteProductFn(ctx, id)
}

func (m *mockProducts) RecommendedProducts(ctx context.Context, id int64) ([]domain.ProductDetail, error) {
	return m.RecommendedProductsFn(ctx, id)
}

func (m *mockProducts) PromotionListing(ctx context.Context) (*domain.PromotionListing, error) {
	return m.PromotionListingFn(ctx)
}

func (m *mockProducts) CreatePromotion(ctx context.Context, params domain.CreatePromotionParams) (*repository.Promotion, error) {
	return m.CreatePromotionFn(ctx, params)
}

func (m *mockProducts) LowStockProducts(ctx context.Context) ([]repository.Product, error) {
	return m.LowStockProductsFn(ctx)
}

var _ domain.ProductService = (*mockProducts)(nil)

type mockCart struct {
	GetCartFn            func(ctx context.Context, userID int64) ([]repository.CartItemDetail, error)
	AddItemFn            func(ctx context.Context, userID, productID int64, quantity int32) ([]repository.CartItemDetail, error)
	UpdateItemQuantityFn func(ctx context.Context, userID, productID int64, quantity int32) ([]repository.CartItemDetail, error)
	RemoveItemFn         func(ctx context.Context, userID, productID int64) ([]repository.CartItemDetail, error)
	ClearCartFn          func(ctx context.Context, userID int64) error
}

func (m *mockCart) GetCart(ctx context.Context, userID int64) ([]repository.CartItemDetail, error) {
	return m.GetCartFn(ctx, userID)
}

func (m *mockCart) AddItem(ctx context.Context, userID, productID int64, quantity int32) ([]repository.CartItemDetail, error) {
	return m.AddItemFn(ctx, userID, productID, quantity)
}

func (m *mockCart) UpdateItemQuantity(ctx context.Context, userID, productID int64, quantity int32) ([]repository.CartItemDetail, error) {
	return m.UpdateItemQuantityFn(ctx, userID, productID, quantity)
}

func (m *mockCart) RemoveItem(ctx context.Context, userID, productID int64) ([]repository.CartItemDetail, error) {
	return m.RemoveItemFn(ctx, userID, productID)
}

func (m *mockCart) ClearCart(ctx context.Context, userID int64) error {
	return m.ClearCartFn(ctx, userID)
}

var _ domain.CartService = (*mockCart)(nil)

type mockReviews struct {
	EligibleProductsFn func(ctx context.Context, userID int64) ([]domain.EligibleProduct, error)
	CreateReviewFn     func(ctx context.Context, params domain.CreateReviewParams) (*domain.ReviewDetail, error)
}

func (m *mockReviews) EligibleProducts(ctx context.Context, userID int64) ([]domain.EligibleProduct, error) {
	return m.EligibleProductsFn(ctx, userID)
}

func (m *mockReviews) CreateReview(ctx context.Context, params domain.CreateReviewParams) (*domain.ReviewDetail, error) {
	return m.CreateReviewFn(ctx, params)
}

var _ domain.ReviewService = (*mockReviews)(nil)

// =============================================================================
// TEST HELPERS
// =============================================================================

// asUser attaches an authenticated customer to the request context.
func asUser(r *http.Request, userID int64) *http.Request {
	ctx := domain.NewContextWithUser(r.Context(), &domain.User{
		ID:    userID,
		Email: "cliente@example.com",
		Role:  domain.RoleCustomer,
	})
	return r.WithContext(ctx)
}

// decodeBody unmarshals a recorded JSON response.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}
