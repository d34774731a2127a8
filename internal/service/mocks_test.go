package service

import (
	"context"
	"errors"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/repository"
)

// ============================================================================
// Mock Store
// ============================================================================

// mockStore implements repository.Store. Tests override only the functions
// the path under test touches; everything else fails loudly.
type mockStore struct {
	// Products
	listProductsFn           func(ctx context.Context) ([]repository.Product, error)
	getProductFn             func(ctx context.Context, id int64) (repository.Product, error)
	listProductsByIDsFn      func(ctx context.Context, ids []int64) ([]repository.Product, error)
	createProductFn          func(ctx context.Context, arg repository.CreateProductParams) (repository.Product, error)
	updateProductFn          func(ctx context.Context, arg repository.UpdateProductParams) (repository.Product, error)
	deleteProductFn          func(ctx context.Context, id int64) (int64, error)
	listLowStockProductsFn   func(ctx context.Context, threshold int32) ([]repository.Product, error)
	decrementStockFn         func(ctx context.Context, productID int64, quantity int32) (int64, error)
	createProductImageFn     func(ctx context.Context, productID int64, url string, position int32) (repository.ProductImage, error)
	listProductImagesFn      func(ctx context.Context, productID int64) ([]repository.ProductImage, error)
	listImagesByProductIDsFn func(ctx context.Context, ids []int64) ([]repository.ProductImage, error)

	// Cart
	listCartItemsFn       func(ctx context.Context, userID int64) ([]repository.CartItemDetail, error)
	upsertCartItemFn      func(ctx context.Context, userID, productID int64, quantity int32) (repository.CartItem, error)
	setCartItemQuantityFn func(ctx context.Context, userID, productID int64, quantity int32) (int64, error)
	deleteCartItemFn      func(ctx context.Context, userID, productID int64) (int64, error)
	deleteCartItemsFn     func(ctx context.Context, userID int64) error

	// Orders
	createOrderFn         func(ctx context.Context, arg repository.CreateOrderParams) (repository.Order, error)
	getOrderFn            func(ctx context.Context, id int64) (repository.Order, error)
	getOrderByGatewayIDFn func(ctx context.Context, gatewayOrderID string) (repository.Order, error)
	createOrderItemFn     func(ctx context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error)
	listOrderItemsFn      func(ctx context.Context, orderID int64) ([]repository.OrderItem, error)
	createSaleFn          func(ctx context.Context, arg repository.CreateSaleParams) (repository.Sale, error)

	// Reviews
	getReviewByUserAndProductFn func(ctx context.Context, userID, productID int64) (repository.Review, error)
	createReviewFn              func(ctx context.Context, arg repository.CreateReviewParams) (repository.Review, error)
	createReviewImageFn         func(ctx context.Context, reviewID int64, url string) (repository.ReviewImage, error)
	listReviewImagesFn          func(ctx context.Context, reviewID int64) ([]repository.ReviewImage, error)
	listReviewedProductIDsFn    func(ctx context.Context, userID int64) ([]int64, error)
	listReceivedProductsFn      func(ctx context.Context, userID int64, status string) ([]repository.ReceivedProduct, error)

	// Promotions
	createPromotionFn      func(ctx context.Context, arg repository.CreatePromotionParams) (repository.Promotion, error)
	listActivePromotionsFn func(ctx context.Context) ([]repository.Promotion, error)

	execTxFn func(ctx context.Context, fn func(repository.Querier) error) error
}

var errMockNotImplemented = errors.New("not implemented in mock")

func (m *mockStore) ListProducts(ctx context.Context) ([]repository.Product, error) {
	if m.listProductsFn != nil {
		return m.listProductsFn(ctx)
	}
	return nil, errMockNotImplemented
}

func (m *mockStore) GetProduct(ctx context.Context, id int64) (repository.Product, error) {
	if m.getProductFn != nil {
		return m.getProductFn(ctx, id)
	}
	return repository.Product{}, errMockNotImplemented
}

func (m *mockStore) ListProductsByIDs(ctx context.Context, ids []int64) ([]repository.Product, error) {
	if m.listProductsByIDsFn != nil {
		return m.listProductsByIDsFn(ctx, ids)
	}
	return nil, errMockNotImplemented
}

func (m *mockStore) CreateProduct(ctx context.Context, arg repository.CreateProductParams) (repository.Product, error) {
	if m.createProductFn != nil {
		return m.createProductFn(ctx, arg)
	}
	return repository.Product{}, errMockNotImplemented
}

func (m *mockStore) UpdateProduct(ctx context.Context, arg repository.UpdateProductParams) (repository.Product, error) {
	if m.updateProductFn != nil {
		return m.updateProductFn(ctx, arg)
	}
	return repository.Product{}, errMockNotImplemented
}

func (m *mockStore) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	if m.deleteProductFn != nil {
		return m.deleteProductFn(ctx, id)
	}
	return 0, errMockNotImplemented
}

func (m *mockStore) ListLowStockProducts(ctx context.Context, threshold int32) ([]repository.Product, error) {
	if m.listLowStockProductsFn != nil {
		return m.listLowStockProductsFn(ctx, threshold)
	}
	return nil, errMockNotImplemented
}

func (m *mockStore) DecrementStock(ctx context.Context, productID int64, quantity int32) (int64, error) {
	if m.decrementStockFn != nil {
		return m.decrementStockFn(ctx, productID, quantity)
	}
	return 0, errMockNotImplemented
}

func (m *mockStore) CreateProductImage(ctx context.Context, productID int64, url string, position int32) (repository.ProductImage, error) {
	if m.createProductImageFn != nil {
		return m.createProductImageFn(ctx, productID, url, position)
	}
	return repository.ProductImage{}, errMockNotImplemented
}

func (m *mockStore) ListProductImages(ctx context.Context, productID int64) ([]repository.ProductImage, error) {
	if m.listProductImagesFn != nil {
		return m.listProductImagesFn(ctx, productID)
	}
	return nil, errMockNotImplemented
}

func (m *mockStore) ListImagesByProductIDs(ctx context.Context, ids []int64) ([]repository.ProductImage, error) {
	if m.listImagesByProductIDsFn != nil {
		return m.listImagesByProductIDsFn(ctx, ids)
	}
	return nil, errMockNotImplemented
}

func (m *mockStore) ListCartItems(ctx context.Context, userID int64) ([]repository.CartItemDetail, error) {
	if m.listCartItemsFn != nil {
		return m.listCartItemsFn(ctx, userID)
	}
	return nil, errMockNotImplemented
}

func (m *mockStore) UpsertCartItem(ctx context.Context, userID, productID int64, quantity int32) (repository.CartItem, error) {
	if m.upsertCartItemFn != nil {
		return m.upsertCartItemFn(ctx, userID, productID, quantity)
	}
	return repository.CartItem{}, errMockNotImplemented
}

func (m *mockStore) SetCartItemQuantity(ctx context.Context, userID, productID int64, quantity int32) (int64, error) {
	if m.setCartItemQuantityFn != nil {
		return m.setCartItemQuantityFn(ctx, userID, productID, quantity)
	}
	return 0, errMockNotImplemented
}

func (m *mockStore) DeleteCartItem(ctx context.Context, userID, productID int64) (int64, error) {
	if m.deleteCartItemFn != nil {
		return m.deleteCartItemFn(ctx, userID, productID)
	}
	return 0, errMockNotImplemented
}

func (m *mockStore) DeleteCartItems(ctx context.Context, userID int64) error {
	if m.deleteCartItemsFn != nil {
		return m.deleteCartItemsFn(ctx, userID)
	}
	return errMockNotImplemented
}

func (m *mockStore) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (repository.Order, error) {
	if m.createOrderFn != nil {
		return m.createOrderFn(ctx, arg)
	}
	return repository.Order{}, errMockNotImplemented
}

func (m *mockStore) GetOrder(ctx context.Context, id int64) (repository.Order, error) {
	if m.getOrderFn != nil {
		return m.getOrderFn(ctx, id)
	}
	return repository.Order{}, errMockNotImplemented
}

func (m *mockStore) GetOrderByGatewayID(ctx context.Context, gatewayOrderID string) (repository.Order, error) {
	if m.getOrderByGatewayIDFn != nil {
		return m.getOrderByGatewayIDFn(ctx, gatewayOrderID)
	}
	return repository.Order{}, errMockNotImplemented
}

func (m *mockStore) CreateOrderItem(ctx context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error) {
	if m.createOrderItemFn != nil {
		return m.createOrderItemFn(ctx, arg)
	}
	return repository.OrderItem{}, errMockNotImplemented
}

func (m *mockStore) ListOrderItems(ctx context.Context, orderID int64) ([]repository.OrderItem, error) {
	if m.listOrderItemsFn != nil {
		return m.listOrderItemsFn(ctx, orderID)
	}
	return nil, errMockNotImplemented
}

func (m *mockStore) CreateSale(ctx context.Context, arg repository.CreateSaleParams) (repository.Sale, error) {
	if m.createSaleFn != nil {
		return m.createSaleFn(ctx, arg)
	}
	return repository.Sale{}, errMockNotImplemented
}

func (m *mockStore) GetReviewByUserAndProduct(ctx context.Context, userID, productID int64) (repository.Review, error) {
	if m.getReviewByUserAndProductFn != nil {
		return m.getReviewByUserAndProductFn(ctx, userID, productID)
	}
	return repository.Review{}, errMockNotImplemented
}

func (m *mockStore) CreateReview(ctx context.Context, arg repository.CreateReviewParams) (repository.Review, error) {
	if m.createReviewFn != nil {
		return m.createReviewFn(ctx, arg)
	}
	return repository.Review{}, errMockNotImplemented
}

func (m *mockStore) CreateReviewImage(ctx context.Context, reviewID int64, url string) (repository.ReviewImage, error) {
	if m.createReviewImageFn != nil {
		return m.createReviewImageFn(ctx, reviewID, url)
	}
	return repository.ReviewImage{}, errMockNotImplemented
}

func (m *mockStore) ListReviewImages(ctx context.Context, reviewID int64) ([]repository.ReviewImage, error) {
	if m.listReviewImagesFn != nil {
		return m.listReviewImagesFn(ctx, reviewID)
	}
	return nil, errMockNotImplemented
}

func (m *mockStore) ListReviewedProductIDs(ctx context.Context, userID int64) ([]int64, error) {
	if m.listReviewedProductIDsFn != nil {
		return m.listReviewedProductIDsFn(ctx, userID)
	}
	return nil, errMockNotImplemented
}

func (m *mockStore) ListReceivedProducts(ctx context.Context, userID int64, status string) ([]repository.ReceivedProduct, error) {
	if m.listReceivedProductsFn != nil {
		return m.listReceivedProductsFn(ctx, userID, status)
	}
	return nil, errMockNotImplemented
}

func (m *mockStore) CreatePromotion(ctx context.Context, arg repository.CreatePromotionParams) (repository.Promotion, error) {
	if m.createPromotionFn != nil {
		return m.createPromotionFn(ctx, arg)
	}
	return repository.Promotion{}, errMockNotImplemented
}

func (m *mockStore) ListActivePromotions(ctx context.Context) ([]repository.Promotion, error) {
	if m.listActivePromotionsFn != nil {
		return m.listActivePromotionsFn(ctx)
	}
	return nil, errMockNotImplemented
}

// ExecTx runs fn against the mock itself so per-method overrides apply
// inside transactions too.
func (m *mockStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	if m.execTxFn != nil {
		return m.execTxFn(ctx, fn)
	}
	return fn(m)
}

var _ repository.Store = (*mockStore)(nil)

// ============================================================================
// Test Fixtures
// ============================================================================

func makeTestLine(id int64, name string, price float64, qty int32) domain.CartLineItem {
	return domain.CartLineItem{
		ProductID: id,
		Name:      name,
		UnitPrice: price,
		Quantity:  qty,
	}
}

func makeTestCartDetail(productID int64, name string, price float64, qty, stock int32) repository.CartItemDetail {
	return repository.CartItemDetail{
		ID:        productID * 100,
		ProductID: productID,
		Name:      name,
		Price:     price,
		SizeML:    750,
		Stock:     stock,
		Quantity:  qty,
	}
}

func makeTestProduct(id int64, name string, price float64, stock int32) repository.Product {
	return repository.Product{
		ID:     id,
		Name:   name,
		Price:  price,
		Flavor: "tinto",
		SizeML: 750,
		Stock:  stock,
	}
}
