package repository

import (
	"context"
)

// Querier is the full query surface. Services depend on this interface
// (or Store) so tests can substitute hand-written fakes.
type Querier interface {
	// Products
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (Product, error)
	ListProductsByIDs(ctx context.Context, ids []int64) ([]Product, error)
	CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id int64) (int64, error)
	ListLowStockProducts(ctx context.Context, threshold int32) ([]Product, error)
	DecrementStock(ctx context.Context, productID int64, quantity int32) (int64, error)
	CreateProductImage(ctx context.Context, productID int64, url string, position int32) (ProductImage, error)
	ListProductImages(ctx context.Context, productID int64) ([]ProductImage, error)
	ListImagesByProductIDs(ctx context.Context, ids []int64) ([]ProductImage, error)

	// Cart
	ListCartItems(ctx context.Context, userID int64) ([]CartItemDetail, error)
	UpsertCartItem(ctx context.Context, userID, productID int64, quantity int32) (CartItem, error)
	SetCartItemQuantity(ctx context.Context, userID, productID int64, quantity int32) (int64, error)
	DeleteCartItem(ctx context.Context, userID, productID int64) (int64, error)
	DeleteCartItems(ctx context.Context, userID int64) error

	// Orders
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	GetOrder(ctx context.Context, id int64) (Order, error)
	GetOrderByGatewayID(ctx context.Context, gatewayOrderID string) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error)
	CreateSale(ctx context.Context, arg CreateSaleParams) (Sale, error)

	// Reviews
	GetReviewByUserAndProduct(ctx context.Context, userID, productID int64) (Review, error)
	CreateReview(ctx context.Context, arg CreateReviewParams) (Review, error)
	CreateReviewImage(ctx context.Context, reviewID int64, url string) (ReviewImage, error)
	ListReviewImages(ctx context.Context, reviewID int64) ([]ReviewImage, error)
	ListReviewedProductIDs(ctx context.Context, userID int64) ([]int64, error)
	ListReceivedProducts(ctx context.Context, userID int64, status string) ([]ReceivedProduct, error)

	// Promotions
	CreatePromotion(ctx context.Context, arg CreatePromotionParams) (Promotion, error)
	ListActivePromotions(ctx context.Context) ([]Promotion, error)
}

var _ Querier = (*Queries)(nil)
