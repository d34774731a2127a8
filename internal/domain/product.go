package domain

import (
	"context"
	"time"

	"github.com/ncordova/vinoteca/internal/repository"
)

// =============================================================================
// PRODUCT DOMAIN ERRORS
// =============================================================================

var (
	ErrProductNotFound   = &Error{Code: ENOTFOUND, Message: "Producto no encontrado"}
	ErrPromotionNotFound = &Error{Code: ENOTFOUND, Message: "Promoción no encontrada"}
	ErrInvalidDiscount   = &Error{Code: EINVALID, Message: "El descuento debe estar entre 1 y 100"}
)

// ProductService provides business logic for catalog operations.
type ProductService interface {
	// ListProducts returns the full catalog with images.
	ListProducts(ctx context.Context) ([]ProductDetail, error)

	// GetProduct retrieves a single product with its images.
	GetProduct(ctx context.Context, id int64) (*ProductDetail, error)

	// CreateProduct adds a product to the catalog with optional image URLs.
	CreateProduct(ctx context.Context, params CreateProductParams) (*ProductDetail, error)

	// UpdateProduct updates catalog fields for a product.
	UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (*ProductDetail, error)

	// DeleteProduct removes a product and its images.
	DeleteProduct(ctx context.Context, id int64) error

	// RecommendedProducts returns catalog entries suggested for a product
	// by the external recommendation service. The prediction is advisory:
	// a service failure yields an empty list, never an error.
	RecommendedProducts(ctx context.Context, id int64) ([]ProductDetail, error)

	// PromotionListing splits the catalog into products with an active
	// discount (including the discounted price) and products without one.
	PromotionListing(ctx context.Context) (*PromotionListing, error)

	// CreatePromotion attaches a percentage discount to a product for a
	// date window.
	CreatePromotion(ctx context.Context, params CreatePromotionParams) (*repository.Promotion, error)

	// LowStockProducts returns products at or below the restock threshold,
	// lowest stock first.
	LowStockProducts(ctx context.Context) ([]repository.Product, error)
}

// ProductDetail aggregates a product with its gallery images.
type ProductDetail struct {
	Product repository.Product
	Images  []repository.ProductImage
}

// CreateProductParams carries fields for a new catalog entry.
type CreateProductParams struct {
	Name        string
	Description string
	Price       float64
	Flavor      string
	SizeML      int32
	Stock       int32
	ImageURLs   []string
}

// UpdateProductParams carries updatable catalog fields.
// Nil pointers leave the column unchanged.
type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *float64
	Flavor      *string
	SizeML      *int32
	Stock       *int32
}

// CreatePromotionParams carries fields for a new promotion window.
type CreatePromotionParams struct {
	ProductID int64
	Discount  float64 // percentage, 1-100
	StartsAt  time.Time
	EndsAt    time.Time
}

// PromotionListing splits the catalog by active discount.
type PromotionListing struct {
	ConDescuento []DiscountedProduct
	SinDescuento []repository.Product
}

// DiscountedProduct pairs a product with its active discount.
type DiscountedProduct struct {
	Product         repository.Product
	Discount        float64
	DiscountedPrice float64
}
