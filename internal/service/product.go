package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/pricing"
	"github.com/ncordova/vinoteca/internal/recommend"
	"github.com/ncordova/vinoteca/internal/repository"
)

// DefaultLowStockThreshold marks products needing restock.
const DefaultLowStockThreshold = 3

// productService implements domain.ProductService.
type productService struct {
	store             repository.Store
	recommender       recommend.Recommender
	logger            *slog.Logger
	lowStockThreshold int32
}

// NewProductService creates a new catalog service. A threshold of 0 uses the
// default low stock threshold.
func NewProductService(store repository.Store, recommender recommend.Recommender, logger *slog.Logger, lowStockThreshold int32) domain.ProductService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &productService{
		store:             store,
		recommender:       recommender,
		logger:            logger,
		lowStockThreshold: lowStockThreshold,
	}
}

// ListProducts returns the full catalog with images.
func (s *productService) ListProducts(ctx context.Context) ([]domain.ProductDetail, error) {
	const op = "product.list"

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list products")
	}

	return s.attachImages(ctx, op, products)
}

// GetProduct retrieves a single product with its images.
func (s *productService) GetProduct(ctx context.Context, id int64) (*domain.ProductDetail, error) {
	const op = "product.get"

	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}

	images, err := s.store.ListProductImages(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product images")
	}

	return &domain.ProductDetail{Product: product, Images: images}, nil
}

// CreateProduct adds a product to the catalog with optional image URLs.
func (s *productService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.ProductDetail, error) {
	const op = "product.create"

	var product repository.Product
	var images []repository.ProductImage
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		product, err = q.CreateProduct(ctx, repository.CreateProductParams{
			Name:        params.Name,
			Description: params.Description,
			Price:       params.Price,
			Flavor:      params.Flavor,
			SizeML:      params.SizeML,
			Stock:       params.Stock,
		})
		if err != nil {
			return err
		}

		for i, url := range params.ImageURLs {
			img, err := q.CreateProductImage(ctx, product.ID, url, int32(i))
			if err != nil {
				return err
			}
			images = append(images, img)
		}

		return nil
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create product")
	}

	return &domain.ProductDetail{Product: product, Images: images}, nil
}

// UpdateProduct updates catalog fields for a product. Nil pointers leave the
// corresponding column unchanged.
func (s *productService) UpdateProduct(ctx context.Context, id int64, params domain.UpdateProductParams) (*domain.ProductDetail, error) {
	const op = "product.update"

	current, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}

	arg := repository.UpdateProductParams{
		ID:          id,
		Name:        current.Name,
		Description: current.Description,
		Price:       current.Price,
		Flavor:      current.Flavor,
		SizeML:      current.SizeML,
		Stock:       current.Stock,
	}
	if params.Name != nil {
		arg.Name = *params.Name
	}
	if params.Description != nil {
		arg.Description = *params.Description
	}
	if params.Price != nil {
		arg.Price = *params.Price
	}
	if params.Flavor != nil {
		arg.Flavor = *params.Flavor
	}
	if params.SizeML != nil {
		arg.SizeML = *params.SizeML
	}
	if params.Stock != nil {
		arg.Stock = *params.Stock
	}

	updated, err := s.store.UpdateProduct(ctx, arg)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to update product")
	}

	images, err := s.store.ListProductImages(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product images")
	}

	return &domain.ProductDetail{Product: updated, Images: images}, nil
}

// DeleteProduct removes a product and its images.
func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	const op = "product.delete"

	affected, err := s.store.DeleteProduct(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to delete product")
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

// RecommendedProducts returns catalog entries suggested for a product by the
// external recommendation service. The prediction is advisory: a service
// failure yields an empty list, never an error.
func (s *productService) RecommendedProducts(ctx context.Context, id int64) ([]domain.ProductDetail, error) {
	const op = "product.recommended"

	if _, err := s.store.GetProduct(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}

	ids, err := s.recommender.RecommendProducts(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "recommendation service unavailable",
			slog.Int64("product_id", id),
			slog.String("error", err.Error()))
		return []domain.ProductDetail{}, nil
	}
	if len(ids) == 0 {
		return []domain.ProductDetail{}, nil
	}

	products, err := s.store.ListProductsByIDs(ctx, ids)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load recommended products")
	}

	return s.attachImages(ctx, op, products)
}

// PromotionListing splits the catalog into products with an active discount
// and products without one. When a product has overlapping promotion windows
// the most recently started one applies.
func (s *productService) PromotionListing(ctx context.Context) (*domain.PromotionListing, error) {
	const op = "product.promotions"

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list products")
	}

	promotions, err := s.store.ListActivePromotions(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list promotions")
	}

	// Promotions arrive ordered by product and recency, so the first one
	// seen per product wins.
	active := make(map[int64]repository.Promotion, len(promotions))
	for _, promo := range promotions {
		if _, ok := active[promo.ProductID]; !ok {
			active[promo.ProductID] = promo
		}
	}

	listing := &domain.PromotionListing{
		ConDescuento: []domain.DiscountedProduct{},
		SinDescuento: []repository.Product{},
	}
	for _, product := range products {
		promo, ok := active[product.ID]
		if !ok {
			listing.SinDescuento = append(listing.SinDescuento, product)
			continue
		}
		listing.ConDescuento = append(listing.ConDescuento, domain.DiscountedProduct{
			Product:         product,
			Discount:        promo.Discount,
			DiscountedPrice: pricing.Round2(product.Price * (1 - promo.Discount/100)),
		})
	}

	return listing, nil
}

// CreatePromotion attaches a percentage discount to a product for a date
// window.
func (s *productService) CreatePromotion(ctx context.Context, params domain.CreatePromotionParams) (*repository.Promotion, error) {
	const op = "product.create_promotion"

	if params.Discount <= 0 || params.Discount > 100 {
		return nil, domain.ErrInvalidDiscount
	}
	if !params.EndsAt.After(params.StartsAt) {
		return nil, domain.Errorf(domain.EINVALID, op, "La fecha de fin debe ser posterior a la de inicio")
	}

	if _, err := s.store.GetProduct(ctx, params.ProductID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}

	promo, err := s.store.CreatePromotion(ctx, repository.CreatePromotionParams{
		ProductID: params.ProductID,
		Discount:  params.Discount,
		StartsAt:  params.StartsAt,
		EndsAt:    params.EndsAt,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create promotion")
	}

	return &promo, nil
}

// LowStockProducts returns products at or below the restock threshold,
// lowest stock first.
func (s *productService) LowStockProducts(ctx context.Context) ([]repository.Product, error) {
	const op = "product.low_stock"

	products, err := s.store.ListLowStockProducts(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list low stock products")
	}

	return products, nil
}

// attachImages joins catalog rows with their gallery images in one query.
func (s *productService) attachImages(ctx context.Context, op string, products []repository.Product) ([]domain.ProductDetail, error) {
	if len(products) == 0 {
		return []domain.ProductDetail{}, nil
	}

	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	images, err := s.store.ListImagesByProductIDs(ctx, ids)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product images")
	}

	byProduct := make(map[int64][]repository.ProductImage, len(products))
	for _, img := range images {
		byProduct[img.ProductID] = append(byProduct[img.ProductID], img)
	}

	details := make([]domain.ProductDetail, len(products))
	for i, p := range products {
		details[i] = domain.ProductDetail{Product: p, Images: byProduct[p.ID]}
	}

	return details, nil
}
