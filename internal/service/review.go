package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/rating"
	"github.com/ncordova/vinoteca/internal/repository"
	"github.com/ncordova/vinoteca/internal/telemetry"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// reviewService implements domain.ReviewService.
type reviewService struct {
	store     repository.Store
	predictor rating.Predictor
	metrics   *telemetry.BusinessMetrics
}

// NewReviewService creates a new review service.
func NewReviewService(store repository.Store, predictor rating.Predictor, metrics *telemetry.BusinessMetrics) domain.ReviewService {
	return &reviewService{
		store:     store,
		predictor: predictor,
		metrics:   metrics,
	}
}

// EligibleProducts lists the products the user may review: products from
// orders the customer has confirmed as received, minus products already
// reviewed. Each product appears once, keeping the occurrence from the most
// recent qualifying order.
func (s *reviewService) EligibleProducts(ctx context.Context, userID int64) ([]domain.EligibleProduct, error) {
	const op = "review.eligible_products"

	received, err := s.store.ListReceivedProducts(ctx, userID, domain.OrderStatusReceivedByCustomer)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list received products")
	}

	reviewedIDs, err := s.store.ListReviewedProductIDs(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list reviewed products")
	}

	reviewed := make(map[int64]bool, len(reviewedIDs))
	for _, id := range reviewedIDs {
		reviewed[id] = true
	}

	eligible := make([]domain.EligibleProduct, 0, len(received))
	seen := make(map[int64]bool, len(received))
	for _, p := range received {
		if reviewed[p.ProductID] || seen[p.ProductID] {
			continue
		}
		seen[p.ProductID] = true
		eligible = append(eligible, domain.EligibleProduct{
			ProductoID: p.ProductID,
			Name:       p.Name,
			ImageURL:   p.ImageURL,
		})
	}

	return eligible, nil
}

// CreateReview persists a review. When no explicit rating is supplied, the
// rating is predicted from the survey answers; any predictor failure falls
// back to the neutral default so review submission never blocks on the
// predictor.
func (s *reviewService) CreateReview(ctx context.Context, params domain.CreateReviewParams) (*domain.ReviewDetail, error) {
	const op = "review.create"

	if params.Rating != nil && (*params.Rating < 1 || *params.Rating > 5) {
		return nil, domain.ErrInvalidRating
	}

	if _, err := s.store.GetProduct(ctx, params.ProductID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}

	if _, err := s.store.GetReviewByUserAndProduct(ctx, params.UserID, params.ProductID); err == nil {
		return nil, domain.ErrDuplicateReview
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Internal(err, op, "failed to check for existing review")
	}

	finalRating := s.resolveRating(ctx, params)

	var review repository.Review
	var images []repository.ReviewImage
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		review, err = q.CreateReview(ctx, repository.CreateReviewParams{
			UserID:    params.UserID,
			ProductID: params.ProductID,
			Rating:    finalRating,
			Comment:   params.Comment,
		})
		if err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		for _, url := range params.ImageURLs {
			img, err := q.CreateReviewImage(ctx, review.ID, url)
			if err != nil {
				return fmt.Errorf("failed to attach review image: %w", err)
			}
			images = append(images, img)
		}

		return nil
	})
	if err != nil {
		// Concurrent duplicate submissions race past the pre-check and land
		// on the UNIQUE(user_id, product_id) constraint instead.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateReview
		}
		return nil, domain.Internal(err, op, "failed to persist review")
	}

	if s.metrics != nil {
		s.metrics.ReviewsCreated.WithLabelValues().Inc()
	}

	return &domain.ReviewDetail{
		Review: review,
		Images: images,
	}, nil
}

// resolveRating returns the rating for a new review: the explicit rating when
// supplied, otherwise a prediction from the survey answers with a neutral
// fallback when the predictor cannot answer.
func (s *reviewService) resolveRating(ctx context.Context, params domain.CreateReviewParams) int32 {
	if params.Rating != nil {
		s.countRating("supplied")
		return *params.Rating
	}

	predicted, err := s.predictor.PredictRating(ctx, rating.Answers{
		Sabor:         params.Survey.Sabor,
		Empaque:       params.Survey.Empaque,
		Precio:        params.Survey.Precio,
		Recomendacion: params.Survey.Recomendacion,
		Entrega:       params.Survey.Entrega,
	})
	if err != nil {
		s.countRating("fallback")
		return domain.DefaultRating
	}

	s.countRating("predicted")
	return predicted
}

func (s *reviewService) countRating(source string) {
	if s.metrics != nil {
		s.metrics.RatingPredictions.WithLabelValues(source).Inc()
	}
}
