package domain

import (
	"context"

	"github.com/ncordova/vinoteca/internal/repository"
)

// =============================================================================
// REVIEW DOMAIN ERRORS
// =============================================================================

var (
	ErrDuplicateReview = &Error{Code: EINVALID, Message: "Ya has reseñado este producto"}
	ErrReviewNotFound  = &Error{Code: ENOTFOUND, Message: "Reseña no encontrada"}
	ErrInvalidRating   = &Error{Code: EINVALID, Message: "La calificación debe estar entre 1 y 5"}
)

// DefaultRating is used when the rating prediction service is unavailable
// or the caller supplies no rating. Prediction is advisory, never blocking.
const DefaultRating = 3

// ReviewService provides review eligibility and submission.
type ReviewService interface {
	// EligibleProducts returns products the user has received in a
	// completed order and not yet reviewed. Deduplicated by product,
	// first occurrence wins.
	EligibleProducts(ctx context.Context, userID int64) ([]EligibleProduct, error)

	// CreateReview records a review for a product the user purchased.
	// At most one review per (user, product); the rating is predicted
	// from the survey answers when not supplied.
	CreateReview(ctx context.Context, params CreateReviewParams) (*ReviewDetail, error)
}

// EligibleProduct is a product awaiting review, with a display image when
// the catalog has one.
type EligibleProduct struct {
	ProductoID int64   `json:"productoId"`
	Name       string  `json:"name"`
	ImageURL   *string `json:"imageUrl"`
}

// SurveyAnswers carries the categorical answers fed to the rating
// prediction service.
type SurveyAnswers struct {
	Sabor         string
	Empaque       string
	Precio        string
	Recomendacion string
	Entrega       string
}

// CreateReviewParams carries fields for a new review.
// Rating of nil means "predict from the survey answers".
type CreateReviewParams struct {
	UserID    int64
	ProductID int64
	Comment   string
	Rating    *int32
	Survey    SurveyAnswers
	ImageURLs []string
}

// ReviewDetail aggregates a review with its attached images.
type ReviewDetail struct {
	Review repository.Review
	Images []repository.ReviewImage
}
