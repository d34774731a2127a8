// Package rating talks to the external review-rating prediction service.
// Predictions are advisory; callers fall back to a default rating when
// the service fails.
package rating

import (
	"context"
	"errors"
)

// ErrPredictorUnavailable is returned when the prediction service is
// unreachable or answers without a usable rating.
var ErrPredictorUnavailable = errors.New("rating predictor unavailable")

// Answers carries the categorical survey answers sent to the predictor.
type Answers struct {
	Sabor         string
	Empaque       string
	Precio        string
	Recomendacion string
	Entrega       string
}

// Predictor scores a review from survey answers on a 1-5 scale.
type Predictor interface {
	PredictRating(ctx context.Context, answers Answers) (int32, error)
}
