package rating

import (
	"context"
)

// MockPredictor is a test implementation of Predictor.
type MockPredictor struct {
	PredictRatingFunc func(ctx context.Context, answers Answers) (int32, error)

	// Calls records the answers passed to PredictRating.
	Calls []Answers
}

// NewMockPredictor creates a mock that always returns the given rating.
func NewMockPredictor(rating int32) *MockPredictor {
	return &MockPredictor{
		PredictRatingFunc: func(context.Context, Answers) (int32, error) {
			return rating, nil
		},
	}
}

// PredictRating delegates to the configured function.
func (m *MockPredictor) PredictRating(ctx context.Context, answers Answers) (int32, error) {
	m.Calls = append(m.Calls, answers)
	if m.PredictRatingFunc != nil {
		return m.PredictRatingFunc(ctx, answers)
	}
	return 0, ErrPredictorUnavailable
}

var _ Predictor = (*MockPredictor)(nil)
