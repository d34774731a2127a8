package shipping

import (
	"context"
)

// MockEstimator is a test implementation of Estimator.
type MockEstimator struct {
	EstimateCostFunc func(ctx context.Context, features FeatureVector) (float64, error)

	// Calls records the feature vectors passed to EstimateCost.
	Calls []FeatureVector
}

// NewMockEstimator creates a mock that always returns the given cost.
func NewMockEstimator(cost float64) *MockEstimator {
	return &MockEstimator{
		EstimateCostFunc: func(context.Context, FeatureVector) (float64, error) {
			return cost, nil
		},
	}
}

// EstimateCost delegates to the configured function.
func (m *MockEstimator) EstimateCost(ctx context.Context, features FeatureVector) (float64, error) {
	m.Calls = append(m.Calls, features)
	if m.EstimateCostFunc != nil {
		return m.EstimateCostFunc(ctx, features)
	}
	return 0, ErrEstimatorUnavailable
}

var _ Estimator = (*MockEstimator)(nil)
