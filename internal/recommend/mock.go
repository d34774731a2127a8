package recommend

import (
	"context"
)

// MockRecommender is a test implementation of Recommender.
type MockRecommender struct {
	RecommendProductsFunc func(ctx context.Context, productID int64) ([]int64, error)

	// Calls records the product ids passed to RecommendProducts.
	Calls []int64
}

// NewMockRecommender creates a mock that always returns the given ids.
func NewMockRecommender(ids ...int64) *MockRecommender {
	return &MockRecommender{
		RecommendProductsFunc: func(context.Context, int64) ([]int64, error) {
			return ids, nil
		},
	}
}

// RecommendProducts delegates to the configured function.
func (m *MockRecommender) RecommendProducts(ctx context.Context, productID int64) ([]int64, error) {
	m.Calls = append(m.Calls, productID)
	if m.RecommendProductsFunc != nil {
		return m.RecommendProductsFunc(ctx, productID)
	}
	return nil, ErrRecommenderUnavailable
}

var _ Recommender = (*MockRecommender)(nil)
