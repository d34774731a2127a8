// Package recommend talks to the external product recommendation service.
// Recommendations are advisory; callers degrade to an empty list when the
// service fails.
package recommend

import (
	"context"
	"errors"
)

// ErrRecommenderUnavailable is returned when the recommendation service
// is unreachable or answers without a usable id list.
var ErrRecommenderUnavailable = errors.New("recommender unavailable")

// Recommender suggests related product ids for a product.
type Recommender interface {
	RecommendProducts(ctx context.Context, productID int64) ([]int64, error)
}
