// Package shipping talks to the external shipping-cost prediction service.
// The free-shipping threshold and cart summarization live in the service
// layer; this package only covers the wire call.
package shipping

import (
	"context"
)

// FeatureVector is the numeric cart summary sent to the cost predictor.
type FeatureVector struct {
	// NumProducts is the number of distinct cart lines.
	NumProducts int

	// NumItemsTotal is the sum of line quantities.
	NumItemsTotal int

	// TotalVolumeML is the summed bottle volume across all units.
	TotalVolumeML int

	// AvgUnitPrice is the subtotal divided by NumItemsTotal.
	AvgUnitPrice float64
}

// Estimator predicts a shipping cost for a cart summary.
// Implementations return ErrEstimatorUnavailable when the prediction
// service cannot produce a usable figure; callers decide whether that is
// fatal for the request.
type Estimator interface {
	EstimateCost(ctx context.Context, features FeatureVector) (float64, error)
}
