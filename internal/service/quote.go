package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/pricing"
	"github.com/ncordova/vinoteca/internal/shipping"
	"github.com/ncordova/vinoteca/internal/telemetry"
)

// DefaultFreeShippingThreshold is the subtotal at which shipping becomes free.
const DefaultFreeShippingThreshold = 500.00

// QuoteService prices a set of cart lines: subtotal, shipping cost and total.
type QuoteService interface {
	// Quote computes the full price breakdown for the given lines.
	Quote(ctx context.Context, items []domain.CartLineItem) (*Quote, error)
}

// Quote is the priced result for a set of cart lines.
type Quote struct {
	Breakdown    *pricing.Breakdown
	ShippingCost float64
	FreeShipping bool
	Total        float64
}

// quoteService implements QuoteService.
type quoteService struct {
	estimator shipping.Estimator
	threshold float64
	metrics   *telemetry.BusinessMetrics
}

// NewQuoteService creates a new QuoteService instance. A threshold of 0 uses
// the default free shipping threshold.
func NewQuoteService(estimator shipping.Estimator, threshold float64, metrics *telemetry.BusinessMetrics) QuoteService {
	if threshold <= 0 {
		threshold = DefaultFreeShippingThreshold
	}
	return &quoteService{
		estimator: estimator,
		threshold: threshold,
		metrics:   metrics,
	}
}

// Quote computes the full price breakdown for the given lines. Orders at or
// above the free shipping threshold never consult the estimator, so a
// predictor outage cannot block them.
func (s *quoteService) Quote(ctx context.Context, items []domain.CartLineItem) (*Quote, error) {
	breakdown, err := pricing.Calculate(items)
	if err != nil {
		return nil, err
	}

	if breakdown.Subtotal >= s.threshold {
		if s.metrics != nil {
			s.metrics.ShippingQuotes.WithLabelValues("free").Inc()
		}
		return &Quote{
			Breakdown:    breakdown,
			ShippingCost: 0,
			FreeShipping: true,
			Total:        breakdown.Subtotal,
		}, nil
	}

	cost, err := s.estimator.EstimateCost(ctx, shipping.FeatureVector{
		NumProducts:   breakdown.ItemCount,
		NumItemsTotal: breakdown.TotalUnits,
		TotalVolumeML: breakdown.TotalVolumeML,
		AvgUnitPrice:  breakdown.AverageUnitPrice,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.EstimatorFailures.WithLabelValues().Inc()
		}
		if errors.Is(err, shipping.ErrEstimatorUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to estimate shipping cost: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ShippingQuotes.WithLabelValues("estimated").Inc()
	}

	return &Quote{
		Breakdown:    breakdown,
		ShippingCost: cost,
		FreeShipping: false,
		Total:        pricing.Round2(breakdown.Subtotal + cost),
	}, nil
}
