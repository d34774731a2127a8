package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Checkout funnel
	CheckoutStarted  *prometheus.CounterVec
	PaymentAttempts  *prometheus.CounterVec
	PaymentSucceeded *prometheus.CounterVec
	PaymentFailed    *prometheus.CounterVec

	// Orders
	OrdersCaptured *prometheus.CounterVec
	OrderValue     *prometheus.HistogramVec
	OrderItemCount *prometheus.HistogramVec

	// Shipping quotes
	ShippingQuotes    *prometheus.CounterVec
	EstimatorFailures *prometheus.CounterVec

	// Reviews
	ReviewsCreated    *prometheus.CounterVec
	RatingPredictions *prometheus.CounterVec

	// Cart
	CartUpdated *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "vinoteca"
	}

	subsystem := "business"

	m := &BusinessMetrics{
		// =======================================================================
		// Checkout Funnel
		// =======================================================================
		CheckoutStarted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_started_total",
				Help:      "Total gateway orders created",
			},
			[]string{},
		),
		PaymentAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payment_attempts_total",
				Help:      "Total payment capture attempts",
			},
			[]string{},
		),
		PaymentSucceeded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payment_succeeded_total",
				Help:      "Total successful payment captures",
			},
			[]string{},
		),
		PaymentFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payment_failed_total",
				Help:      "Total failed payment captures",
			},
			[]string{"failure_reason"}, // failure_reason: gateway, invalid_amount, empty_cart, stock
		),

		// =======================================================================
		// Orders
		// =======================================================================
		OrdersCaptured: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_captured_total",
				Help:      "Total orders persisted after capture",
			},
			[]string{"replayed"}, // replayed: true, false
		),
		OrderValue: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value",
				Help:      "Captured order value distribution",
				Buckets:   []float64{50, 100, 250, 500, 750, 1000, 2500, 5000},
			},
			[]string{},
		),
		OrderItemCount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of lines per order",
				Buckets:   []float64{1, 2, 3, 5, 10, 15, 20},
			},
			[]string{},
		),

		// =======================================================================
		// Shipping Quotes
		// =======================================================================
		ShippingQuotes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "shipping_quotes_total",
				Help:      "Total shipping quotes by pricing outcome",
			},
			[]string{"outcome"}, // outcome: free, estimated
		),
		EstimatorFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "shipping_estimator_failures_total",
				Help:      "Total shipping predictor failures",
			},
			[]string{},
		),

		// =======================================================================
		// Reviews
		// =======================================================================
		ReviewsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "reviews_created_total",
				Help:      "Total reviews created",
			},
			[]string{},
		),
		RatingPredictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rating_predictions_total",
				Help:      "Total review ratings by source",
			},
			[]string{"source"}, // source: supplied, predicted, fallback
		),

		// =======================================================================
		// Cart
		// =======================================================================
		CartUpdated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_updated_total",
				Help:      "Total cart update operations",
			},
			[]string{"action"}, // action: add, remove, update_quantity, clear
		),
	}

	return m
}

// Global instance for easy access from handlers
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace)
	return Business
}
