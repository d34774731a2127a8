package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ncordova/vinoteca/internal/domain"
	"github.com/ncordova/vinoteca/internal/payment"
	"github.com/ncordova/vinoteca/internal/pricing"
	"github.com/ncordova/vinoteca/internal/repository"
	"github.com/ncordova/vinoteca/internal/telemetry"
)

// totalTolerance is the maximum absolute difference allowed between the
// server-computed total and the total submitted by the client.
var totalTolerance = decimal.NewFromFloat(0.01)

// checkoutService implements domain.CheckoutService.
type checkoutService struct {
	store   repository.Store
	quotes  QuoteService
	gateway payment.Provider
	metrics *telemetry.BusinessMetrics
}

// NewCheckoutService creates a new checkout service backed by the given
// store, quote service and payment gateway.
func NewCheckoutService(store repository.Store, quotes QuoteService, gateway payment.Provider, metrics *telemetry.BusinessMetrics) domain.CheckoutService {
	return &checkoutService{
		store:   store,
		quotes:  quotes,
		gateway: gateway,
		metrics: metrics,
	}
}

// CreateOrder prices the submitted lines, verifies the client total against
// the server total and creates a gateway order. It returns the gateway order
// id for the client to approve. Nothing is persisted at this stage.
func (s *checkoutService) CreateOrder(ctx context.Context, userID int64, items []domain.CartLineItem, submittedTotal float64) (string, error) {
	const op = "checkout.create_order"

	quote, err := s.quotes.Quote(ctx, items)
	if err != nil {
		return "", err
	}

	// Compare with decimals so the boundary case (difference exactly equal
	// to the tolerance) is accepted without float drift.
	diff := decimal.NewFromFloat(quote.Total).Sub(decimal.NewFromFloat(submittedTotal)).Abs()
	if diff.GreaterThan(totalTolerance) {
		return "", domain.ErrTotalMismatch
	}

	lines := make([]payment.LineItem, len(items))
	for i, item := range items {
		lines[i] = payment.LineItem{
			Name:       item.Name,
			SKU:        strconv.FormatInt(item.ProductID, 10),
			UnitAmount: item.UnitPrice,
			Quantity:   item.Quantity,
		}
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, payment.CreateOrderParams{
		Currency:      "USD",
		ItemTotal:     quote.Breakdown.Subtotal,
		ShippingTotal: quote.ShippingCost,
		GrandTotal:    quote.Total,
		Items:         lines,
	})
	if err != nil {
		return "", domain.PaymentFailed(err, op, "No se pudo procesar el pago")
	}

	if s.metrics != nil {
		s.metrics.CheckoutStarted.WithLabelValues().Inc()
	}

	return gatewayOrder.ID, nil
}

// CaptureOrder captures the payment for a previously created gateway order
// and persists it atomically: order header, lines at current catalog prices,
// sales rows, stock decrements and cart clearing all commit together.
// Replaying a capture for an already persisted gateway order returns the
// existing order without touching the gateway or the cart again.
func (s *checkoutService) CaptureOrder(ctx context.Context, userID int64, gatewayOrderID string) (*domain.CaptureResult, error) {
	const op = "checkout.capture_order"

	if s.metrics != nil {
		s.metrics.PaymentAttempts.WithLabelValues().Inc()
	}

	existing, err := s.store.GetOrderByGatewayID(ctx, gatewayOrderID)
	if err == nil {
		if s.metrics != nil {
			s.metrics.OrdersCaptured.WithLabelValues("true").Inc()
		}
		return &domain.CaptureResult{
			OrderID:        existing.ID,
			GatewayOrderID: existing.GatewayOrderID,
			Total:          existing.Total,
			Replayed:       true,
		}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Internal(err, op, "failed to check for existing order")
	}

	capture, err := s.gateway.CaptureOrder(ctx, gatewayOrderID)
	if err != nil {
		s.countFailure("gateway")
		return nil, domain.PaymentFailed(err, op, "No se pudo procesar el pago")
	}

	total, err := parseCapturedAmount(capture.Amount)
	if err != nil {
		s.countFailure("invalid_amount")
		return nil, domain.ErrInvalidCaptureAmount
	}

	items, err := s.store.ListCartItems(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart")
	}
	if len(items) == 0 {
		s.countFailure("empty_cart")
		return nil, domain.ErrEmptyCart
	}

	var order repository.Order
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		order, err = q.CreateOrder(ctx, repository.CreateOrderParams{
			UserID:         userID,
			GatewayOrderID: gatewayOrderID,
			Status:         domain.OrderStatusInProgress,
			Total:          total,
		})
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range items {
			if _, err := q.CreateOrderItem(ctx, repository.CreateOrderItemParams{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Price,
			}); err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			if _, err := q.CreateSale(ctx, repository.CreateSaleParams{
				ProductID: item.ProductID,
				UserID:    userID,
				Quantity:  item.Quantity,
				UnitPrice: item.Price,
				LineTotal: pricing.Round2(item.Price * float64(item.Quantity)),
			}); err != nil {
				return fmt.Errorf("failed to record sale: %w", err)
			}

			affected, err := q.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
			if affected == 0 {
				return domain.ErrInsufficientStock
			}
		}

		if err := q.DeleteCartItems(ctx, userID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			s.countFailure("stock")
			return nil, err
		}
		return nil, domain.Internal(err, op, "failed to persist order")
	}

	if s.metrics != nil {
		s.metrics.PaymentSucceeded.WithLabelValues().Inc()
		s.metrics.OrdersCaptured.WithLabelValues("false").Inc()
		s.metrics.OrderValue.WithLabelValues().Observe(total)
		s.metrics.OrderItemCount.WithLabelValues().Observe(float64(len(items)))
	}

	return &domain.CaptureResult{
		OrderID:        order.ID,
		GatewayOrderID: gatewayOrderID,
		Total:          total,
		Replayed:       false,
	}, nil
}

func (s *checkoutService) countFailure(reason string) {
	if s.metrics != nil {
		s.metrics.PaymentFailed.WithLabelValues(reason).Inc()
	}
}

// parseCapturedAmount parses the gateway's captured amount string into a
// float. Empty, unparseable or negative amounts are rejected.
func parseCapturedAmount(amount string) (float64, error) {
	if amount == "" {
		return 0, errors.New("captured amount is empty")
	}
	total, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0, fmt.Errorf("captured amount %q is not a number: %w", amount, err)
	}
	if total < 0 {
		return 0, fmt.Errorf("captured amount %q is negative", amount)
	}
	return total, nil
}
