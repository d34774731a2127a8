package domain

import (
	"context"

	"github.com/ncordova/vinoteca/internal/repository"
)

// Order lifecycle states. Reviews only unlock once an order reaches
// StatusReceivedByCustomer.
const (
	OrderStatusInProgress         = "EN_PROCESO"
	OrderStatusShipped            = "ENVIADO"
	OrderStatusReceivedByCustomer = "RECIBIDO_CLIENTE"
	OrderStatusCancelled          = "CANCELADO"
)

// Order-related domain errors.
var (
	ErrOrderNotFound        = &Error{Code: ENOTFOUND, Message: "Pedido no encontrado"}
	ErrTotalMismatch        = &Error{Code: EINVALID, Message: "El total enviado no coincide con el total calculado"}
	ErrInvalidCaptureAmount = &Error{Code: EINTERNAL, Message: "Monto capturado inválido"}
	ErrInsufficientStock    = &Error{Code: ECONFLICT, Message: "Stock insuficiente para uno o más productos"}
)

// CheckoutService orchestrates the two-phase gateway protocol: create an
// order at the payment gateway after reconciling the client total, then
// capture the payment and persist the order atomically.
type CheckoutService interface {
	// CreateOrder recomputes the cart total server-side, rejects the
	// request when it strays from the client-submitted total by more than
	// the reconciliation tolerance, and registers an order with the
	// payment gateway. Returns the gateway order ID.
	CreateOrder(ctx context.Context, userID int64, items []CartLineItem, submittedTotal float64) (string, error)

	// CaptureOrder captures the gateway payment and, in one atomic
	// transaction, creates the order with its lines at current catalog
	// prices, records sales rows, decrements stock, and clears the cart.
	// A capture replayed against an already-persisted gateway order
	// returns the existing order instead of failing.
	CaptureOrder(ctx context.Context, userID int64, gatewayOrderID string) (*CaptureResult, error)
}

// CaptureResult reports a successful (or replayed) capture.
// Total is the captured amount reported by the gateway, which is the
// authoritative order total.
type CaptureResult struct {
	OrderID        int64
	GatewayOrderID string
	Total          float64
	Replayed       bool
}

// OrderDetail aggregates an order with its lines.
type OrderDetail struct {
	Order repository.Order
	Items []repository.OrderItem
}
