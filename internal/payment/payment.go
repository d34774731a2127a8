// Package payment abstracts the external payment gateway behind the
// create/capture two-phase protocol.
package payment

import (
	"context"
)

// Provider defines the gateway operations used by checkout.
type Provider interface {
	// CreateOrder registers an order with the gateway and returns its
	// gateway identifier. The amounts are authoritative server-side
	// figures; client-submitted pricing is never forwarded.
	CreateOrder(ctx context.Context, params CreateOrderParams) (*GatewayOrder, error)

	// CaptureOrder collects the payment for a previously created order.
	// Amount is the raw captured value as reported by the gateway;
	// callers validate and parse it.
	CaptureOrder(ctx context.Context, gatewayOrderID string) (*CaptureResult, error)
}

// LineItem is one display line forwarded to the gateway.
type LineItem struct {
	Name       string
	SKU        string
	UnitAmount float64
	Quantity   int32
}

// CreateOrderParams carries the authoritative order breakdown.
// GrandTotal must equal ItemTotal + ShippingTotal.
type CreateOrderParams struct {
	Currency      string
	ItemTotal     float64
	ShippingTotal float64
	GrandTotal    float64
	Items         []LineItem
}

// GatewayOrder is the gateway's view of a created order.
type GatewayOrder struct {
	ID     string
	Status string
}

// CaptureResult reports a capture. Amount is the captured monetary value
// as a decimal string, empty when the gateway response carried none.
type CaptureResult struct {
	OrderID   string
	CaptureID string
	Status    string
	Amount    string
}
