package payment

import (
	"context"
)

// MockProvider is a test implementation of Provider.
type MockProvider struct {
	CreateOrderFunc  func(ctx context.Context, params CreateOrderParams) (*GatewayOrder, error)
	CaptureOrderFunc func(ctx context.Context, gatewayOrderID string) (*CaptureResult, error)

	// CreateCalls and CaptureCalls record the inputs of each call.
	CreateCalls  []CreateOrderParams
	CaptureCalls []string
}

// CreateOrder delegates to the configured function.
func (m *MockProvider) CreateOrder(ctx context.Context, params CreateOrderParams) (*GatewayOrder, error) {
	m.CreateCalls = append(m.CreateCalls, params)
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, params)
	}
	return &GatewayOrder{ID: "MOCK-ORDER", Status: "CREATED"}, nil
}

// CaptureOrder delegates to the configured function.
func (m *MockProvider) CaptureOrder(ctx context.Context, gatewayOrderID string) (*CaptureResult, error) {
	m.CaptureCalls = append(m.CaptureCalls, gatewayOrderID)
	if m.CaptureOrderFunc != nil {
		return m.CaptureOrderFunc(ctx, gatewayOrderID)
	}
	return &CaptureResult{OrderID: gatewayOrderID, Status: "COMPLETED", Amount: "0.00"}, nil
}

var _ Provider = (*MockProvider)(nil)
