package payment

import (
	"context"
	"strconv"

	"github.com/plutov/paypal/v4"
)

// PayPalProvider implements Provider against the PayPal Orders v2 API.
type PayPalProvider struct {
	client    *paypal.Client
	returnURL string
	cancelURL string
}

// PayPalConfig carries credentials and checkout redirect URLs.
type PayPalConfig struct {
	ClientID  string
	Secret    string
	Live      bool
	ReturnURL string
	CancelURL string
}

// NewPayPalProvider creates a provider from API credentials.
func NewPayPalProvider(cfg PayPalConfig) (*PayPalProvider, error) {
	if cfg.ClientID == "" || cfg.Secret == "" {
		return nil, ErrMissingCredentials
	}

	base := paypal.APIBaseSandBox
	if cfg.Live {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(cfg.ClientID, cfg.Secret, base)
	if err != nil {
		return nil, GatewayFailure(err)
	}

	return &PayPalProvider{
		client:    client,
		returnURL: cfg.ReturnURL,
		cancelURL: cfg.CancelURL,
	}, nil
}

// money formats a currency amount the way the Orders API expects.
func money(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// CreateOrder implements Provider.
func (p *PayPalProvider) CreateOrder(ctx context.Context, params CreateOrderParams) (*GatewayOrder, error) {
	if len(params.Items) == 0 {
		return nil, ErrNoItems
	}

	items := make([]paypal.Item, 0, len(params.Items))
	for _, it := range params.Items {
		items = append(items, paypal.Item{
			Name: it.Name,
			SKU:  it.SKU,
			UnitAmount: &paypal.Money{
				Currency: params.Currency,
				Value:    money(it.UnitAmount),
			},
			Quantity: strconv.Itoa(int(it.Quantity)),
		})
	}

	units := []paypal.PurchaseUnitRequest{
		{
			Amount: &paypal.PurchaseUnitAmount{
				Currency: params.Currency,
				Value:    money(params.GrandTotal),
				Breakdown: &paypal.PurchaseUnitAmountBreakdown{
					ItemTotal: &paypal.Money{
						Currency: params.Currency,
						Value:    money(params.ItemTotal),
					},
					Shipping: &paypal.Money{
						Currency: params.Currency,
						Value:    money(params.ShippingTotal),
					},
				},
			},
			Items: items,
		},
	}

	appCtx := &paypal.ApplicationContext{
		ShippingPreference: paypal.ShippingPreferenceNoShipping,
		UserAction:         paypal.UserActionPayNow,
		ReturnURL:          p.returnURL,
		CancelURL:          p.cancelURL,
	}

	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appCtx)
	if err != nil {
		return nil, GatewayFailure(err)
	}

	return &GatewayOrder{ID: order.ID, Status: order.Status}, nil
}

// CaptureOrder implements Provider. The captured amount is taken from the
// first capture across the purchase units; the Orders API nests it under
// payments.captures[].amount.value.
func (p *PayPalProvider) CaptureOrder(ctx context.Context, gatewayOrderID string) (*CaptureResult, error) {
	resp, err := p.client.CaptureOrder(ctx, gatewayOrderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return nil, GatewayFailure(err)
	}

	result := &CaptureResult{
		OrderID: resp.ID,
		Status:  resp.Status,
	}

	for _, unit := range resp.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}
		for _, capture := range unit.Payments.Captures {
			result.CaptureID = capture.ID
			if capture.Amount != nil {
				result.Amount = capture.Amount.Value
			}
			return result, nil
		}
	}

	return result, nil
}

var _ Provider = (*PayPalProvider)(nil)
