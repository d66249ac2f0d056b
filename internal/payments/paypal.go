package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"
)

// PayPalGateway implements RedirectGateway against the PayPal Orders v2 API
type PayPalGateway struct {
	client *paypal.Client

	authOnce sync.Once
	authErr  error
}

func NewPayPalGateway(clientID, secret, apiBase string) (*PayPalGateway, error) {
	c, err := paypal.NewClient(clientID, secret, apiBase)
	if err != nil {
		return nil, err
	}
	return &PayPalGateway{client: c}, nil
}

// ensureAuth fetches the first access token; the client refreshes it on its
// own afterwards.
func (g *PayPalGateway) ensureAuth(ctx context.Context) error {
	g.authOnce.Do(func() {
		_, g.authErr = g.client.GetAccessToken(ctx)
	})
	return g.authErr
}

// CreateOrder creates a remote order carrying our order ID as reference_id so
// the capture response can be correlated back.
func (g *PayPalGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, referenceID string) (*ProviderOrder, error) {
	if err := g.ensureAuth(ctx); err != nil {
		return nil, fmt.Errorf("%w: paypal auth: %v", ErrProvider, err)
	}

	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture,
		[]paypal.PurchaseUnitRequest{{
			ReferenceID: referenceID,
			Amount: &paypal.PurchaseUnitAmount{
				Currency: "USD",
				Value:    amount.StringFixed(2),
			},
		}}, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: paypal create order: %v", ErrProvider, err)
	}

	raw, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	return &ProviderOrder{ID: order.ID, Status: order.Status, Raw: raw}, nil
}

// CaptureOrder calls the capture endpoint and extracts the correlation
// reference from the response.
func (g *PayPalGateway) CaptureOrder(ctx context.Context, providerOrderID string) (*CaptureResult, error) {
	if err := g.ensureAuth(ctx); err != nil {
		return nil, fmt.Errorf("%w: paypal auth: %v", ErrProvider, err)
	}

	res, err := g.client.CaptureOrder(ctx, providerOrderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return nil, fmt.Errorf("%w: paypal capture order: %v", ErrProvider, err)
	}

	referenceID := ""
	if len(res.PurchaseUnits) > 0 {
		referenceID = res.PurchaseUnits[0].ReferenceID
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	return &CaptureResult{
		ID:          res.ID,
		Status:      res.Status,
		ReferenceID: referenceID,
		Raw:         raw,
	}, nil
}
