package payments

import (
	"context"
	"testing"

	"github.com/example/shop-api/internal/event"
	"github.com/example/shop-api/internal/orders"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentState struct {
	intentID      string
	paypalOrderID string
	paid          bool
}

// fakeOrderStore mirrors the conditional-update semantics of the Postgres
// store: MarkPaid matches at most once per order and returns "" afterwards.
type fakeOrderStore struct {
	byID map[string]*paymentState
}

func newFakeOrderStore(orderIDs ...string) *fakeOrderStore {
	f := &fakeOrderStore{byID: make(map[string]*paymentState)}
	for _, id := range orderIDs {
		f.byID[id] = &paymentState{}
	}
	return f
}

func (f *fakeOrderStore) SetPaymentIntentID(_ context.Context, orderID, intentID string) error {
	st, ok := f.byID[orderID]
	if !ok {
		return orders.ErrNotFound
	}
	st.intentID = intentID
	return nil
}

func (f *fakeOrderStore) SetProviderOrderID(_ context.Context, orderID, providerOrderID string) error {
	st, ok := f.byID[orderID]
	if !ok {
		return orders.ErrNotFound
	}
	st.paypalOrderID = providerOrderID
	return nil
}

func (f *fakeOrderStore) MarkPaidByIntentID(_ context.Context, intentID string) (string, error) {
	for id, st := range f.byID {
		if st.intentID == intentID && !st.paid {
			st.paid = true
			return id, nil
		}
	}
	return "", nil
}

func (f *fakeOrderStore) MarkPaidByProviderOrder(_ context.Context, providerOrderID, referenceID string) (string, error) {
	for id, st := range f.byID {
		if (st.paypalOrderID == providerOrderID || id == referenceID) && !st.paid {
			st.paid = true
			return id, nil
		}
	}
	return "", nil
}

type stubCard struct {
	intent     *Intent
	webhookEv  *WebhookEvent
	webhookErr error

	gotAmount  decimal.Decimal
	gotOrderID string
}

func (c *stubCard) CreateIntent(_ context.Context, amount decimal.Decimal, orderID string) (*Intent, error) {
	c.gotAmount = amount
	c.gotOrderID = orderID
	return c.intent, nil
}

func (c *stubCard) ParseWebhook(_ []byte, _ string) (*WebhookEvent, error) {
	return c.webhookEv, c.webhookErr
}

type stubRedirect struct {
	created  *ProviderOrder
	captured *CaptureResult
}

func (r *stubRedirect) CreateOrder(_ context.Context, _ decimal.Decimal, _ string) (*ProviderOrder, error) {
	return r.created, nil
}

func (r *stubRedirect) CaptureOrder(_ context.Context, _ string) (*CaptureResult, error) {
	return r.captured, nil
}

type recordingPublisher struct {
	envelopes []event.Envelope
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, env event.Envelope) error {
	p.envelopes = append(p.envelopes, env)
	return nil
}

func TestService_CreateStripeIntent(t *testing.T) {
	store := newFakeOrderStore("order-1")
	card := &stubCard{intent: &Intent{ID: "pi_123", ClientSecret: "pi_123_secret"}}
	svc := NewService(store, card, nil, nil)

	secret, err := svc.CreateStripeIntent(context.Background(), "order-1", decimal.RequireFromString("10.50"))

	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret", secret)
	assert.Equal(t, "order-1", card.gotOrderID)
	assert.Equal(t, "pi_123", store.byID["order-1"].intentID)
}

func TestService_CreateStripeIntent_OrderNotFound(t *testing.T) {
	store := newFakeOrderStore()
	card := &stubCard{intent: &Intent{ID: "pi_123", ClientSecret: "pi_123_secret"}}
	svc := NewService(store, card, nil, nil)

	secret, err := svc.CreateStripeIntent(context.Background(), "missing", decimal.NewFromInt(10))

	assert.ErrorIs(t, err, orders.ErrNotFound)
	assert.Empty(t, secret)
}

func TestService_HandleStripeWebhook_MarksPaidExactlyOnce(t *testing.T) {
	store := newFakeOrderStore("order-1")
	store.byID["order-1"].intentID = "pi_123"
	card := &stubCard{webhookEv: &WebhookEvent{Type: "payment_intent.succeeded", IntentID: "pi_123"}}
	events := &recordingPublisher{}
	svc := NewService(store, card, nil, events)

	require.NoError(t, svc.HandleStripeWebhook(context.Background(), []byte(`{}`), "sig"))
	assert.True(t, store.byID["order-1"].paid)
	require.Len(t, events.envelopes, 1)
	assert.Equal(t, "order.paid", events.envelopes[0].EventType)

	// Replay: no error, no second event.
	require.NoError(t, svc.HandleStripeWebhook(context.Background(), []byte(`{}`), "sig"))
	assert.Len(t, events.envelopes, 1)
}

func TestService_HandleStripeWebhook_UnknownIntentChangesNothing(t *testing.T) {
	store := newFakeOrderStore("order-1")
	store.byID["order-1"].intentID = "pi_123"
	card := &stubCard{webhookEv: &WebhookEvent{Type: "payment_intent.succeeded", IntentID: "pi_other"}}
	svc := NewService(store, card, nil, nil)

	require.NoError(t, svc.HandleStripeWebhook(context.Background(), []byte(`{}`), "sig"))

	assert.False(t, store.byID["order-1"].paid)
}

func TestService_HandleStripeWebhook_InvalidSignature(t *testing.T) {
	store := newFakeOrderStore("order-1")
	store.byID["order-1"].intentID = "pi_123"
	card := &stubCard{webhookErr: ErrInvalidSignature}
	svc := NewService(store, card, nil, nil)

	err := svc.HandleStripeWebhook(context.Background(), []byte(`{}`), "bad-sig")

	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.False(t, store.byID["order-1"].paid)
}

func TestService_HandleStripeWebhook_IgnoresOtherEventTypes(t *testing.T) {
	store := newFakeOrderStore("order-1")
	store.byID["order-1"].intentID = "pi_123"
	card := &stubCard{webhookEv: &WebhookEvent{Type: "payment_intent.created", IntentID: "pi_123"}}
	svc := NewService(store, card, nil, nil)

	require.NoError(t, svc.HandleStripeWebhook(context.Background(), []byte(`{}`), "sig"))

	assert.False(t, store.byID["order-1"].paid)
}

func TestService_CreatePayPalOrder(t *testing.T) {
	store := newFakeOrderStore("order-1")
	redirect := &stubRedirect{created: &ProviderOrder{ID: "PP-1", Status: "CREATED"}}
	svc := NewService(store, nil, redirect, nil)

	po, err := svc.CreatePayPalOrder(context.Background(), "order-1", decimal.NewFromInt(135))

	require.NoError(t, err)
	assert.Equal(t, "PP-1", po.ID)
	assert.Equal(t, "PP-1", store.byID["order-1"].paypalOrderID)
}

func TestService_CapturePayPalOrder_MatchesByProviderID(t *testing.T) {
	store := newFakeOrderStore("order-1")
	store.byID["order-1"].paypalOrderID = "PP-1"
	redirect := &stubRedirect{captured: &CaptureResult{ID: "PP-1", Status: "COMPLETED", ReferenceID: "unrelated"}}
	events := &recordingPublisher{}
	svc := NewService(store, nil, redirect, events)

	res, err := svc.CapturePayPalOrder(context.Background(), "PP-1")

	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", res.Status)
	assert.True(t, store.byID["order-1"].paid)
	assert.Len(t, events.envelopes, 1)
}

func TestService_CapturePayPalOrder_MatchesByReference(t *testing.T) {
	// Provider ID was never stored locally; the correlation reference alone
	// must still reconcile the order.
	store := newFakeOrderStore("order-1")
	redirect := &stubRedirect{captured: &CaptureResult{ID: "PP-unknown", Status: "COMPLETED", ReferenceID: "order-1"}}
	svc := NewService(store, nil, redirect, nil)

	_, err := svc.CapturePayPalOrder(context.Background(), "PP-unknown")

	require.NoError(t, err)
	assert.True(t, store.byID["order-1"].paid)
}

func TestService_CapturePayPalOrder_DuplicateCaptureIsQuiet(t *testing.T) {
	store := newFakeOrderStore("order-1")
	store.byID["order-1"].paypalOrderID = "PP-1"
	redirect := &stubRedirect{captured: &CaptureResult{ID: "PP-1", Status: "COMPLETED", ReferenceID: "order-1"}}
	events := &recordingPublisher{}
	svc := NewService(store, nil, redirect, events)

	_, err := svc.CapturePayPalOrder(context.Background(), "PP-1")
	require.NoError(t, err)
	_, err = svc.CapturePayPalOrder(context.Background(), "PP-1")
	require.NoError(t, err)

	assert.Len(t, events.envelopes, 1)
}
