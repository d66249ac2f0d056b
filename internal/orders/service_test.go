package orders

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore mimics the transactional semantics of the Postgres store: the
// order row, item rows and stock decrements land together or not at all.
type fakeStore struct {
	orders     map[string]*Order
	stock      map[string]int
	itemRows   int
	nextID     int
	failOnItem int // 1-based index of the item insert that fails; 0 = never
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders: make(map[string]*Order),
		stock:  make(map[string]int),
	}
}

func (f *fakeStore) Create(_ context.Context, in CreateOrderInput) (string, error) {
	staged := make(map[string]int, len(f.stock))
	for k, v := range f.stock {
		staged[k] = v
	}

	for i, item := range in.Items {
		if f.failOnItem == i+1 {
			return "", errors.New("forced item insert failure")
		}
		if staged[item.ProductID] < item.Qty {
			return "", fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductID)
		}
		staged[item.ProductID] -= item.Qty
	}

	// commit
	f.stock = staged
	f.itemRows += len(in.Items)
	f.nextID++
	id := fmt.Sprintf("order-%d", f.nextID)
	f.orders[id] = &Order{
		ID:              id,
		UserID:          in.UserID,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		ItemsPrice:      in.ItemsPrice,
		TaxPrice:        in.TaxPrice,
		ShippingPrice:   in.ShippingPrice,
		TotalPrice:      in.TotalPrice,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		Items:           in.Items,
	}
	return id, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) GetByIDForUser(_ context.Context, id, userID string) (*Order, error) {
	o, ok := f.orders[id]
	if !ok || o.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) List(_ context.Context) ([]Order, error) {
	var out []Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id string, status Status) error {
	o, ok := f.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeStore) Report(_ context.Context, _ ReportFilter) ([]ReportRow, error) {
	return nil, nil
}

type recordingPublisher struct {
	envelopes []Envelope
	keys      []string
	fail      bool
}

func (p *recordingPublisher) Publish(_ context.Context, key string, env Envelope) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.keys = append(p.keys, key)
	p.envelopes = append(p.envelopes, env)
	return nil
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		UserID:    "user-1",
		UserEmail: "user@example.com",
		Items: []OrderItem{
			{ProductID: "prod-1", Name: "Keyboard", Qty: 3, Price: decimal.NewFromInt(40), Image: "kb.png"},
		},
		ShippingAddress: ShippingAddress{Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"},
		PaymentMethod:   "stripe",
		ItemsPrice:      decimal.NewFromInt(120),
		TaxPrice:        decimal.NewFromInt(10),
		ShippingPrice:   decimal.NewFromInt(5),
		TotalPrice:      decimal.NewFromInt(135),
	}
}

func TestService_Create_Success(t *testing.T) {
	store := newFakeStore()
	store.stock["prod-1"] = 10
	events := &recordingPublisher{}
	svc := NewService(store, events)

	order, err := svc.Create(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, PaymentPending, order.PaymentStatus)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Qty)
	assert.Equal(t, 7, store.stock["prod-1"])
	assert.Equal(t, 1, store.itemRows)

	require.Len(t, events.envelopes, 1)
	assert.Equal(t, "order.created", events.envelopes[0].EventType)
	assert.Equal(t, order.ID, events.keys[0])
}

func TestService_Create_NoItems(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	in := validInput()
	in.Items = nil

	order, err := svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, ErrNoItems)
	assert.Nil(t, order)
}

func TestService_Create_InvalidItem(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	in := validInput()
	in.Items[0].Name = ""

	order, err := svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, ErrInvalidItem)
	assert.Nil(t, order)
}

func TestService_Create_RollsBackOnMidLoopFailure(t *testing.T) {
	store := newFakeStore()
	store.stock["prod-1"] = 10
	store.stock["prod-2"] = 10
	store.stock["prod-3"] = 10
	store.failOnItem = 2
	svc := NewService(store, nil)

	in := validInput()
	in.Items = []OrderItem{
		{ProductID: "prod-1", Name: "A", Qty: 1, Price: decimal.NewFromInt(10)},
		{ProductID: "prod-2", Name: "B", Qty: 1, Price: decimal.NewFromInt(10)},
		{ProductID: "prod-3", Name: "C", Qty: 1, Price: decimal.NewFromInt(10)},
	}

	order, err := svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, ErrCreationFailed)
	assert.Nil(t, order)
	assert.Empty(t, store.orders)
	assert.Zero(t, store.itemRows)
	assert.Equal(t, 10, store.stock["prod-1"])
	assert.Equal(t, 10, store.stock["prod-2"])
}

func TestService_Create_InsufficientStock(t *testing.T) {
	store := newFakeStore()
	store.stock["prod-1"] = 2
	svc := NewService(store, nil)

	order, err := svc.Create(context.Background(), validInput())

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Nil(t, order)
	assert.Equal(t, 2, store.stock["prod-1"])
	assert.Empty(t, store.orders)
}

func TestService_Create_PublishFailureDoesNotFailOrder(t *testing.T) {
	store := newFakeStore()
	store.stock["prod-1"] = 10
	svc := NewService(store, &recordingPublisher{fail: true})

	order, err := svc.Create(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestService_UpdateStatus(t *testing.T) {
	store := newFakeStore()
	store.stock["prod-1"] = 10
	svc := NewService(store, nil)

	order, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, updated.Status)

	got, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, got.Status)
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	updated, err := svc.UpdateStatus(context.Background(), "order-1", Status("teleported"))

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Nil(t, updated)
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	updated, err := svc.UpdateStatus(context.Background(), "missing", StatusPaid)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, updated)
}

func TestService_VerifyPayment(t *testing.T) {
	store := newFakeStore()
	store.stock["prod-1"] = 10
	svc := NewService(store, nil)

	order, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// Wrong owner looks like not-found, not forbidden.
	_, err = svc.VerifyPayment(context.Background(), order.ID, "someone-else")
	assert.ErrorIs(t, err, ErrNotFound)

	// Payment still pending.
	_, err = svc.VerifyPayment(context.Background(), order.ID, "user-1")
	assert.ErrorIs(t, err, ErrPaymentIncomplete)

	store.orders[order.ID].PaymentStatus = PaymentCompleted

	verified, err := svc.VerifyPayment(context.Background(), order.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, verified.ID)
}

func TestService_Delete(t *testing.T) {
	store := newFakeStore()
	store.stock["prod-1"] = 10
	svc := NewService(store, nil)

	order, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), order.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), order.ID), ErrNotFound)
}
