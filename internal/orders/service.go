package orders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/example/shop-api/internal/event"
)

// Publisher is the slice of the event producer the workflow needs
type Publisher interface {
	Publish(ctx context.Context, key string, env Envelope) error
}

// Envelope aliases the stream envelope so fakes don't import kafka machinery
type Envelope = event.Envelope

// Service implements the order workflow
type Service struct {
	store  Store
	events Publisher
}

func NewService(store Store, events Publisher) *Service {
	return &Service{store: store, events: events}
}

// Create validates the request, persists the order atomically and returns the
// stored aggregate. The post-commit read is a separate query; a concurrent
// delete in that window surfaces as an internal error, which is acceptable
// for this domain.
func (s *Service) Create(ctx context.Context, in CreateOrderInput) (*Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Name == "" || item.Qty <= 0 {
			return nil, fmt.Errorf("%w: product %q", ErrInvalidItem, item.ProductID)
		}
	}

	orderID, err := s.store.Create(ctx, in)
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return nil, err
		}
		log.Printf("[Orders] Create transaction rolled back: %v", err)
		return nil, ErrCreationFailed
	}

	order, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("read back order %s: %w", orderID, err)
	}

	s.publishCreated(ctx, order, in.UserEmail)
	return order, nil
}

func (s *Service) publishCreated(ctx context.Context, o *Order, userEmail string) {
	if s.events == nil {
		return
	}

	items := make([]event.ItemPayload, len(o.Items))
	for i, item := range o.Items {
		items[i] = event.ItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Qty:       item.Qty,
			Price:     item.Price,
		}
	}

	env, err := event.NewEnvelope(event.TypeOrderCreated, "shop-api", event.OrderCreatedPayload{
		OrderID:   o.ID,
		UserID:    o.UserID,
		UserEmail: userEmail,
		Items:     items,
		Total:     o.TotalPrice,
	})
	if err != nil {
		log.Printf("[Orders] Failed to build order.created event: %v", err)
		return
	}
	if err := s.events.Publish(ctx, o.ID, env); err != nil {
		log.Printf("[Orders] Failed to publish order.created for %s: %v", o.ID, err)
	}
}

// Get returns one order with its items aggregated
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.store.GetByID(ctx, id)
}

// ListAll returns every order, newest first, with user display fields
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.store.List(ctx)
}

// UpdateStatus overwrites the order status. Any known status may replace any
// other known status; unknown values are rejected.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) Report(ctx context.Context, f ReportFilter) ([]ReportRow, error) {
	return s.store.Report(ctx, f)
}

// VerifyPayment checks that the order belongs to the user and that its payment
// has been reconciled.
func (s *Service) VerifyPayment(ctx context.Context, orderID, userID string) (*Order, error) {
	order, err := s.store.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus != PaymentCompleted {
		return nil, ErrPaymentIncomplete
	}
	return order, nil
}
