package orders

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrNoItems           = errors.New("no order items")
	ErrInvalidItem       = errors.New("order item is missing product id, name or quantity")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCreationFailed    = errors.New("order creation failed")
	ErrPaymentIncomplete = errors.New("payment not completed")
)

// Store is the persistence surface the order workflow runs on.
// Create must be atomic: either the order row, every item row and every stock
// decrement persist, or none of them do.
type Store interface {
	Create(ctx context.Context, in CreateOrderInput) (orderID string, err error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByIDForUser(ctx context.Context, id, userID string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	Report(ctx context.Context, f ReportFilter) ([]ReportRow, error)
}
