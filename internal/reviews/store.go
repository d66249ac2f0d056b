package reviews

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("review not found")
	ErrNotPurchased    = errors.New("you can only review products you have purchased")
	ErrAlreadyReviewed = errors.New("you have already reviewed this product")
	ErrNotAuthorized   = errors.New("not authorized to modify this review")
)

// Store is the persistence surface for review moderation. Approve and Reply
// are conditional writes: they report false when the review is missing or not
// in the state the transition requires.
type Store interface {
	HasCompletedPurchase(ctx context.Context, userID, productID string) (bool, error)
	Exists(ctx context.Context, userID, productID string) (bool, error)
	Insert(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	Update(ctx context.Context, id string, rating int, comment string, status Status) error
	Delete(ctx context.Context, id string) error
	ListApprovedForProduct(ctx context.Context, productID string) ([]Review, error)
	ListPending(ctx context.Context) ([]Review, error)
	Approve(ctx context.Context, id, adminID string) (bool, error)
	Reply(ctx context.Context, id, adminID, reply string) (bool, error)
}
