package reviews

import (
	"context"

	"github.com/google/uuid"
)

// Service implements review moderation: purchase-gated creation, one review
// per (user, product), owner-or-admin edits, and the pending -> approved
// transition with optional admin reply.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create inserts a pending review, gated on proof of purchase.
// The purchase check and the insert are separate statements; the race between
// two concurrent creates by the same user is benign and left uncorrected.
func (s *Service) Create(ctx context.Context, userID, productID string, rating int, comment string) (*Review, error) {
	purchased, err := s.store.HasCompletedPurchase(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, ErrNotPurchased
	}

	exists, err := s.store.Exists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	r := &Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		Status:    StatusPending,
	}
	if err := s.store.Insert(ctx, r); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, r.ID)
}

// Update edits a review. Only the author or an admin may edit; admin edits
// auto-approve, author edits go back to moderation.
func (s *Service) Update(ctx context.Context, id, actorID string, isAdmin bool, rating int, comment string) (*Review, error) {
	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != actorID && !isAdmin {
		return nil, ErrNotAuthorized
	}

	status := StatusPending
	if isAdmin {
		status = StatusApproved
	}
	if err := s.store.Update(ctx, id, rating, comment, status); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

// Delete removes a review. Only the author or an admin may delete.
func (s *Service) Delete(ctx context.Context, id, actorID string, isAdmin bool) error {
	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.UserID != actorID && !isAdmin {
		return ErrNotAuthorized
	}
	return s.store.Delete(ctx, id)
}

// ListApprovedForProduct returns the public reviews of a product
func (s *Service) ListApprovedForProduct(ctx context.Context, productID string) ([]Review, error) {
	return s.store.ListApprovedForProduct(ctx, productID)
}

// ListPending returns reviews awaiting moderation
func (s *Service) ListPending(ctx context.Context) ([]Review, error) {
	return s.store.ListPending(ctx)
}

// Approve transitions a pending review to approved. A review that is already
// approved (or missing) reports not-found, matching the conditional update.
func (s *Service) Approve(ctx context.Context, id, adminID string) (*Review, error) {
	ok, err := s.store.Approve(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.store.GetByID(ctx, id)
}

// Reply stamps an admin reply on an approved review
func (s *Service) Reply(ctx context.Context, id, adminID, reply string) (*Review, error) {
	ok, err := s.store.Reply(ctx, id, adminID, reply)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.store.GetByID(ctx, id)
}
