package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/shop-api/internal/api/middleware"
	"github.com/example/shop-api/internal/reviews"
)

// ReviewHandlers serves review submission, moderation, and listing
type ReviewHandlers struct {
	reviews *reviews.Service
}

func NewReviewHandlers(reviewService *reviews.Service) *ReviewHandlers {
	return &ReviewHandlers{reviews: reviewService}
}

// CreateReviewRequest is the review submission request body
type CreateReviewRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"required"`
}

// CreateReview submits a review for a purchased product. It enters
// moderation as pending.
func (h *ReviewHandlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.reviews.Create(r.Context(), middleware.GetUserID(r.Context()), req.ProductID, req.Rating, req.Comment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

// ListProductReviews returns the approved reviews of a product (public)
func (h *ReviewHandlers) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	list, err := h.reviews.ListApprovedForProduct(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// UpdateReviewRequest is the review edit request body
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required"`
}

// UpdateReview edits a review. Owners can edit their own (which sends the
// review back to moderation); admins can edit any (which approves it).
func (h *ReviewHandlers) UpdateReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.reviews.Update(r.Context(), chi.URLParam(r, "id"), claims.UserID, claims.IsAdmin(), req.Rating, req.Comment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// DeleteReview removes a review (owner or admin)
func (h *ReviewHandlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.reviews.Delete(r.Context(), chi.URLParam(r, "id"), claims.UserID, claims.IsAdmin()); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}

// ListPendingReviews returns the moderation queue (admin only)
func (h *ReviewHandlers) ListPendingReviews(w http.ResponseWriter, r *http.Request) {
	list, err := h.reviews.ListPending(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// ApproveReview publishes a pending review (admin only)
func (h *ReviewHandlers) ApproveReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.reviews.Approve(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// ReplyToReview attaches an official reply to an approved review (admin only)
func (h *ReviewHandlers) ReplyToReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reply string `json:"reply" validate:"required"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.reviews.Reply(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()), req.Reply)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}
