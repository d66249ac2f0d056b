package api

import (
	"net/http"

	"github.com/example/shop-api/internal/api/middleware"
	"github.com/example/shop-api/internal/users"
)

// UserHandlers serves the authenticated user's own resources
type UserHandlers struct {
	users *users.Service
}

func NewUserHandlers(userService *users.Service) *UserHandlers {
	return &UserHandlers{users: userService}
}

// GetProfile returns the authenticated user's profile
func (h *UserHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Profile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// UpdateProfile updates the authenticated user's name and email
func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// GetOrderHistory returns the authenticated user's purchase history
func (h *UserHandlers) GetOrderHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.users.Orders(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// GetWishlist returns the authenticated user's saved products
func (h *UserHandlers) GetWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.users.Wishlist(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}
