package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/example/shop-api/internal/api/middleware"
	"github.com/example/shop-api/internal/catalog"
)

// CategoryHandlers serves category listing and the admin category CRUD
type CategoryHandlers struct {
	store catalog.Store
}

func NewCategoryHandlers(store catalog.Store) *CategoryHandlers {
	return &CategoryHandlers{store: store}
}

func (h *CategoryHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// CategoryRequest is the admin create/update request body
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateCategory creates a category (admin only)
func (h *CategoryHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c := &catalog.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		UserID:      middleware.GetUserID(r.Context()),
	}
	if err := h.store.CreateCategory(r.Context(), c); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// UpdateCategory updates a category's name and description (admin only)
func (h *CategoryHandlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.UpdateCategory(r.Context(), id, req.Name, req.Description); err != nil {
		respondServiceError(w, err)
		return
	}

	c, err := h.store.GetCategory(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// DeleteCategory removes a category (admin only)
func (h *CategoryHandlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
