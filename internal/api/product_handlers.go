package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/shop-api/internal/catalog"
)

// ProductHandlers serves the public catalog and the admin product CRUD
type ProductHandlers struct {
	store catalog.Store
}

func NewProductHandlers(store catalog.Store) *ProductHandlers {
	return &ProductHandlers{store: store}
}

// ListProducts returns the catalog, optionally narrowed by category, brand
// and price range query parameters
func (h *ProductHandlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.ProductFilter{
		CategoryID: q.Get("category"),
		Brand:      q.Get("brand"),
	}
	if raw := q.Get("minPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			respondJSONError(w, "invalid minPrice", http.StatusBadRequest)
			return
		}
		f.MinPrice = &d
	}
	if raw := q.Get("maxPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			respondJSONError(w, "invalid maxPrice", http.StatusBadRequest)
			return
		}
		f.MaxPrice = &d
	}

	products, err := h.store.ListProducts(r.Context(), f)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GetProduct returns one product with its approved reviews attached
func (h *ProductHandlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// ProductRequest is the admin create/update request body
type ProductRequest struct {
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	Brand        string          `json:"brand"`
	CategoryID   string          `json:"category_id"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	CountInStock int             `json:"count_in_stock" validate:"gte=0"`
	Image        string          `json:"image"`
}

// CreateProduct creates a product (admin only)
func (h *ProductHandlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p := &catalog.Product{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		Brand:        req.Brand,
		CategoryID:   req.CategoryID,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		Image:        req.Image,
	}
	if err := h.store.CreateProduct(r.Context(), p); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// UpdateProduct replaces a product's fields (admin only)
func (h *ProductHandlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p := &catalog.Product{
		ID:           chi.URLParam(r, "id"),
		Name:         req.Name,
		Description:  req.Description,
		Brand:        req.Brand,
		CategoryID:   req.CategoryID,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		Image:        req.Image,
	}
	if err := h.store.UpdateProduct(r.Context(), p); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// DeleteProduct removes a product (admin only)
func (h *ProductHandlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
