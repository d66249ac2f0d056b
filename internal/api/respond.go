package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/example/shop-api/internal/auth"
	"github.com/example/shop-api/internal/catalog"
	"github.com/example/shop-api/internal/orders"
	"github.com/example/shop-api/internal/payments"
	"github.com/example/shop-api/internal/reviews"
	"github.com/example/shop-api/internal/users"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[API] Failed to encode response: %v", err)
		}
	}
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondServiceError maps domain sentinel errors onto HTTP statuses. Unknown
// errors are logged and hidden behind a generic 500 body.
func respondServiceError(w http.ResponseWriter, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		respondValidationError(w, fieldErrs)
		return
	}

	switch {
	case errors.Is(err, orders.ErrNoItems),
		errors.Is(err, orders.ErrInvalidItem),
		errors.Is(err, orders.ErrInvalidStatus),
		errors.Is(err, orders.ErrInsufficientStock),
		errors.Is(err, orders.ErrPaymentIncomplete),
		errors.Is(err, auth.ErrPasswordTooShort):
		respondJSONError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, users.ErrInvalidCredentials):
		respondJSONError(w, "Invalid email or password", http.StatusUnauthorized)

	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		respondJSONError(w, "invalid token", http.StatusUnauthorized)

	case errors.Is(err, reviews.ErrNotAuthorized),
		errors.Is(err, reviews.ErrNotPurchased):
		respondJSONError(w, err.Error(), http.StatusForbidden)

	case errors.Is(err, orders.ErrNotFound),
		errors.Is(err, users.ErrNotFound),
		errors.Is(err, reviews.ErrNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, catalog.ErrCategoryNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, users.ErrEmailTaken),
		errors.Is(err, reviews.ErrAlreadyReviewed):
		respondJSONError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, payments.ErrInvalidSignature):
		respondJSONError(w, "invalid signature", http.StatusBadRequest)

	case errors.Is(err, payments.ErrProvider):
		respondJSONError(w, "payment provider error", http.StatusBadGateway)

	default:
		log.Printf("[API] Internal error: %v", err)
		respondJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

func respondValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field())
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "validation failed",
		"fields": fields,
	})
}
