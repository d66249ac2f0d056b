package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Brand        string          `json:"brand,omitempty"`
	CategoryID   string          `json:"category_id,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CountInStock int             `json:"count_in_stock"`
	Image        string          `json:"image,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Reviews is attached on the product-detail view only
	Reviews []ProductReview `json:"reviews,omitempty"`
}

// ProductReview is the light review shape attached to product details
type ProductReview struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
}

// ProductFilter holds the optional, AND-combined catalog filters
type ProductFilter struct {
	CategoryID string
	Brand      string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
