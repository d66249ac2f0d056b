package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingAddress is stored on the order as a JSON column and returned to
// clients in structured form.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderItem is a purchase-time snapshot of a product line. Rows are created
// atomically with their order and never mutated afterwards.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

// Order is the aggregate returned by the order workflow
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	ItemsPrice      decimal.Decimal `json:"items_price"`
	TaxPrice        decimal.Decimal `json:"tax_price"`
	ShippingPrice   decimal.Decimal `json:"shipping_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          Status          `json:"status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	PayPalOrderID   string          `json:"paypal_order_id,omitempty"`
	UserName        string          `json:"user_name,omitempty"`
	UserEmail       string          `json:"user_email,omitempty"`
	Items           []OrderItem     `json:"order_items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateOrderInput carries everything the workflow needs to persist an order
type CreateOrderInput struct {
	UserID          string
	UserEmail       string
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   string
	ItemsPrice      decimal.Decimal
	TaxPrice        decimal.Decimal
	ShippingPrice   decimal.Decimal
	TotalPrice      decimal.Decimal
}

// ReportFilter holds the optional, AND-combined filters of the reports query
type ReportFilter struct {
	StartDate string
	EndDate   string
	Status    string
}

// ReportRow is one aggregate row grouped by calendar date and status
type ReportRow struct {
	Date        string          `json:"date"`
	Status      Status          `json:"status"`
	TotalOrders int             `json:"total_orders"`
	TotalSales  decimal.Decimal `json:"total_sales"`
}
