package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/example/shop-api/internal/api/middleware"
	"github.com/example/shop-api/internal/orders"
)

// OrderHandlers serves order placement, lookup, and the admin order surface
type OrderHandlers struct {
	orders *orders.Service
}

func NewOrderHandlers(orderService *orders.Service) *OrderHandlers {
	return &OrderHandlers{orders: orderService}
}

// OrderItemRequest is one line of the order placement request
type OrderItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

// ShippingAddressRequest is the address block of the order placement request
type ShippingAddressRequest struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// CreateOrderRequest is the order placement request body
type CreateOrderRequest struct {
	OrderItems      []OrderItemRequest     `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" validate:"required"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	ItemsPrice      decimal.Decimal        `json:"itemsPrice"`
	TaxPrice        decimal.Decimal        `json:"taxPrice"`
	ShippingPrice   decimal.Decimal        `json:"shippingPrice"`
	TotalPrice      decimal.Decimal        `json:"totalPrice"`
}

// CreateOrder places a new order for the authenticated user
func (h *OrderHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	items := make([]orders.OrderItem, 0, len(req.OrderItems))
	for _, it := range req.OrderItems {
		items = append(items, orders.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Qty:       it.Qty,
			Price:     it.Price,
			Image:     it.Image,
		})
	}

	order, err := h.orders.Create(r.Context(), orders.CreateOrderInput{
		UserID:    claims.UserID,
		UserEmail: claims.Email,
		Items:     items,
		ShippingAddress: orders.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
		ItemsPrice:    req.ItemsPrice,
		TaxPrice:      req.TaxPrice,
		ShippingPrice: req.ShippingPrice,
		TotalPrice:    req.TotalPrice,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// GetOrder returns one order with its items aggregated
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// ListOrders returns all orders, newest first (admin only)
func (h *OrderHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.orders.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// UpdateOrderStatus overwrites an order's status (admin only)
func (h *OrderHandlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), orders.Status(req.Status))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// DeleteOrder removes an order (admin only)
func (h *OrderHandlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
}

// GetReports returns sales aggregates grouped by date and status, narrowed
// by optional startDate, endDate and status query parameters (admin only)
func (h *OrderHandlers) GetReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.orders.Report(r.Context(), orders.ReportFilter{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Status:    q.Get("status"),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// VerifyPayment confirms that the authenticated user's order has completed
// payment
func (h *OrderHandlers) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.VerifyPayment(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"verified": true,
		"order":    order,
	})
}
