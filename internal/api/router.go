package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/example/shop-api/internal/api/middleware"
	"github.com/example/shop-api/internal/auth"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth     *AuthHandlers
	Users    *UserHandlers
	Products *ProductHandlers
	Category *CategoryHandlers
	Orders   *OrderHandlers
	Payments *PaymentHandlers
	Reviews  *ReviewHandlers
}

// NewRouter builds the full route tree
func NewRouter(h *Handlers, tokens *auth.TokenService) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	requireAuth := middleware.Auth(tokens)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)
			r.With(requireAuth).Get("/me", h.Auth.Me)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/profile", h.Users.GetProfile)
			r.Put("/profile", h.Users.UpdateProfile)
			r.Get("/orders", h.Users.GetOrderHistory)
			r.Get("/wishlist", h.Users.GetWishlist)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.ListProducts)
			r.Get("/{id}", h.Products.GetProduct)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, middleware.RequireAdmin)
				r.Post("/", h.Products.CreateProduct)
				r.Put("/{id}", h.Products.UpdateProduct)
				r.Delete("/{id}", h.Products.DeleteProduct)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Category.ListCategories)
			r.Get("/{id}", h.Category.GetCategory)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, middleware.RequireAdmin)
				r.Post("/", h.Category.CreateCategory)
				r.Put("/{id}", h.Category.UpdateCategory)
				r.Delete("/{id}", h.Category.DeleteCategory)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", h.Orders.CreateOrder)
			r.Get("/{id}", h.Orders.GetOrder)
			r.Get("/{id}/verify", h.Orders.VerifyPayment)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.Orders.ListOrders)
				r.Get("/reports", h.Orders.GetReports)
				r.Put("/{id}", h.Orders.UpdateOrderStatus)
				r.Delete("/{id}", h.Orders.DeleteOrder)
			})
		})

		r.Route("/payment", func(r chi.Router) {
			// The webhook is authenticated by its signature, not a session
			r.Post("/stripe/webhook", h.Payments.StripeWebhook)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/stripe/create-payment-intent", h.Payments.CreateStripeIntent)
				r.Post("/paypal/create-order", h.Payments.CreatePayPalOrder)
				r.Post("/paypal/capture-order", h.Payments.CapturePayPalOrder)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/product/{productId}", h.Reviews.ListProductReviews)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.Reviews.CreateReview)
				r.Put("/{id}", h.Reviews.UpdateReview)
				r.Delete("/{id}", h.Reviews.DeleteReview)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, middleware.RequireAdmin)
				r.Get("/pending", h.Reviews.ListPendingReviews)
				r.Put("/{id}/approve", h.Reviews.ApproveReview)
				r.Post("/{id}/reply", h.Reviews.ReplyToReview)
			})
		})
	})

	return r
}
