package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/shop-api/internal/api"
	"github.com/example/shop-api/internal/auth"
	"github.com/example/shop-api/internal/catalog"
	"github.com/example/shop-api/internal/config"
	"github.com/example/shop-api/internal/email"
	"github.com/example/shop-api/internal/event"
	"github.com/example/shop-api/internal/orders"
	"github.com/example/shop-api/internal/payments"
	"github.com/example/shop-api/internal/reviews"
	"github.com/example/shop-api/internal/store"
	"github.com/example/shop-api/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[API] Configuration error: %v", err)
	}

	log.Println("[API] ========================================")
	log.Println("[API] Shop API")
	log.Println("[API] ========================================")
	log.Printf("[API] Kafka: %v", cfg.KafkaBrokers)
	log.Printf("[API] Topic: %s", cfg.KafkaTopic)

	db, err := store.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	log.Println("[API] Connected to PostgreSQL")

	producer := event.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenExpiry)
	mailer := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)

	var card payments.CardGateway
	if cfg.StripeSecretKey != "" {
		card = payments.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	} else {
		log.Println("[API] STRIPE_SECRET_KEY not set, stripe routes disabled")
	}

	var redirect payments.RedirectGateway
	if cfg.PayPalClientID != "" {
		gw, err := payments.NewPayPalGateway(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalAPIBase)
		if err != nil {
			log.Fatalf("[API] Failed to initialize PayPal client: %v", err)
		}
		redirect = gw
	} else {
		log.Println("[API] PAYPAL_CLIENT_ID not set, paypal routes disabled")
	}

	userService := users.NewService(users.NewPostgresStore(db), tokens, mailer, cfg.AppBaseURL)
	orderService := orders.NewService(orders.NewPostgresStore(db), producer)
	paymentService := payments.NewService(payments.NewPostgresOrderStore(db), card, redirect, producer)
	reviewService := reviews.NewService(reviews.NewPostgresStore(db))
	catalogStore := catalog.NewPostgresStore(db)

	router := api.NewRouter(&api.Handlers{
		Auth:     api.NewAuthHandlers(userService, tokens),
		Users:    api.NewUserHandlers(userService),
		Products: api.NewProductHandlers(catalogStore),
		Category: api.NewCategoryHandlers(catalogStore),
		Orders:   api.NewOrderHandlers(orderService),
		Payments: api.NewPaymentHandlers(paymentService),
		Reviews:  api.NewReviewHandlers(reviewService),
	}, tokens)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
}
