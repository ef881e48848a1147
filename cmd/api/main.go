package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/smartwarranty/warranty-go/internal/config"
	"github.com/smartwarranty/warranty-go/internal/handler"
	"github.com/smartwarranty/warranty-go/internal/middleware"
	"github.com/smartwarranty/warranty-go/internal/qrcode"
	"github.com/smartwarranty/warranty-go/internal/repository"
	"github.com/smartwarranty/warranty-go/internal/scanner"
	"github.com/smartwarranty/warranty-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	cancel()
	if err != nil {
		slog.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	qrGen, err := qrcode.NewGenerator(cfg.QRCodeDir)
	if err != nil {
		slog.Error("qr code directory setup failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.UniqueEmail)
	authHandler := handler.NewAuthHandler(authService)

	productService := service.NewProductService(productRepo, userRepo, qrGen, cfg.EnforceOwnership)
	productHandler := handler.NewProductHandler(productService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/v1/auth/register", authHandler.HandleRegister)
		r.Post("/api/v1/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		if cfg.RequireToken {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
		} else {
			r.Use(middleware.TrustedIdentity())
		}

		r.Get("/api/v1/auth/me", authHandler.HandleMe)
		r.Get("/api/v1/dashboard", productHandler.HandleDashboard)

		r.Post("/api/v1/products", productHandler.HandleCreate)
		r.Get("/api/v1/products/{product_id}", productHandler.HandleGet)
		r.Put("/api/v1/products/{product_id}", productHandler.HandleUpdate)
		r.Delete("/api/v1/products/{product_id}", productHandler.HandleDelete)
		r.Get("/api/v1/products/{product_id}/qrcode", productHandler.HandleQRCode)
	})

	// Warranty alert scanner, scheduled independently of request traffic.
	notifier := scanner.Notifier(scanner.LogNotifier{})
	if cfg.NotifyWebhookURL != "" {
		notifier = scanner.MultiNotifier{
			scanner.LogNotifier{},
			scanner.NewWebhookNotifier(cfg.NotifyWebhookURL),
		}
	}
	alertScanner := scanner.New(productRepo, userRepo, notifier, cfg.AlertThresholds)

	sched := cron.New()
	if _, err := sched.AddFunc(cfg.ScanSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := alertScanner.Tick(ctx); err != nil {
			slog.Error("warranty scan failed", "error", err)
		}
	}); err != nil {
		slog.Error("invalid scan schedule", "schedule", cfg.ScanSchedule, "error", err)
		os.Exit(1)
	}
	sched.Start()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "scan_schedule", cfg.ScanSchedule)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	// Let an in-flight scan finish before exiting.
	<-sched.Stop().Done()

	slog.Info("server stopped")
}
