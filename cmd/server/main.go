package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"localwear-be/internal/auth"
	"localwear-be/internal/category"
	"localwear-be/internal/config"
	"localwear-be/internal/db"
	"localwear-be/internal/handler"
	"localwear-be/internal/image"
	"localwear-be/internal/logger"
	"localwear-be/internal/metrics"
	"localwear-be/internal/middleware"
	"localwear-be/internal/migrate"
	"localwear-be/internal/order"
	"localwear-be/internal/product"
	"localwear-be/internal/seed"
	"localwear-be/internal/user"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.L().Fatal("invalid configuration", zap.Error(err))
	}

	// Prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.L().Fatal("server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.L()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.AutoMigrate {
		if err := migrate.NewRunner(database, cfg.MigrationsDir).Run(ctx, migrate.ModeUp); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	txm := db.NewTxManager(database)
	userRepo := user.NewRepository(database)
	productRepo := product.NewRepository(database)
	orderRepo := order.NewRepository(database)

	seeder := seed.NewSeeder(userRepo, productRepo, txm, seed.Admin{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err := seeder.Run(ctx); err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	uploader, err := image.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	if err != nil {
		log.Warn("image uploads disabled", zap.Error(err))
		uploader = image.DisabledUploader()
	}

	handlers := handler.Handlers{
		Auth:     handler.NewAuthHandler(user.NewService(userRepo, user.NewGoogleVerifier(cfg.GoogleClientID), tokens), cfg.IsProduction(), int(cfg.JWTTTL.Seconds())),
		Product:  handler.NewProductHandler(product.NewService(productRepo, txm)),
		Category: handler.NewCategoryHandler(category.NewService(category.NewRepository(database))),
		Order:    handler.NewOrderHandler(order.NewService(orderRepo, productRepo, userRepo, txm, &reg.OrdersPlaced)),
		Image:    handler.NewImageHandler(image.NewService(uploader, cfg.MaxUploadBytes)),
		Health:   handler.NewHealthHandler(database, reg),
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           setupRouter(ctx, cfg, handlers, tokens, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return serve(ctx, srv, cfg.ShutdownTimeout)
}

func setupRouter(ctx context.Context, cfg *config.Config, h handler.Handlers, tokens middleware.TokenParser, reg *metrics.Registry) http.Handler {
	engine := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Production:     cfg.IsProduction(),
	}, h)

	limiter := middleware.NewRateLimiter(ctx, cfg.InternalSecretKey)

	return handler.Chain(engine,
		logger.RequestIDMiddleware,
		middleware.AuthMiddleware(tokens),
		middleware.LoggingMiddleware(reg),
		limiter.Middleware,
	)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	log := logger.L()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
