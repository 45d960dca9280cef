package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grocerpos/grocer/internal/analytics"
	analytichttp "github.com/grocerpos/grocer/internal/analytics/http"
	"github.com/grocerpos/grocer/internal/app"
	"github.com/grocerpos/grocer/internal/observability"
	"github.com/grocerpos/grocer/internal/platform/cache"
	"github.com/grocerpos/grocer/internal/platform/db"
	"github.com/grocerpos/grocer/internal/products"
	"github.com/grocerpos/grocer/internal/sales"
	"github.com/grocerpos/grocer/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	conn, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("open database", slog.String("path", cfg.DBPath), slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn("database close", slog.Any("error", err))
		}
	}()

	if cfg.DBSeed {
		n, err := db.Seed(ctx, conn)
		if err != nil {
			logger.Error("seed products", slog.Any("error", err))
			os.Exit(1)
		}
		if n > 0 {
			logger.Info("seeded sample products", slog.Int("count", n))
		}
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, idempotency keys disabled", slog.Any("error", err))
		redisClient = nil
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}
	idempotencyStore := shared.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL)

	metrics := observability.NewMetrics()

	productsService := products.NewService(products.NewRepository(conn))
	productsHandler := products.NewHandler(logger, productsService)

	salesService := sales.NewService(sales.NewRepository(conn), idempotencyStore, metrics, logger)
	salesHandler := sales.NewHandler(logger, salesService)

	analyticsService := analytics.NewService(analytics.NewRepository(conn), cfg.Location())
	analyticsHandler := analytichttp.NewHandler(logger, analyticsService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Metrics:          metrics,
		ProductsHandler:  productsHandler,
		SalesHandler:     salesHandler,
		AnalyticsHandler: analyticsHandler,
		Ping:             conn.PingContext,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("db", cfg.DBPath))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
