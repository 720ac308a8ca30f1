package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/farmgate/storefront/internal/cart"
	"github.com/farmgate/storefront/internal/catalog"
	"github.com/farmgate/storefront/internal/checkout"
	"github.com/farmgate/storefront/internal/config"
	"github.com/farmgate/storefront/internal/database"
	"github.com/farmgate/storefront/internal/database/postgres"
	"github.com/farmgate/storefront/internal/logger"
	"github.com/farmgate/storefront/internal/pricing"
	"github.com/farmgate/storefront/internal/server"
	"github.com/farmgate/storefront/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Storefront failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	pool, err := database.NewPool(cfg.GetDBConnString(), database.DefaultMaxConnections, 5*time.Minute, 30*time.Minute)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := migrate(pool); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	cartRepo := postgres.NewCartRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	pricingRepo := postgres.NewPricingRepository(pool)

	oracle := pricing.NewService(pricingRepo, cfg.PriceCacheSize, time.Duration(cfg.PriceCacheTTLSeconds)*time.Second)
	cartService := cart.NewService(cartRepo, cart.NewMemoryProvider(), oracle)
	catalogService := catalog.NewService(catalogRepo)
	checkoutService := checkout.NewService(cartService, cfg.ShippingFlatRate, cfg.FreeShippingThreshold, cfg.Currency)

	srv := server.NewServer(cfg.Port, pool, cartService, catalogService, checkoutService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func migrate(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.Up(db, ".")
}
