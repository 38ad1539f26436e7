package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/config"
	"github.com/anvilworks/forgeledger/internal/contract"
	"github.com/anvilworks/forgeledger/internal/crafting"
	"github.com/anvilworks/forgeledger/internal/currency"
	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/economy"
	"github.com/anvilworks/forgeledger/internal/inventory"
	"github.com/anvilworks/forgeledger/internal/ledger"
	"github.com/anvilworks/forgeledger/internal/logger"
	"github.com/anvilworks/forgeledger/internal/pricing"
	"github.com/anvilworks/forgeledger/internal/production"
	"github.com/anvilworks/forgeledger/internal/recipe"
	"github.com/anvilworks/forgeledger/internal/seed"
	"github.com/anvilworks/forgeledger/internal/server"
	"github.com/anvilworks/forgeledger/internal/snapshot"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// The persisted document uses plain JSON numbers for money
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "forgeledger",
	})

	// State owners
	settings := domain.DefaultSettings()
	settings.ShopName = cfg.ShopName
	settings.Currency = cfg.Currency
	settings.TaxRate = cfg.TaxRate
	settings.LowStockThreshold = cfg.LowStockThreshold

	inv := inventory.NewStore()
	recipes := recipe.NewStore()
	resolver := recipe.NewResolver(inv, recipes)
	led := ledger.NewLedger()
	prices := pricing.NewList()

	craftingService := crafting.NewService(inv, recipes, resolver, led)
	economyService := economy.NewService(inv, led)
	queue := production.NewManager(recipes, resolver, craftingService)
	contractService := contract.NewService(inv, recipes, resolver, queue)
	reporter := ledger.NewReporter(inv)

	stores := snapshot.Stores{
		Settings:  &settings,
		Inventory: inv,
		Recipes:   recipes,
		Pricing:   prices,
		Queue:     queue,
		Ledger:    led,
		Contracts: contractService,
	}

	// Restore persisted state, or seed a fresh shop
	doc, err := snapshot.Load(cfg.SnapshotPath)
	switch {
	case err == nil:
		if err := snapshot.Validate(doc); err != nil {
			slog.Error("Snapshot failed validation", "error", err, "path", cfg.SnapshotPath)
			os.Exit(1)
		}
		snapshot.Restore(doc, stores)
		slog.Info("Snapshot restored",
			"path", cfg.SnapshotPath,
			"materials", len(doc.Inventory),
			"recipes", len(doc.Recipes),
			"transactions", len(doc.SalesHistory))
	case errors.Is(err, snapshot.ErrNoSnapshot):
		seeded := seed.Document(time.Now())
		seeded.AppState = settings
		if cfg.SeedDemoData {
			rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
			seeded.SalesHistory = seed.DemoTransactions(rnd, time.Now(), 90, 60)
		}
		snapshot.Restore(seeded, stores)
		if err := snapshot.Save(cfg.SnapshotPath, seeded); err != nil {
			slog.Error("Failed to persist seed snapshot", "error", err)
			os.Exit(1)
		}
		slog.Info("Seeded fresh shop state", "path", cfg.SnapshotPath, "demo_data", cfg.SeedDemoData)
	default:
		slog.Error("Failed to load snapshot", "error", err, "path", cfg.SnapshotPath)
		os.Exit(1)
	}

	srv := server.NewServer(cfg.Port, server.Deps{
		Stores:          stores,
		Resolver:        resolver,
		CraftingService: craftingService,
		EconomyService:  economyService,
		Reporter:        reporter,
		PriceList:       prices,
		Money:           currency.NewFormatter(cfg.Currency),
		SnapshotPath:    cfg.SnapshotPath,
	})

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
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	// Final save so state changed since the last autosave is not lost
	if err := snapshot.Save(cfg.SnapshotPath, snapshot.Capture(stores)); err != nil {
		slog.Error("Final snapshot save failed", "error", err)
	}

	slog.Info("Server stopped")
}
