package app

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/xenking/tastyflame/internal/domain/cart"
	"github.com/xenking/tastyflame/internal/domain/catalog"
	"github.com/xenking/tastyflame/internal/domain/coupon"
	"github.com/xenking/tastyflame/internal/domain/order"
	"github.com/xenking/tastyflame/internal/invoice"
	"github.com/xenking/tastyflame/internal/repository"
	"github.com/xenking/tastyflame/internal/storage"
	"github.com/xenking/tastyflame/internal/storage/file"
	"github.com/xenking/tastyflame/internal/storage/memory"
	"github.com/xenking/tastyflame/internal/storage/postgres"
)

// Run creates all dependencies, seeds the menu, and drives the interactive
// storefront until the context is cancelled or the user quits. It is the
// single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("backend", cfg.Backend))

	kv, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "open store")
	}
	defer cleanup()

	// Repositories.
	cartRepo := repository.NewCartRepository(kv)
	orderRepo := repository.NewOrderRepository(kv)
	catalogRepo := repository.NewCatalogRepository(kv)
	userRepo := repository.NewUserRepository(kv)

	if err := catalog.Seed(ctx, catalogRepo); err != nil {
		return errors.Wrap(err, "seed menu")
	}

	// Domain services.
	cartStore := cart.NewStore(cartRepo, coupon.Builtin())
	ledger := order.NewLedger(orderRepo, cartStore)
	menu := catalog.NewService(catalogRepo, userRepo)

	mx, err := newMetrics(m.MeterProvider())
	if err != nil {
		return errors.Wrap(err, "create metrics")
	}

	shell := NewShell(ShellConfig{InvoiceDir: cfg.InvoiceDir},
		menu, cartStore, ledger,
		invoice.NewPDF(),
		mx,
		m.TracerProvider().Tracer("storefront"),
		lg,
	)

	lg.Info("Storefront ready")
	return shell.Run(ctx, os.Stdin, os.Stdout)
}

// openStore opens the configured storage backend. The returned cleanup is
// always safe to call.
func openStore(ctx context.Context, cfg *Config) (storage.KV, func(), error) {
	switch cfg.Backend {
	case "memory":
		return memory.New(), func() {}, nil

	case "file":
		store, err := file.Open(cfg.StorePath)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open %s", cfg.StorePath)
		}
		return store, func() {}, nil

	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "create db pool")
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, errors.Wrap(err, "run migrations")
		}
		return postgres.NewStore(pool), pool.Close, nil

	default:
		return nil, nil, errors.Errorf("unknown backend %q", cfg.Backend)
	}
}
