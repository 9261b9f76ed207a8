package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/xenking/tastyflame/internal/domain/catalog"
	"github.com/xenking/tastyflame/internal/domain/user"
	"github.com/xenking/tastyflame/internal/repository"
	"github.com/xenking/tastyflame/internal/storage"
	"github.com/xenking/tastyflame/internal/storage/file"
	"github.com/xenking/tastyflame/internal/storage/postgres"
)

func main() {
	var (
		backend     string
		storePath   string
		databaseURL string
		username    string
	)

	flag.StringVar(&backend, "backend", "file", "storage backend: file or postgres")
	flag.StringVar(&storePath, "store-path", "storefront.json", "store file path (file backend)")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&username, "username", "demo", "username to sign in as")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if backend == "postgres" && databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, backend, storePath, databaseURL, username); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, backend, storePath, databaseURL, username string) error {
	var kv storage.KV
	switch backend {
	case "file":
		store, err := file.Open(storePath)
		if err != nil {
			return errors.Wrapf(err, "open %s", storePath)
		}
		kv = store

	case "postgres":
		slog.Info("connecting to database")

		pool, err := postgres.NewPool(ctx, databaseURL)
		if err != nil {
			return errors.Wrap(err, "connect to database")
		}
		defer pool.Close()

		slog.Info("running migrations")

		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}
		kv = postgres.NewStore(pool)

	default:
		return errors.Errorf("unknown backend %q: want file or postgres", backend)
	}

	slog.Info("seeding menu", slog.String("version", catalog.SeedVersion))

	if err := catalog.Seed(ctx, repository.NewCatalogRepository(kv)); err != nil {
		return errors.Wrap(err, "seed menu")
	}

	u := user.User{ID: uuid.NewString(), Username: username}
	if err := repository.NewUserRepository(kv).SetCurrent(ctx, u); err != nil {
		return errors.Wrap(err, "sign in user")
	}

	slog.Info("signed in", slog.String("id", u.ID), slog.String("username", u.Username))

	return nil
}
