// Command orders-migrate upgrades order ledgers written by old storefront
// versions, which recorded orders with status "Pending". It rewrites those
// rows to the terminal status implied by their payment mode.
//
// Two modes:
//
//	orders-migrate -store-path storefront.json
//	    rewrites a live file store in place.
//
//	orders-migrate -out merged.json.gz dump1.json.gz dump2.json.gz ...
//	    merges gzipped ledger dumps, dropping duplicate order ids, and
//	    writes the upgraded ledger as a new gzipped dump.
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/tastyflame/internal/domain/order"
	"github.com/xenking/tastyflame/internal/repository"
	"github.com/xenking/tastyflame/internal/storage/file"
)

func main() {
	var (
		storePath string
		outPath   string
	)

	flag.StringVar(&storePath, "store-path", "", "file store to rewrite in place")
	flag.StringVar(&outPath, "out", "merged.json.gz", "output path for the merged dump")
	flag.Parse()

	dumps := flag.Args()
	if storePath == "" && len(dumps) == 0 {
		slog.Error("nothing to do: pass -store-path or one or more ledger dumps")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var err error
	if storePath != "" {
		err = migrateStore(ctx, storePath)
	} else {
		err = mergeDumps(ctx, dumps, outPath)
	}
	if err != nil {
		slog.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("migration completed successfully")
}

// migrateStore rewrites a live file store's ledger in place.
func migrateStore(ctx context.Context, path string) error {
	store, err := file.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	repo := repository.NewOrderRepository(store)

	orders, err := repo.Orders(ctx)
	if err != nil {
		return errors.Wrap(err, "load orders")
	}

	changed := order.RetrofitLegacyStatus(orders)
	if changed == 0 {
		slog.Info("ledger already current", slog.Int("orders", len(orders)))
		return nil
	}

	if err := repo.SaveOrders(ctx, orders); err != nil {
		return errors.Wrap(err, "save orders")
	}

	slog.Info("ledger upgraded", slog.Int("orders", len(orders)), slog.Int("changed", changed))

	return nil
}

// mergeDumps reads every dump concurrently, merges them dropping duplicate
// order ids (first dump wins), upgrades legacy rows, and writes the result
// newest first as a new gzipped dump.
func mergeDumps(ctx context.Context, dumps []string, outPath string) error {
	ledgers := make([][]order.Order, len(dumps))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range dumps {
		g.Go(func() error {
			orders, err := readDump(ctx, path)
			if err != nil {
				return errors.Wrapf(err, "read %s", path)
			}

			slog.Info("dump read", slog.String("path", path), slog.Int("orders", len(orders)))

			ledgers[i] = orders
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	seen := make(map[string]struct{})
	var merged []order.Order
	duplicates := 0
	for _, orders := range ledgers {
		for _, o := range orders {
			if _, ok := seen[o.ID]; ok {
				duplicates++
				continue
			}
			seen[o.ID] = struct{}{}
			merged = append(merged, o)
		}
	}

	changed := order.RetrofitLegacyStatus(merged)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	if err := writeDump(outPath, merged); err != nil {
		return errors.Wrapf(err, "write %s", outPath)
	}

	slog.Info("dumps merged",
		slog.Int("orders", len(merged)),
		slog.Int("duplicates_dropped", duplicates),
		slog.Int("changed", changed),
		slog.String("out", outPath),
	)

	return nil
}

func readDump(ctx context.Context, path string) ([]order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "create gzip reader")
	}
	defer func() { _ = gz.Close() }()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}

	return repository.DecodeOrders(data)
}

func writeDump(path string, orders []order.Order) error {
	data, err := repository.EncodeOrders(orders)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create")
	}

	gz := pgzip.NewWriter(f)
	if _, err := gz.Write(data); err != nil {
		_ = gz.Close()
		_ = f.Close()
		return errors.Wrap(err, "write")
	}
	if err := gz.Close(); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "close gzip writer")
	}

	return errors.Wrap(f.Close(), "close")
}
