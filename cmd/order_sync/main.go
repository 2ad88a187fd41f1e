package main

import (
	"context"
	"flag"
	"log"
	"time"

	apporder "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/application/order"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/config"
	domain "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/domain/order"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/infrastructure/http/storefront"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/infrastructure/persistence/postgres"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/pkg/logger"
)

// Windowed sync of recently updated storefront orders into the local
// archive. Meant to run from cron; the API service does not depend on it.
func main() {
	window := flag.Duration("window", 24*time.Hour, "how far back to sync")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if cfg.Storefront.APIKey == "" || cfg.Storefront.StoreID == "" {
		log.Fatal("STOREFRONT_API_KEY and STOREFRONT_STORE_ID are required for sync")
	}

	logg, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer logg.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		logg.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	client := storefront.NewClient(cfg.Storefront, logg)
	svc := apporder.NewService(
		client,
		postgres.NewOrderRepository(pool),
		nil, // no purchase archiving on the sync path
		nil, // no tracking either: sync must never fire analytics
		domain.ParseIDStyle(cfg.Tracking.IDStyle),
		logg,
	)

	end := time.Now().UTC()
	start := end.Add(-*window)

	logg.Info("syncing storefront orders",
		logger.String("from", start.Format(time.RFC3339)),
		logger.String("to", end.Format(time.RFC3339)),
	)

	n, err := svc.SyncRecent(ctx, &start, &end)
	if err != nil {
		logg.Fatal("sync failed", logger.Int("archived", n), logger.Error(err))
	}

	logg.Info("sync finished", logger.Int("archived", n))
}
