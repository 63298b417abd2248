// Package main boots the food-waste inventory HTTP service.
package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/autosave"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/catalog"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/config"
	httpapi "github.com/fairyhunter13/food-waste-inventory-service/internal/http"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/obs"
	"github.com/fairyhunter13/food-waste-inventory-service/internal/prediction"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	obs.InitLogger(cfg.LogLevel)
	obs.Logger.Infow("service_starting", "addr", cfg.HTTPAddr)

	store, closeStore := snapshotStore(cfg)
	opts := []catalog.Option{
		catalog.WithFreshness(cfg.CatalogFreshness),
		catalog.WithFetchLimit(cfg.CatalogFetchLimit),
		catalog.WithSearchDelay(cfg.SearchDelay),
		catalog.WithPageSize(cfg.SearchPageSize),
	}
	if cfg.CatalogRandomSeed != 0 {
		opts = append(opts, catalog.WithRand(rand.New(rand.NewSource(cfg.CatalogRandomSeed))))
	}
	cat := catalog.New(catalog.NewOpenFoodFacts(cfg.CatalogSourceURL, cfg.CatalogFetchTimeout), store, opts...)

	drafts := autosave.New(autosave.Options{
		Quiet:     cfg.AutosaveQuiet,
		Workers:   cfg.AutosaveWorkers,
		QueueSize: cfg.AutosaveQueueSize,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	drafts.Start(ctx)

	app := httpapi.NewApp(cfg, cat,
		prediction.NewClient(cfg.PredictionAPIURL, cfg.PredictionTimeout),
		prediction.NewWeather(cfg.WeatherDelay),
		drafts,
	)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Infow("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obs.Logger.Errorw("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, map[string]gfshutdown.Operation{
		"food-waste-inventory-service": func(ctx context.Context) error {
			app.StartShutdown()
			obs.Logger.Infow("shutdown_drain_begin", "pending_drafts", drafts.Metrics().Pending)
			if drained := drafts.Shutdown(ctx); !drained {
				obs.Logger.Warnw("shutdown_drain_timeout")
			} else {
				obs.Logger.Infow("shutdown_drain_complete")
			}
			err := srv.Shutdown(ctx)
			if err != nil {
				obs.Logger.Errorw("http_shutdown_error", "error", err)
			}
			cancel()
			closeStore()
			obs.Logger.Infow("service_stopped")
			obs.Sync()
			return err
		},
	})
	os.Exit(<-wait)
}

// snapshotStore shares the catalog snapshot through Redis when an address is
// configured and keeps it in memory otherwise.
func snapshotStore(cfg config.Config) (catalog.SnapshotStore, func()) {
	if cfg.CatalogRedisAddr == "" {
		return catalog.NewMemoryStore(), func() {}
	}
	rs := catalog.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.CatalogRedisAddr}), cfg.CatalogRedisPrefix, cfg.CatalogFreshness)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rs.Ping(ctx); err != nil {
		obs.Logger.Warnw("catalog_redis_unreachable", "addr", cfg.CatalogRedisAddr, "error", err)
	} else {
		obs.Logger.Infow("catalog_redis_connected", "addr", cfg.CatalogRedisAddr)
	}
	return rs, func() {
		if err := rs.Close(); err != nil {
			obs.Logger.Warnw("catalog_redis_close_failed", "error", err)
		}
	}
}
