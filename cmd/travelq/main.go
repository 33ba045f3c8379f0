package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/couchcryptid/travel-query-service/internal/adapter/nominatim"
	"github.com/couchcryptid/travel-query-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/travel-query-service/internal/adapter/overpass"
	redisadapter "github.com/couchcryptid/travel-query-service/internal/adapter/redis"
	"github.com/couchcryptid/travel-query-service/internal/config"
	"github.com/couchcryptid/travel-query-service/internal/domain"
	"github.com/couchcryptid/travel-query-service/internal/observability"
	"github.com/couchcryptid/travel-query-service/internal/pipeline"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "travelq",
		Short:         "Answer free-form travel questions with weather and attractions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newAskCommand(), newChatCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// buildOrchestrator wires the providers behind the orchestrator: Nominatim
// behind an optional Redis cache and the in-memory LRU, Open-Meteo, and
// Overpass. The returned cleanup releases the Redis connection.
func buildOrchestrator(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (*pipeline.Orchestrator, func()) {
	cleanup := func() {}

	var geocoder domain.Geocoder = nominatim.NewClient(cfg, metrics, logger)
	if cfg.RedisURL != "" {
		client, err := redisadapter.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis geocode cache disabled", "error", err)
		} else {
			geocoder = redisadapter.NewGeocodeCache(geocoder, client, cfg.RedisCacheTTL, metrics, logger)
			cleanup = func() {
				if err := client.Close(); err != nil {
					logger.Error("redis close error", "error", err)
				}
			}
			logger.Info("redis geocode cache enabled", "ttl", cfg.RedisCacheTTL)
		}
	}
	geocoder = nominatim.NewCachedGeocoder(geocoder, cfg.GeocodeCacheSize, metrics)

	places := overpass.NewClient(cfg, metrics, logger)
	orch := pipeline.NewOrchestrator(
		geocoder,
		openmeteo.NewClient(cfg, metrics, logger),
		places,
		overpass.NewDetailProvider(geocoder, places, logger),
		metrics,
		logger,
	)
	return orch, cleanup
}
