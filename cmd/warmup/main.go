// warmup primes the geocode and transport caches for the dashboard's example
// postcodes so a fresh deployment serves its quick-select buttons warm.
package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"propertypulse/internal/adapters/floodwatch"
	"propertypulse/internal/adapters/googlemaps"
	"propertypulse/internal/adapters/observability"
	"propertypulse/internal/adapters/police"
	redisad "propertypulse/internal/adapters/redis"
	"propertypulse/internal/app"
	"propertypulse/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.Workers).
		Float64("radius_km", cfg.DefaultRadiusKM).
		Int("postcodes", len(shared.ExamplePostcodes)).
		Msg("warmup starting")

	gm, err := googlemaps.New(cfg.GoogleBase, cfg.GoogleKey, cfg.GoogleRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("googlemaps client init failed")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewLookupService(gm, gm, police.New(cfg.PoliceBase), floodwatch.New(cfg.FloodBase), cache, cfg.PlacesTTL)

	radiusMeters := int(cfg.DefaultRadiusKM * 1000)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, pc := range shared.ExamplePostcodes {
		pc := pc

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(postcode string) {
			defer wg.Done()
			defer sem.Release(1)

			_, res, err := svc.Transport(ctx, postcode, radiusMeters)
			if err != nil {
				log.Warn().Str("postcode", postcode).Err(err).Msg("warmup lookup failed")
				return
			}
			if res.Err != "" {
				log.Warn().Str("postcode", postcode).Str("error", res.Err).Msg("warmup lookup partial")
				return
			}
			log.Info().Str("postcode", postcode).Int("places", len(res.Places)).Msg("warmup ok")
		}(pc)
	}

	wg.Wait()
	log.Info().Msg("warmup completed")
}
