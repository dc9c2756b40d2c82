package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"propertypulse/internal/adapters/floodwatch"
	"propertypulse/internal/adapters/googlemaps"
	server "propertypulse/internal/adapters/http_server"
	"propertypulse/internal/adapters/observability"
	"propertypulse/internal/adapters/police"
	redisad "propertypulse/internal/adapters/redis"
	"propertypulse/internal/app"
	"propertypulse/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// every page this service backs depends on the Google key, so its
	// absence halts startup
	gm, err := googlemaps.New(cfg.GoogleBase, cfg.GoogleKey, cfg.GoogleRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("googlemaps client init failed")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewLookupService(gm, gm, police.New(cfg.PoliceBase), floodwatch.New(cfg.FloodBase), cache, cfg.PlacesTTL)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		L:               svc,
		DefaultRadiusKM: cfg.DefaultRadiusKM,
		FloodDistKM:     cfg.FloodDistKM,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
