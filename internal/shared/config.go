package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	RedisAddr string
	RedisDB   int
	RedisPass string

	GoogleBase string
	GoogleKey  string
	GoogleRPS  int
	PoliceBase string
	FloodBase  string

	PlacesTTL       time.Duration
	DefaultRadiusKM float64
	FloodDistKM     float64
	Workers         int
}

func Load() Config {
	// .env is a convenience for local runs; absence is not an error.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		GoogleBase:      env("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com/maps/api"),
		GoogleKey:       env("GOOGLE_MAPS_API_KEY", ""),
		GoogleRPS:       atoi("GOOGLE_MAPS_RPS", 10),
		PoliceBase:      env("POLICE_BASE_URL", "https://data.police.uk/api"),
		FloodBase:       env("FLOOD_BASE_URL", "https://environment.data.gov.uk/flood-monitoring"),
		PlacesTTL:       time.Duration(atoi("PLACES_TTL_SECONDS", 600)) * time.Second,
		DefaultRadiusKM: atof("DEFAULT_RADIUS_KM", 1.5),
		FloodDistKM:     atof("FLOOD_DIST_KM", 5),
		Workers:         atoi("WARMUP_WORKERS", 3),
	}
	if c.GoogleKey == "" {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
