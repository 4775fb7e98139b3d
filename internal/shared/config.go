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

	HostawayBase    string
	HostawayAccount string
	HostawayKey     string
	FetchTimeout    time.Duration

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	StoreDriver string // memory | mysql
	MySQLDSN    string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		HostawayBase:    env("HOSTAWAY_BASE_URL", "https://api.hostaway.com/v1"),
		HostawayAccount: env("HOSTAWAY_ACCOUNT_ID", "61148"),
		HostawayKey:     env("HOSTAWAY_API_KEY", ""),
		FetchTimeout:    time.Duration(atoi("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		RedisAddr:       env("REDIS_ADDR", ""),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		StoreDriver:     env("STORE_DRIVER", "memory"),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/flex?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
	}
	if c.HostawayKey == "" {
		log.Warn().Msg("HOSTAWAY_API_KEY is empty; every fetch will fall back to fixture reviews")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
