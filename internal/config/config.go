package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
)

// Public CORS relays, tried in this order.
var DefaultRelays = []string{
	"https://corsproxy.io/?url={url}",
	"https://api.allorigins.win/raw?url={url}",
	"https://api.codetabs.com/v1/proxy?quest={url}",
}

type Config struct {
	Env        string
	ListenAddr string
	LogLevel   string

	StoreDriver string // postgres|sqlite|memory
	DatabaseURL string
	SQLitePath  string

	LookupWorkers    int
	LookupRatePerSec float64

	Relays            []string
	SourceBaseURL     string
	SearchURLTemplate string
	DetailPathPattern string
	HTTPTimeout       time.Duration

	GeminiAPIKey string
	GeminiModel  string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the environment, after merging an optional .env file. The
// returned error is a warning about an incomplete setup; cfg is always usable.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:               getenv("APP_ENV", "development"),
		ListenAddr:        getenv("LISTEN_ADDR", ":8080"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SQLitePath:        getenv("SQLITE_PATH", "gradplus.db"),
		LookupWorkers:     getenvInt("LOOKUP_WORKERS", 0),
		LookupRatePerSec:  getenvFloat("LOOKUP_RATE_PER_SEC", 0.5),
		Relays:            getenvList("PROXY_RELAYS", DefaultRelays),
		SourceBaseURL:     getenv("SOURCE_BASE_URL", "https://www.companywall.hr"),
		SearchURLTemplate: getenv("SEARCH_URL_TEMPLATE", "https://www.companywall.hr/pretraga?n={query}"),
		DetailPathPattern: getenv("DETAIL_PATH_PATTERN", `/tvrtka/[^/?#]+/[^/?#]+`),
		HTTPTimeout:       getenvDuration("HTTP_TIMEOUT", 20*time.Second),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getenv("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	cfg.StoreDriver = os.Getenv("STORE_DRIVER")
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = "memory"
		if cfg.DatabaseURL != "" {
			cfg.StoreDriver = "postgres"
		}
	}
	switch cfg.StoreDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return cfg, eris.New("STORE_DRIVER=postgres but DATABASE_URL not set")
		}
	case "sqlite", "memory":
	default:
		return cfg, eris.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver == "memory" {
		// Not fatal for local runs; the cache is simply lost on restart.
		return cfg, eris.New("no persistent store configured, using in-memory cache")
	}
	return cfg, nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		_, err := fmt.Sscanf(v, "%d", &out)
		if err == nil {
			return out
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		var out float64
		_, err := fmt.Sscanf(v, "%g", &out)
		if err == nil {
			return out
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getenvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}
