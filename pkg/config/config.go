package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "CARTSIM"

type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"dev"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogSource bool   `envconfig:"LOG_SOURCE" default:"false"`

	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	CatalogSources []string      `envconfig:"CATALOG_SOURCES" default:"data/productos.json"`
	CatalogTimeout time.Duration `envconfig:"CATALOG_TIMEOUT" default:"10s"`

	// StoreDriver selects the key-value backend holding the cart slot:
	// file, sqlite, postgres, redis or memory.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"file"`
	StoreDir    string `envconfig:"STORE_DIR" default:".cartsim"`
	StoreDSN    string `envconfig:"STORE_DSN"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:"localhost:6379"`

	ReceiptDir    string `envconfig:"RECEIPT_DIR" default:"."`
	ReceiptLocale string `envconfig:"RECEIPT_LOCALE" default:"en"`
}

// Load reads the environment. Malformed values fall back to defaults so the
// simulator always starts.
func Load() Config {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Defaults()
	}
	cfg.CatalogSources = compact(cfg.CatalogSources)
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	return cfg
}

func Defaults() Config {
	return Config{
		AppEnv:         "dev",
		LogLevel:       "info",
		HTTPPort:       8080,
		CatalogSources: []string{"data/productos.json"},
		CatalogTimeout: 10 * time.Second,
		StoreDriver:    "file",
		StoreDir:       ".cartsim",
		RedisAddr:      "localhost:6379",
		ReceiptDir:     ".",
		ReceiptLocale:  "en",
	}
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
