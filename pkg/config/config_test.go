package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, []string{"data/productos.json"}, cfg.CatalogSources)
	assert.Equal(t, 10*time.Second, cfg.CatalogTimeout)
	assert.False(t, cfg.LogSource)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CARTSIM_STORE_DRIVER", " Redis ")
	t.Setenv("CARTSIM_CATALOG_SOURCES", "a.json, ,https://example.com/b.json")
	t.Setenv("CARTSIM_HTTP_PORT", "9090")
	t.Setenv("CARTSIM_LOG_SOURCE", "true")

	cfg := Load()

	assert.Equal(t, "redis", cfg.StoreDriver)
	assert.Equal(t, []string{"a.json", "https://example.com/b.json"}, cfg.CatalogSources)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.True(t, cfg.LogSource)
}

func TestLoadInvalidFallsBack(t *testing.T) {
	t.Setenv("CARTSIM_HTTP_PORT", "not-a-port")

	cfg := Load()

	assert.Equal(t, Defaults(), cfg)
}
