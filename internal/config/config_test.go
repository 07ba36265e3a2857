package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://ddragon.leagueoflegends.com", cfg.BaseURL)
	assert.Equal(t, "en_US", cfg.Locale)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.LCUPollInterval)
	assert.NotEmpty(t, cfg.CacheDir)
	assert.NotEmpty(t, cfg.HistoryPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DDRAGON_BASE_URL", "http://localhost:9999")
	t.Setenv("DDRAGON_LOCALE", "ko_KR")
	t.Setenv("RIFTROULETTE_CACHE_DIR", "/tmp/rr-cache")
	t.Setenv("DDRAGON_TIMEOUT_SECONDS", "5")
	t.Setenv("LCU_POLL_SECONDS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
	assert.Equal(t, "ko_KR", cfg.Locale)
	assert.Equal(t, "/tmp/rr-cache", cfg.CacheDir)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.LCUPollInterval)
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("DDRAGON_TIMEOUT_SECONDS", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
}
