package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration, loaded from the environment with
// sensible defaults for a desktop install.
type Config struct {
	// Data Dragon
	BaseURL        string
	Locale         string
	CacheDir       string
	RequestTimeout time.Duration

	// Local storage
	HistoryPath string

	// League Client polling
	LCUPollInterval time.Duration
}

// Load reads configuration from the environment. A .env file next to the
// executable is honored for development.
func Load() (*Config, error) {
	godotenv.Load(".env")

	dataDir := appDataDir()

	cfg := &Config{
		BaseURL:         getEnv("DDRAGON_BASE_URL", "https://ddragon.leagueoflegends.com"),
		Locale:          getEnv("DDRAGON_LOCALE", "en_US"),
		CacheDir:        getEnv("RIFTROULETTE_CACHE_DIR", filepath.Join(dataDir, "cache")),
		RequestTimeout:  time.Duration(getEnvInt("DDRAGON_TIMEOUT_SECONDS", 20)) * time.Second,
		HistoryPath:     getEnv("RIFTROULETTE_HISTORY_PATH", filepath.Join(dataDir, "history.db")),
		LCUPollInterval: time.Duration(getEnvInt("LCU_POLL_SECONDS", 2)) * time.Second,
	}

	return cfg, nil
}

// appDataDir returns the per-user data directory, falling back to the
// working directory when the platform dir cannot be resolved.
func appDataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	return filepath.Join(configDir, "RiftRoulette")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
