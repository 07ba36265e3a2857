package ddragon

import (
	"log/slog"
	"os"
	"path/filepath"
)

// diskCache stores raw JSON responses one file per resource, keyed by
// (dataset version, locale, resource name). Writes go through a temp file
// and an atomic rename so a concurrent reader never sees a partial file.
type diskCache struct {
	dir    string
	logger *slog.Logger
}

func newDiskCache(dir string, logger *slog.Logger) *diskCache {
	return &diskCache{dir: dir, logger: logger}
}

func (c *diskCache) path(version, locale, name string) string {
	return filepath.Join(c.dir, "ddragon", version, locale, name)
}

// Read returns the cached bytes, or ok=false when the entry is missing,
// empty, or unreadable. A bad cache entry just falls back to the network.
func (c *diskCache) Read(version, locale, name string) ([]byte, bool) {
	if c.dir == "" {
		return nil, false
	}
	data, err := os.ReadFile(c.path(version, locale, name))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Write persists a response. Failures are logged and swallowed; a cache
// write must never fail the fetch that produced the data.
func (c *diskCache) Write(version, locale, name string, data []byte) {
	if c.dir == "" {
		return
	}
	path := c.path(version, locale, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		c.logger.Warn("cache dir create failed", slog.String("path", path), slog.Any("error", err))
		return
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		c.logger.Warn("cache write failed", slog.String("path", path), slog.Any("error", err))
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		c.logger.Warn("cache rename failed", slog.String("path", path), slog.Any("error", err))
	}
}
