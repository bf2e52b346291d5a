package tasks

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/catalog/internal/config"
)

// Config holds configuration for the task queue.
type Config struct {
	Workers         int
	ReleaseAfter    time.Duration // stuck tasks go back to the queue after this
	CleanupInterval time.Duration // how often finished tasks are purged
}

// DefaultConfig returns two workers, a 15m release and hourly cleanup.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

// ConfigFrom maps the TASK_* settings onto a Config. Unset or
// non-positive values keep their defaults.
func ConfigFrom(cfg config.Tasks) Config {
	out := DefaultConfig()
	if cfg.Workers > 0 {
		out.Workers = cfg.Workers
	}
	if cfg.ReleaseAfter > 0 {
		out.ReleaseAfter = cfg.ReleaseAfter
	}
	if cfg.CleanupInterval > 0 {
		out.CleanupInterval = cfg.CleanupInterval
	}
	return out
}

// DatabasePath returns the task database that lives next to the catalog
// database: "./catalog.db" becomes "./catalog-tasks.db". Query parameters
// on the catalog path are dropped.
func DatabasePath(catalogPath string) string {
	catalogPath, _, _ = strings.Cut(catalogPath, "?")
	if catalogPath == "" {
		catalogPath = config.DefaultDatabasePath
	}
	dir := filepath.Dir(catalogPath)
	base := filepath.Base(catalogPath)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+"-tasks"+ext)
}
