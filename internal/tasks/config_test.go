package tasks

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/catalog/internal/config"
)

func TestConfigFrom(t *testing.T) {
	t.Run("explicit values", func(t *testing.T) {
		cfg := ConfigFrom(config.Tasks{
			Enabled:         true,
			Workers:         6,
			ReleaseAfter:    time.Minute,
			CleanupInterval: 10 * time.Minute,
		})

		assert.Equal(t, 6, cfg.Workers)
		assert.Equal(t, time.Minute, cfg.ReleaseAfter)
		assert.Equal(t, 10*time.Minute, cfg.CleanupInterval)
	})

	t.Run("unset values keep defaults", func(t *testing.T) {
		assert.Equal(t, DefaultConfig(), ConfigFrom(config.Tasks{Workers: -1}))
	})
}

func TestDatabasePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"./catalog.db", "catalog-tasks.db"},
		{"/var/lib/catalog/data.sqlite", "/var/lib/catalog/data-tasks.sqlite"},
		{"/data/catalog", "/data/catalog-tasks"},
		{"/data/catalog.db?_journal=WAL", "/data/catalog-tasks.db"},
		{"", "catalog-tasks.db"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), DatabasePath(tt.in))
		})
	}
}
