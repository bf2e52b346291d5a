package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/config"
)

func TestSetupWithWriter(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	t.Run("json output at configured level", func(t *testing.T) {
		var buf bytes.Buffer
		SetupWithWriter(config.Logging{Level: "warn", Format: "json"}, &buf)

		log.Info().Msg("hidden")
		log.Warn().Str("key", "value").Msg("shown")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, "shown", entry["message"])
		assert.Equal(t, "value", entry["key"])
		assert.Equal(t, "warn", entry["level"])
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		SetupWithWriter(config.Logging{Level: "loud"}, &buf)
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("component tag", func(t *testing.T) {
		var buf bytes.Buffer
		SetupWithWriter(config.Logging{Level: "debug"}, &buf)

		logger := Component("database")
		logger.Info().Msg("ready")
		assert.Contains(t, buf.String(), `"component":"database"`)
	})
}
