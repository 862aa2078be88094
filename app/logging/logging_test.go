package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json with component", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, "debug", "json")
		require.NoError(t, err)

		l := Component(logger, "store")
		l.Debug().Str("driver", "badger").Msg("opened")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "store", entry[COMPONENT])
		assert.Equal(t, "badger", entry["driver"])
		assert.Equal(t, "opened", entry["message"])
		assert.Contains(t, entry, "time")
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, "warn", "")
		require.NoError(t, err)
		logger.Info().Msg("hidden")
		assert.Empty(t, buf.String())
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, "", "console")
		require.NoError(t, err)
		logger.Info().Msg("hello")
		assert.Contains(t, buf.String(), "hello")
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, "loud", "json")
		assert.Error(t, err)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, "info", "xml")
		assert.Error(t, err)
	})
}
