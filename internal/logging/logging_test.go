package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/illarion/locksim/internal/lockerr"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", FormatJSON)
	require.NoError(t, err)

	logger.Debug().Str("lock_type", "password").Msg("armed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "armed", entry["message"])
	assert.Equal(t, "password", entry["lock_type"])
	assert.Contains(t, entry, "time")
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", FormatJSON)
	require.NoError(t, err)

	logger.Info().Msg("quiet")
	assert.Zero(t, buf.Len())

	logger.Warn().Msg("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "", "")
	require.NoError(t, err)

	logger.Info().Msg("attack started")
	assert.Contains(t, buf.String(), "attack started")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewRejectsUnknown(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "chatty", FormatJSON)
	assert.ErrorIs(t, err, lockerr.ErrConfig)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.ErrorIs(t, err, lockerr.ErrConfig)
}
