package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLogName(t *testing.T) {
	assert.Equal(t, "rental-booking", logName(""))
	assert.Equal(t, "nairobi-rentals", logName("  Nairobi Rentals "))
	assert.Equal(t, "a-b", logName("a/b"))
}

func TestNewLogger(t *testing.T) {
	t.Run("WritesConsoleAndRotatingFile", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")
		console := &zaptest.Buffer{}

		logger, err := newLogger(AppConfig{Name: "Nairobi Rentals", LogPath: dir}, console)
		require.NoError(t, err)
		logger.Info("booking confirmed")
		require.NoError(t, logger.Sync())

		lines := console.Lines()
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], `"msg":"booking confirmed"`)
		assert.Contains(t, lines[0], `"app":"nairobi-rentals"`)

		data, err := os.ReadFile(filepath.Join(dir, "nairobi-rentals.log"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "booking confirmed")
	})

	t.Run("InfoLevelDropsDebug", func(t *testing.T) {
		console := &zaptest.Buffer{}

		logger, err := newLogger(AppConfig{}, console)
		require.NoError(t, err)
		logger.Debug("hidden")
		logger.Info("shown")

		lines := console.Lines()
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "shown")
	})

	t.Run("DebugUsesConsoleEncoding", func(t *testing.T) {
		console := &zaptest.Buffer{}

		logger, err := newLogger(AppConfig{Debug: true}, console)
		require.NoError(t, err)
		logger.Debug("seeding properties")

		lines := console.Lines()
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "seeding properties")
		assert.NotContains(t, lines[0], `"msg"`)
	})
}
