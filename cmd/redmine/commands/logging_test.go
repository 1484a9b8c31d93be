package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelInfo})))

	logger.Debug("hidden", nil)
	logger.Info("HTTP Request", map[string]interface{}{"method": "GET"})
	logger.Error("API Response Error", map[string]interface{}{"status_code": 404})

	output := out.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, `msg="HTTP Request" method=GET`)
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, "status_code=404")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelWarn, parseLevel(""))
}

func TestSetupLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "redmine.log")

	config := DefaultLogConfig()
	config.FilePath = path
	config.Level = "debug"

	cleanup, err := SetupLogging(config)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = SetupLogging(LogConfig{Level: "error"})
	})

	NewSlogLogger(nil).Debug("HTTP Response", map[string]interface{}{"status": 200})
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="HTTP Response" status=200`)
}
