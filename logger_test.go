package techreader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("info", "", &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("post created", zap.String("slug", "first"))
	require.NoError(t, logger.Sync())

	line := bytes.TrimSpace(buf.Bytes())
	require.True(t, gjson.ValidBytes(line), string(line))
	assert.Equal(t, "info", gjson.GetBytes(line, "level").String())
	assert.Equal(t, "post created", gjson.GetBytes(line, "msg").String())
	assert.Equal(t, "first", gjson.GetBytes(line, "slug").String())
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("chatty", "", &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "techreader.log")
	var buf bytes.Buffer
	logger, err := newLogger("debug", path, &buf)
	require.NoError(t, err)

	logger.Debug("to file")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
}
