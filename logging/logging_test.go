package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.log")
	cfg := DefaultConfig()
	cfg.File = path

	logger, cleanup, err := New(cfg, nil)
	require.NoError(t, err)
	logger.Info("frame", zap.Int("n", 3))
	logger.Debug("hidden")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "frame", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "particle-hero", entry["logger"])
	assert.EqualValues(t, 3, entry["n"])
}

func TestNew_ConsoleAndStdLogRedirect(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.File = ""
	cfg.Level = "debug"

	logger, cleanup, err := New(cfg, zapcore.AddSync(&buf))
	require.NoError(t, err)
	logger.Debug("visible")
	log.Print("from stdlib")
	require.NoError(t, cleanup())

	out := buf.String()
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "from stdlib")
}

func TestNew_NoSinksIsNop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.File = ""
	logger, cleanup, err := New(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, cleanup())
}

func TestNew_BadLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "chatty"
	_, _, err := New(cfg, nil)
	assert.ErrorContains(t, err, "chatty")
	assert.Error(t, cfg.Validate())
}
