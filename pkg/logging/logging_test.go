package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetupLoggerWithWriter(&buf, tt.verbosity, false)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
			assert.Equal(t, tt.wantLevel, LevelFor(tt.verbosity))
		})
	}
}

func TestSetupLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, 1, false)

	logger := GetLogger("copier")
	logger.Info().Str("task", "bourbon").Msg("Task started")
	logger.Debug().Msg("hidden at info level")

	out := buf.String()
	assert.Contains(t, out, "Task started")
	assert.Contains(t, out, "bourbon")
	assert.Contains(t, out, "copier")
	assert.NotContains(t, out, "hidden at info level")
}

func TestSetupLoggerFile(t *testing.T) {
	stateHome := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", stateHome)
	xdg.Reload()

	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, 0, true)
	log.Warn().Msg("written to both")

	logPath := filepath.Join(stateHome, "vendorcp", "vendorcp.log")
	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to both")
	assert.Contains(t, buf.String(), "written to both")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	done := LogOperationStart(logger, "resolve")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "duration")
}
