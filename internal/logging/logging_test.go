package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equalf(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestSetupWritesToRotatingFile(t *testing.T) {
	t.Setenv(LevelEnv, "warn")
	path := filepath.Join(t.TempDir(), "state", "cinemaflow.log")

	logger, closer, err := Setup(path)
	require.NoError(t, err)

	logger.Info("hidden below warn")
	logger.Warn("detail fetch failed", "lookup", "kp")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `level=WARN msg="detail fetch failed" lookup=kp`)
	assert.NotContains(t, string(data), "hidden below warn")
}

func TestSetupRejectsEmptyPath(t *testing.T) {
	_, _, err := Setup(" ")
	assert.Error(t, err)
}
