package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize_ProductionModeIsNoop(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{}))

	Get(CategoryAPI).Info("should not be written")
	require.NoError(t, Sync())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInitialize_WritesCategorizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "stockprofit.log")
	require.NoError(t, Initialize(Options{
		Level:     "debug",
		File:      path,
		DebugMode: true,
	}))
	t.Cleanup(func() { _ = Initialize(Options{}) })

	Get(CategoryAPI).Info("posting %s", "AAPL")
	Get(CategoryForm).Debug("validated")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "posting AAPL")
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "validated")
}

func TestInitialize_DisabledCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockprofit.log")
	require.NoError(t, Initialize(Options{
		Level:      "info",
		File:       path,
		DebugMode:  true,
		JSONFormat: true,
		Categories: map[string]bool{"animation": false},
	}))
	t.Cleanup(func() { _ = Initialize(Options{}) })

	assert.False(t, IsCategoryEnabled(CategoryAnimation))
	assert.True(t, IsCategoryEnabled(CategoryUI))

	Get(CategoryAnimation).Info("tick")
	Get(CategoryUI).Info("focus moved")
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "tick")
	assert.True(t, strings.Contains(out, `"msg":"focus moved"`), out)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
