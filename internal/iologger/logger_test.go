package iologger_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/internal/iologger"
	"github.com/gnames/gnsubsample/pkg/config"
	"github.com/gnames/gnsubsample/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}

	err := iologger.Init(dir, cfg, false)
	require.NoError(t, err)
	slog.Info("Focal sample", "selected", 42)
	slog.Debug("hidden")

	content, err := os.ReadFile(iologger.LogPath(dir))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"Focal sample"`)
	assert.Contains(t, string(content), `"selected":42`)
	assert.NotContains(t, string(content), "hidden")
	assert.Equal(t, filepath.Join(dir, "gnsubsample.log"), iologger.LogPath(dir))
}

func TestInitAppend(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "text", Level: "debug", Destination: "file"}

	require.NoError(t, iologger.Init(dir, cfg, false))
	slog.Debug("first")
	require.NoError(t, iologger.Init(dir, cfg, true))
	slog.Debug("second")

	content, err := os.ReadFile(iologger.LogPath(dir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "first")
	assert.Contains(t, string(content), "second")

	require.NoError(t, iologger.Init(dir, cfg, false))
	content, err = os.ReadFile(iologger.LogPath(dir))
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestInitError(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := filepath.Join(t.TempDir(), "missing")
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}

	err := iologger.Init(dir, cfg, false)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
	assert.Equal(t, errcode.IOClass, errcode.ErrorClass(err))
	require.Len(t, gnErr.Vars, 1)
	assert.Equal(t, filepath.Join(dir, "gnsubsample.log"), gnErr.Vars[0])
	assert.Contains(t, gnErr.Msg, "GNSUBSAMPLE_LOG_DESTINATION")
	assert.Contains(t, gnErr.Err.Error(), "gnsubsample.log")
}
