package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolve_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Source)
	assert.Equal(t, 60, cfg.FPS)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 4.0, cfg.PixelsPerCell)
	assert.True(t, cfg.Watch)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.InDelta(t, 1.0, cfg.DefaultEasing(1), 1e-9)
}

func TestResolve_FileFoundFromSubdirectory(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "engine:\n  fps: 30\n  strict: false\n  default_easing: linear\nlogging:\n  level: debug\n")
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), cfg.Source)
	assert.Equal(t, 30, cfg.FPS)
	assert.False(t, cfg.Strict)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 0.25, cfg.DefaultEasing(0.25))
}

func TestResolve_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "engine:\n  fps: 30\n")
	t.Setenv("ANIMATRONIC_ENGINE_FPS", "120")
	t.Setenv("ANIMATRONIC_TUI_PIXELS_PER_CELL", "2")

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.FPS)
	assert.Equal(t, 2.0, cfg.PixelsPerCell)
}

func TestResolve_Invalid(t *testing.T) {
	tests := map[string]string{
		"fps":    "engine:\n  fps: 0\n",
		"easing": "engine:\n  default_easing: wobble\n",
		"cells":  "tui:\n  pixels_per_cell: -1\n",
		"level":  "logging:\n  level: loud\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), body)
			_, err := Resolve(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
