package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gltut.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, 3, cfg.GL.Major)
	assert.Equal(t, 3, cfg.GL.Minor)
	assert.True(t, cfg.GL.CoreProfile)

	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 1024
title = "Hello Triangle"

[render]
clear_color = [0.0, 0.0, 0.0, 1.0]

[shader]
path = "basic.shader"
watch = true

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, "Hello Triangle", cfg.Window.Title)
	assert.Equal(t, []float32{0, 0, 0, 1}, cfg.Render.ClearColor)
	assert.Equal(t, "basic.shader", cfg.Shader.Path)
	assert.True(t, cfg.Shader.Watch)

	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{name: "unknown key", text: "[window]\nfullscreen = true\n"},
		{name: "bad syntax", text: "[window\n"},
		{name: "negative size", text: "[window]\nwidth = -1\n"},
		{name: "old gl", text: "[gl]\nmajor = 2\nminor = 1\n"},
		{name: "short clear colour", text: "[render]\nclear_color = [1.0, 0.0]\n"},
		{name: "bad log level", text: "[log]\nlevel = \"loud\"\n"},
		{name: "vertex without fragment", text: "[shader]\nvertex = \"shader.vs\"\n"},
		{name: "path and stage files", text: "[shader]\npath = \"a.shader\"\nvertex = \"shader.vs\"\nfragment = \"shader.fs\"\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.text))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
