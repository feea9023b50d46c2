// Package config holds the settings of the tutorial programs, loaded from
// an optional TOML file over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Window Window `toml:"window"`
	GL     GL     `toml:"gl"`
	Render Render `toml:"render"`
	Shader Shader `toml:"shader"`
	Log    Log    `toml:"log"`
}

type Window struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	Resizable bool   `toml:"resizable"`
	VSync     bool   `toml:"vsync"`
	// Hidden creates the window without showing it
	Hidden bool `toml:"hidden"`
}

// GL selects the requested context version and profile
type GL struct {
	Major             int  `toml:"major"`
	Minor             int  `toml:"minor"`
	CoreProfile       bool `toml:"core_profile"`
	ForwardCompatible bool `toml:"forward_compatible"`
}

type Render struct {
	// ClearColor overrides the scene's clear colour when set (RGBA, 0..1)
	ClearColor    []float32 `toml:"clear_color"`
	ScreenshotDir string    `toml:"screenshot_dir"`
}

type Shader struct {
	// Path of a tagged shader file for the shaderfile program
	Path string `toml:"path"`
	// Vertex and Fragment name two untagged stage files, used instead of Path
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
	Watch    bool   `toml:"watch"`
}

type Log struct {
	Level string `toml:"level"`
}

// SlogLevel parses Level ("debug", "info", "warn", "error", optionally with
// an offset such as "info+2")
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	return lvl, nil
}

func Default() Config {
	return Config{
		Window: Window{
			Width:     800,
			Height:    600,
			Title:     "Learn OpenGL",
			Resizable: true,
			VSync:     true,
		},
		GL: GL{
			Major:             3,
			Minor:             3,
			CoreProfile:       true,
			ForwardCompatible: true,
		},
		Render: Render{
			ScreenshotDir: ".",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load decodes the TOML file at path over Default. Unknown keys are an
// error. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.GL.Major < 3 || (c.GL.Major == 3 && c.GL.Minor < 3) {
		errs = append(errs, fmt.Errorf("OpenGL %d.%d is older than 3.3", c.GL.Major, c.GL.Minor))
	}
	if n := len(c.Render.ClearColor); n != 0 && n != 4 {
		errs = append(errs, fmt.Errorf("clear_color needs 4 components, got %d", n))
	}
	if (c.Shader.Vertex == "") != (c.Shader.Fragment == "") {
		errs = append(errs, errors.New("shader vertex and fragment files must be set together"))
	}
	if c.Shader.Vertex != "" && c.Shader.Path != "" {
		errs = append(errs, errors.New("shader path and vertex/fragment files are exclusive"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
