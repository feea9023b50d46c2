package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/xopoww/go-gltut/app"
	"github.com/xopoww/go-gltut/config"
	"github.com/xopoww/go-gltut/glutils"
	"github.com/xopoww/go-gltut/scenery"
)

func init() {
	// This is needed to arrange that main() runs on main thread.
	// See documentation for functions that are only allowed to be called from the main thread.
	runtime.LockOSThread()
}

type options struct {
	configPath string
	logLevel   string
	strict     bool
	shaderPath string
	vertexPath string
	fragPath   string
	watch      bool
}

var programs = []struct {
	name  string
	short string
}{
	{"window", "Open a window and clear it every frame"},
	{"triangle", "Draw a red triangle with inline shaders"},
	{"attributes", "Draw a triangle with per-vertex colours"},
	{"quad", "Draw an indexed quad"},
	{"shaderfile", "Draw a triangle with shaders from a #shader-tagged file or two stage files"},
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "gltut",
		Short:         "Introductory OpenGL programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&opts.strict, "strict", false, "exit if the shader program fails to build")

	for _, p := range programs {
		name := p.name
		cmd := &cobra.Command{
			Use:   name,
			Short: p.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), opts, name)
			},
		}
		if name == "shaderfile" {
			cmd.Flags().StringVar(&opts.shaderPath, "shader", "", "tagged shader file (default: embedded basic.shader)")
			cmd.Flags().StringVar(&opts.vertexPath, "vertex", "", "untagged vertex shader file, used with --fragment")
			cmd.Flags().StringVar(&opts.fragPath, "fragment", "", "untagged fragment shader file, used with --vertex")
			cmd.Flags().BoolVar(&opts.watch, "watch", false, "rebuild the program when a shader file changes")
		}
		root.AddCommand(cmd)
	}
	return root
}

func loadConfig(opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	// a source given on the command line replaces the file's choice
	if opts.shaderPath != "" {
		cfg.Shader.Path = opts.shaderPath
		cfg.Shader.Vertex, cfg.Shader.Fragment = "", ""
	}
	if opts.vertexPath != "" || opts.fragPath != "" {
		cfg.Shader.Vertex, cfg.Shader.Fragment = opts.vertexPath, opts.fragPath
		cfg.Shader.Path = ""
	}
	if opts.watch {
		cfg.Shader.Watch = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(lc config.Log) *slog.Logger {
	lvl, _ := lc.SlogLevel()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func run(ctx context.Context, opts *options, name string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	scene, err := scenery.ByName(name, cfg.Shader.Path)
	if err != nil {
		return err
	}
	if name == "shaderfile" && cfg.Shader.Vertex != "" {
		scene = scene.WithStageFiles(cfg.Shader.Vertex, cfg.Shader.Fragment)
	}
	if c := cfg.Render.ClearColor; len(c) == 4 {
		scene.Clear = mgl.Vec4{c[0], c[1], c[2], c[3]}
	}

	// Read shader sources before any window exists
	var pair glutils.SourcePair
	if scene.Drawable() {
		pair, err = scene.Sources()
		if err != nil {
			return fmt.Errorf("load shader sources: %w", err)
		}
	}

	// Initialize GLFW and GL, create window
	window, err := app.NewWindow(cfg.Window, cfg.GL, logger)
	if err != nil {
		return err
	}
	defer window.Close()

	r := &app.Renderer{
		Window:        window,
		Clear:         scene.Clear,
		Events:        app.NewEventHandler(),
		ScreenshotDir: cfg.Render.ScreenshotDir,
		Log:           logger,
	}
	defer r.Release()

	if scene.Drawable() {
		builder := glutils.NewBuilder(glutils.NewGLDriver(), logger)
		r.Program, err = builder.Build(pair)
		if err != nil {
			if opts.strict {
				return fmt.Errorf("build %s program: %w", name, err)
			}
			logger.Warn("shader program is unusable, continuing without drawing", "program", name)
		}

		r.Mesh, err = scene.Upload()
		if err != nil {
			return fmt.Errorf("upload %s geometry: %w", name, err)
		}

		paths := scene.ShaderPaths()
		if cfg.Shader.Watch && len(paths) == 0 && scene.ShaderText != "" {
			logger.Warn("watching needs a shader file path, ignoring")
		}
		if cfg.Shader.Watch && len(paths) > 0 {
			watcher, err := app.WatchFiles(paths, logger)
			if err != nil {
				return err
			}
			defer watcher.Close()

			r.Reload = watcher.Changes()
			r.Rebuild = func() (glutils.Program, error) {
				pair, err := scene.Sources()
				if err != nil {
					return glutils.Program{}, err
				}
				return builder.Build(pair)
			}
		}
	}

	return r.Run(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("gltut failed", "err", err)
		stop()
		os.Exit(1)
	}
}
