package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/xopoww/go-gltut/glutils"
)

// Renderer draws one mesh with one program every frame. Program and Mesh are
// owned by the renderer once set and released by Release.
type Renderer struct {
	Window  *Window
	Program glutils.Program
	// Mesh is nil for programs that only clear
	Mesh  *glutils.Mesh
	Clear mgl.Vec4

	Events        *EventHandler
	ScreenshotDir string

	// A value on Reload makes the render loop call Rebuild and swap in the
	// new program. A failed rebuild keeps the current program.
	Reload  <-chan struct{}
	Rebuild func() (glutils.Program, error)

	Log *slog.Logger
}

// Frame clears the framebuffer and issues the draw call
func (r *Renderer) Frame() {
	gl.ClearColor(r.Clear.X(), r.Clear.Y(), r.Clear.Z(), r.Clear.W())
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if r.Mesh == nil || !r.Program.Linked() {
		return
	}
	r.Program.Use()
	r.Mesh.Draw()
	gl.UseProgram(0)
}

// Run renders until the window is asked to close or ctx is done. Escape
// closes the window, F3 saves a screenshot. A GL error after a frame ends
// the loop.
func (r *Renderer) Run(ctx context.Context) error {
	if r.Log == nil {
		r.Log = slog.Default()
	}
	if r.Events == nil {
		r.Events = NewEventHandler()
	}

	screenshotRequested := false
	r.Events.AddOption(glfw.KeyF3, &screenshotRequested, Switch)
	r.Events.AddAction(glfw.KeyEscape, func() { r.Window.SetShouldClose(true) })
	r.Window.SetKeyCallback(r.Events.KeyCallback())

	for !r.Window.ShouldClose() {
		if ctx.Err() != nil {
			r.Log.Info("render loop cancelled")
			return nil
		}
		r.reloadIfRequested()

		r.Frame()

		// Check for errors
		if err := glutils.CheckError(); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}

		// Handle screenshot request
		if screenshotRequested {
			screenshotRequested = false
			r.screenshot()
		}

		r.Window.SwapBuffers()
	}
	return nil
}

func (r *Renderer) reloadIfRequested() {
	if r.Rebuild == nil {
		return
	}
	select {
	case <-r.Reload:
	default:
		return
	}

	prog, err := r.Rebuild()
	if err != nil {
		prog.Delete()
		r.Log.Error("shader reload failed, keeping the current program", "err", err)
		return
	}
	r.Program.Delete()
	r.Program = prog
	r.Log.Info("shader reloaded", "program", prog.ID)
}

// screenshot reads the back buffer and writes it as PNG off the render thread
func (r *Renderer) screenshot() {
	width, height := r.Window.FramebufferSize()
	img, err := glutils.ReadPixels(width, height)
	if err != nil {
		r.Log.Error("failed to take a screenshot", "err", err)
		return
	}

	filename := filepath.Join(
		r.ScreenshotDir,
		fmt.Sprintf("screenshot_%s.png", time.Now().Format("02-01-2006_15-04-05")),
	)
	go func(img image.Image) {
		if err := imaging.Save(img, filename); err != nil {
			r.Log.Error("failed to save a screenshot", "err", err)
			return
		}
		r.Log.Info("saved a screenshot", "file", filename)
	}(img)
}

// Release deletes the program and the mesh. The window stays open.
func (r *Renderer) Release() {
	r.Program.Delete()
	r.Program = glutils.Program{}
	if r.Mesh != nil {
		r.Mesh.Delete()
		r.Mesh = nil
	}
}
