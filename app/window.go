package app

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/xopoww/go-gltut/config"
)

// InitError reports a failure to set up the window or the GL context
type InitError struct {
	Step string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize %s: %v", e.Step, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Window owns the GLFW window and its GL context. It must be created, used
// and closed on the OS thread that main runs on.
type Window struct {
	win *glfw.Window
	log *slog.Logger
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// NewWindow initializes GLFW, opens a window with the requested context,
// makes it current and loads the GL functions.
func NewWindow(wc config.Window, gc config.GL, logger *slog.Logger) (*Window, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := glfw.Init(); err != nil {
		return nil, &InitError{Step: "glfw", Err: err}
	}

	glfw.WindowHint(glfw.Resizable, glfwBool(wc.Resizable))
	glfw.WindowHint(glfw.Visible, glfwBool(!wc.Hidden))
	glfw.WindowHint(glfw.ContextVersionMajor, gc.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, gc.Minor)
	if gc.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfwBool(gc.ForwardCompatible))

	win, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &InitError{Step: "window", Err: err}
	}
	win.MakeContextCurrent()
	if wc.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	// Initialize Glow
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, &InitError{Step: "gl", Err: err}
	}

	w := &Window{win: win, log: logger}
	width, height := win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	win.SetFramebufferSizeCallback(w.onFramebufferSize)

	logger.Info("OpenGL context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"framebuffer", fmt.Sprintf("%dx%d", width, height),
	)
	return w, nil
}

// width and height are in pixels, which differ from screen coordinates on
// high-DPI displays
func (w *Window) onFramebufferSize(_ *glfw.Window, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	w.log.Debug("framebuffer resized", "width", width, "height", height)
}

func (w *Window) FramebufferSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) SetShouldClose(value bool) {
	w.win.SetShouldClose(value)
}

func (w *Window) SetKeyCallback(cb glfw.KeyCallback) {
	w.win.SetKeyCallback(cb)
}

// SwapBuffers presents the back buffer and processes pending events
func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
	glfw.PollEvents()
}

// Close destroys the window and terminates GLFW. GL objects must be released
// before.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
