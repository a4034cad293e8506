// Package display owns the GLFW window and the OpenGL implementation of the
// render backend. The rest of the application only reaches the GPU through
// [render.Backend]; everything GL-specific stays here.
package display

import (
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/scopeworks/wavescope/internal/util"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

// WindowOptions configure the render window.
type WindowOptions struct {
	Width  int
	Height int
	Title  string
}

// A Window is the application render window with a current GL context.
// All methods must be called from the main goroutine.
type Window struct {
	win *glfw.Window
}

// Open initializes GLFW, creates the window, and makes its GL context
// current with vsync enabled. Failures here are fatal to the application.
func Open(opts WindowOptions) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, util.WrapError("initialize glfw", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, util.WrapError("create window", err)
	}

	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, util.WrapError("initialize opengl", err)
	}

	// Sync buffer swaps to the display refresh; the render loop runs at
	// the monitor rate, nominally 60 Hz.
	glfw.SwapInterval(1)

	slog.Info("opened render window",
		"width", opts.Width, "height", opts.Height,
		"gl_version", gl.GoStr(gl.GetString(gl.VERSION)))

	return &Window{win: win}, nil
}

// ShouldClose reports whether the user has requested the window to close.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// RequestClose asks the render loop to exit at the next iteration.
func (w *Window) RequestClose() {
	w.win.SetShouldClose(true)
}

// SwapBuffers presents the rendered frame.
func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

// PollEvents processes pending window events.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
