package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gotriangle/graphics"
)

// Platform is the GLFW implementation of graphics.Platform.
type Platform struct{}

var _ graphics.Platform = (*Platform)(nil)

// NewPlatform returns the GLFW platform. Nothing is initialized until Init.
func NewPlatform() *Platform {
	return &Platform{}
}

// Init initializes GLFW. Must be called from the main thread.
func (p *Platform) Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// Terminate shuts GLFW down, destroying any remaining windows. Must be
// called from the main thread.
func (p *Platform) Terminate() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}

func (p *Platform) PollEvents() {
	glfw.PollEvents()
}

// CreateWindow creates a hidden window with a 4.1 core context. The caller
// shows it once the context is current.
func (p *Platform) CreateWindow(title string, width, height int) (graphics.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	win.SetKeyCallback(glfwKeyCallback)

	return &Context{window: win}, nil
}

// Context wraps one GLFW window and its GL context.
type Context struct {
	window *glfw.Window
}

var _ graphics.Window = (*Context)(nil)

// glfwKeyCallback closes the window on Escape.
func glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

// MakeCurrent makes the context current on the calling thread.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Show() {
	c.window.Show()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(value bool) {
	c.window.SetShouldClose(value)
}

func (c *Context) SwapBuffers() {
	c.window.SwapBuffers()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// Destroy destroys the window and its context.
func (c *Context) Destroy() {
	glfw.DetachCurrentContext()
	c.window.Destroy()
	c.window = nil
}
