// Package display owns the window, its rendering context and the windowing
// subsystem that backs them.
package display

import (
	"errors"
	"fmt"
	"log"

	"github.com/richinsley/gotriangle/graphics"
)

var (
	// ErrInit reports that the windowing subsystem or the GL loader failed
	// to initialize.
	ErrInit = errors.New("failed to initialize graphics subsystem")
	// ErrWindow reports that the window could not be created.
	ErrWindow = errors.New("failed to create window")
)

// Display is one window with a current GL context. Creating a Display
// initializes the platform and Destroy terminates it, so the subsystem's
// lifetime is tied to exactly one Display.
type Display struct {
	platform graphics.Platform
	device   graphics.Device
	window   graphics.Window
}

// New initializes the platform, creates a window, makes its context current
// on the calling thread and loads the GL entry points. The window is shown
// only when visible is set. On any failure everything acquired so far is
// released before the error is returned.
func New(platform graphics.Platform, device graphics.Device, title string, width, height int, visible bool) (*Display, error) {
	if err := platform.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	window, err := platform.CreateWindow(title, width, height)
	if err != nil {
		platform.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrWindow, err)
	}

	window.MakeCurrent()
	if visible {
		window.Show()
	}

	if err := device.Init(); err != nil {
		window.Destroy()
		platform.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	log.Printf("Created %dx%d window %q", width, height, title)
	return &Display{
		platform: platform,
		device:   device,
		window:   window,
	}, nil
}

// ShouldClose reports whether the user asked to close the window. A
// destroyed display always reports true.
func (d *Display) ShouldClose() bool {
	if d.window == nil {
		return true
	}
	return d.window.ShouldClose()
}

// RequestClose flags the window for closing at the end of the frame.
func (d *Display) RequestClose() {
	if d.window != nil {
		d.window.SetShouldClose(true)
	}
}

// Clear clears the color and depth buffers.
func (d *Display) Clear() {
	if d.window == nil {
		return
	}
	d.device.Clear(graphics.ColorBufferBit | graphics.DepthBufferBit)
}

// Update presents the frame and processes pending events. Call it once per
// frame, after every draw for that frame.
func (d *Display) Update() {
	if d.window == nil {
		return
	}
	d.window.SwapBuffers()
	d.platform.PollEvents()
}

// FramebufferSize returns the framebuffer size in pixels, which can differ
// from the window size on high-DPI screens.
func (d *Display) FramebufferSize() (int, int) {
	if d.window == nil {
		return 0, 0
	}
	return d.window.GetFramebufferSize()
}

// Destroyed reports whether Destroy has run.
func (d *Display) Destroyed() bool { return d.window == nil }

// Destroy releases the window and terminates the platform. Only the first
// call has any effect.
func (d *Display) Destroy() {
	if d.window == nil {
		return
	}
	d.window.Destroy()
	d.window = nil
	d.platform.Terminate()
}
