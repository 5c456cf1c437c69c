package graphicstest

import (
	"errors"

	"github.com/richinsley/gotriangle/graphics"
)

// ErrAlreadyInitialized is returned by Platform.Init when the previous
// Init was never matched by a Terminate.
var ErrAlreadyInitialized = errors.New("graphicstest: platform already initialized")

// Platform is a fake windowing subsystem.
type Platform struct {
	// InitErr is returned from Init.
	InitErr error
	// FailWindows makes the next n CreateWindow calls fail.
	FailWindows int
	// CloseAfter is copied to every window created; see Window.CloseAfter.
	CloseAfter int

	Initialized bool
	Inits       int
	Terminates  int
	Polls       int
	Windows     []*Window

	// Events records the lifecycle calls in order.
	Events []string
}

var _ graphics.Platform = (*Platform)(nil)

func (p *Platform) Init() error {
	p.Events = append(p.Events, "Init")
	if p.Initialized {
		return ErrAlreadyInitialized
	}
	if p.InitErr != nil {
		return p.InitErr
	}
	p.Initialized = true
	p.Inits++
	return nil
}

func (p *Platform) Terminate() {
	p.Events = append(p.Events, "Terminate")
	p.Initialized = false
	p.Terminates++
}

func (p *Platform) CreateWindow(title string, width, height int) (graphics.Window, error) {
	p.Events = append(p.Events, "CreateWindow")
	if !p.Initialized {
		return nil, errors.New("graphicstest: platform not initialized")
	}
	if p.FailWindows > 0 {
		p.FailWindows--
		return nil, errors.New("graphicstest: window creation failed")
	}
	w := &Window{
		platform:   p,
		Title:      title,
		Width:      width,
		Height:     height,
		CloseAfter: p.CloseAfter,
	}
	p.Windows = append(p.Windows, w)
	return w, nil
}

func (p *Platform) PollEvents() {
	p.Events = append(p.Events, "PollEvents")
	p.Polls++
}

// Window is a fake window. Any call after Destroy is counted in
// UseAfterDestroy.
type Window struct {
	platform *Platform

	Title         string
	Width, Height int

	// CloseAfter makes ShouldClose report true once this many frames have
	// been swapped. Zero means only SetShouldClose closes the window.
	CloseAfter int

	Current         bool
	Visible         bool
	Destroyed       bool
	Swaps           int
	UseAfterDestroy int

	closeRequested bool
}

var _ graphics.Window = (*Window)(nil)

func (w *Window) touch(event string) {
	w.platform.Events = append(w.platform.Events, event)
	if w.Destroyed {
		w.UseAfterDestroy++
	}
}

func (w *Window) MakeCurrent() {
	w.touch("MakeCurrent")
	w.Current = true
}

func (w *Window) Show() {
	w.touch("Show")
	w.Visible = true
}

func (w *Window) ShouldClose() bool {
	if w.Destroyed {
		w.UseAfterDestroy++
	}
	return w.closeRequested || (w.CloseAfter > 0 && w.Swaps >= w.CloseAfter)
}

func (w *Window) SetShouldClose(value bool) {
	w.closeRequested = value
}

func (w *Window) SwapBuffers() {
	w.touch("SwapBuffers")
	w.Swaps++
}

func (w *Window) GetFramebufferSize() (int, int) {
	if w.Destroyed {
		w.UseAfterDestroy++
	}
	return w.Width, w.Height
}

func (w *Window) Destroy() {
	w.touch("Destroy")
	w.Destroyed = true
	w.Current = false
}
