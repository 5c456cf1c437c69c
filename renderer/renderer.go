package renderer

import (
	"errors"
	"fmt"
	"log"

	"github.com/richinsley/gotriangle/display"
	"github.com/richinsley/gotriangle/graphics"
	"github.com/richinsley/gotriangle/options"
	"github.com/richinsley/gotriangle/shader"
)

// ErrState reports a lifecycle method called out of order.
var ErrState = errors.New("invalid renderer state")

// State is the renderer's position in its lifecycle. It only moves forward.
type State int

const (
	Uninitialized State = iota
	Initialized
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Renderer drives the application: it opens the display, builds the scene
// and runs the frame loop until the window is closed.
type Renderer struct {
	settings  options.Settings
	platform  graphics.Platform
	device    graphics.Device
	translate shader.TranslateFunc

	display *display.Display
	scene   *Scene
	state   State
	visible bool
	frames  int
}

func NewRenderer(settings options.Settings, platform graphics.Platform, device graphics.Device, translate shader.TranslateFunc) *Renderer {
	return &Renderer{
		settings:  settings,
		platform:  platform,
		device:    device,
		translate: translate,
		visible:   true,
	}
}

func (r *Renderer) transition(from, to State) error {
	if r.state != from {
		return fmt.Errorf("%w: cannot move to %s from %s", ErrState, to, r.state)
	}
	r.state = to
	return nil
}

// Init opens the display.
func (r *Renderer) Init() error {
	if r.state != Uninitialized {
		return fmt.Errorf("%w: cannot move to %s from %s", ErrState, Initialized, r.state)
	}
	if err := r.settings.Validate(); err != nil {
		return err
	}
	d, err := display.New(r.platform, r.device, r.settings.Title, r.settings.Width, r.settings.Height, r.visible)
	if err != nil {
		return err
	}
	r.display = d
	return r.transition(Uninitialized, Initialized)
}

// Run initializes the renderer and loops until the window closes.
func (r *Renderer) Run() error {
	if err := r.Init(); err != nil {
		return err
	}
	return r.Loop()
}

// start builds the scene and enters the Running state.
func (r *Renderer) start() error {
	if err := r.transition(Initialized, Running); err != nil {
		return err
	}
	scene, err := LoadScene(r.device, r.translate)
	if err != nil {
		r.Clean()
		return fmt.Errorf("failed to initialize scene: %w", err)
	}
	r.scene = scene
	return nil
}

// Loop builds the scene, renders until the window asks to close and then
// cleans up.
func (r *Renderer) Loop() error {
	if err := r.start(); err != nil {
		return err
	}
	log.Println("Starting interactive render loop...")
	for !r.display.ShouldClose() {
		r.RenderFrame()
		r.display.Update()
		r.frames++
	}
	log.Printf("Window closed after %d frames", r.frames)
	return r.Clean()
}

// RenderFrame clears the framebuffer and draws the triangle. It does not
// present.
func (r *Renderer) RenderFrame() {
	r.display.Clear()
	r.scene.Draw()
}

// Clean releases the scene and then the display.
func (r *Renderer) Clean() error {
	if err := r.transition(Running, Terminated); err != nil {
		return err
	}
	r.scene.Destroy()
	r.scene = nil
	r.display.Destroy()
	return nil
}

func (r *Renderer) State() State { return r.state }

// Frames is the number of frames presented so far.
func (r *Renderer) Frames() int { return r.frames }

// Display returns the display once Init has succeeded.
func (r *Renderer) Display() *display.Display { return r.display }
