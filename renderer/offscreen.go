package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/gotriangle/encoder"
)

// FrameWriter consumes rendered frames. encoder.FFmpegEncoder implements it.
type FrameWriter interface {
	WriteFrame(frame *encoder.Frame) error
	Close() error
}

// NewFrameWriter opens a FrameWriter for frames of the given pixel size.
type NewFrameWriter func(width, height int) (FrameWriter, error)

// RunOffscreen renders frames into a hidden window and hands each one to a
// writer sized to the framebuffer, then closes the writer and cleans up. It
// replaces Run for record mode.
func (r *Renderer) RunOffscreen(newWriter NewFrameWriter, frames int) error {
	if r.state != Uninitialized {
		return fmt.Errorf("%w: cannot record from %s", ErrState, r.state)
	}
	r.visible = false
	if err := r.Init(); err != nil {
		return err
	}
	if err := r.start(); err != nil {
		return err
	}

	log.Println("Starting in record mode...")
	width, height := r.display.FramebufferSize()
	w, err := newWriter(width, height)
	if err != nil {
		r.Clean()
		return err
	}

	var renderErr error
	for i := 0; i < frames; i++ {
		r.RenderFrame()

		pixels := make([]byte, width*height*4)
		r.device.ReadPixels(0, 0, int32(width), int32(height), pixels)
		if err := w.WriteFrame(&encoder.Frame{Pixels: pixels, PTS: int64(i)}); err != nil {
			renderErr = fmt.Errorf("failed to write frame %d: %w", i, err)
			break
		}

		r.display.Update()
		r.frames++
	}

	closeErr := w.Close()
	if err := r.Clean(); err != nil {
		return err
	}
	if renderErr != nil {
		return renderErr
	}
	if closeErr != nil {
		return fmt.Errorf("encoder failed: %w", closeErr)
	}
	log.Printf("Recorded %d frames", r.frames)
	return nil
}
