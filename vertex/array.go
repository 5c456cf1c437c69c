package vertex

import (
	"errors"
	"fmt"

	"github.com/richinsley/gotriangle/graphics"
)

// ErrSlotInUse reports an attribute slot that already has a buffer.
var ErrSlotInUse = errors.New("attribute slot already in use")

type attachment struct {
	slot   uint32
	buffer *Buffer
}

// Array is a vertex array object. It owns every buffer attached to it.
type Array struct {
	device      graphics.Device
	id          uint32
	attachments []attachment
}

func NewArray(device graphics.Device) *Array {
	return &Array{
		device: device,
		id:     device.GenVertexArray(),
	}
}

// AddBuffer enables slot and describes it as ComponentCount tightly packed
// floats read from buffer. Both bindings are cleared before returning. The
// array takes ownership of buffer.
func (a *Array) AddBuffer(buffer *Buffer, slot uint32) error {
	for _, at := range a.attachments {
		if at.slot == slot {
			return fmt.Errorf("%w: slot %d", ErrSlotInUse, slot)
		}
	}

	a.device.BindVertexArray(a.id)
	buffer.Bind()

	a.device.EnableVertexAttribArray(slot)
	a.device.VertexAttribPointer(slot, int32(buffer.ComponentCount()), graphics.Float, false, 0, 0)

	buffer.Unbind()
	a.device.BindVertexArray(0)

	a.attachments = append(a.attachments, attachment{slot: slot, buffer: buffer})
	return nil
}

func (a *Array) Bind() {
	a.device.BindVertexArray(a.id)
}

func (a *Array) Unbind() {
	a.device.BindVertexArray(0)
}

func (a *Array) ID() uint32 { return a.id }

// Buffers returns the attached buffers in attach order.
func (a *Array) Buffers() []*Buffer {
	buffers := make([]*Buffer, len(a.attachments))
	for i, at := range a.attachments {
		buffers[i] = at.buffer
	}
	return buffers
}

// Buffer returns the buffer attached at slot, or nil.
func (a *Array) Buffer(slot uint32) *Buffer {
	for _, at := range a.attachments {
		if at.slot == slot {
			return at.buffer
		}
	}
	return nil
}

// Destroy deletes the vertex array and then its buffers, newest first.
func (a *Array) Destroy() {
	if a.id == 0 {
		return
	}
	a.device.DeleteVertexArray(a.id)
	a.id = 0
	for i := len(a.attachments) - 1; i >= 0; i-- {
		a.attachments[i].buffer.Destroy()
	}
	a.attachments = nil
}
