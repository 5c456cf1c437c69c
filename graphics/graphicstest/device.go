// Package graphicstest provides recording implementations of the graphics
// interfaces for tests that run without a GPU or a display.
package graphicstest

import (
	"errors"
	"fmt"

	"github.com/richinsley/gotriangle/graphics"
)

// Call is one recorded Device method invocation.
type Call struct {
	Name string
	Args []any
}

// Draw is one recorded DrawArrays call together with the binding state it
// was issued under.
type Draw struct {
	Mode        uint32
	First       int32
	Count       int32
	VertexArray uint32
	Program     uint32
}

// Attrib is the layout recorded for one attribute slot of a vertex array.
type Attrib struct {
	Enabled    bool
	Buffer     uint32
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     int
}

// Device records every GL call and tracks the bind state a real driver
// would hold. Misuse, such as drawing with no vertex array bound or
// deleting a buffer a live vertex array still references, is appended to
// Violations instead of failing so tests can assert on it.
type Device struct {
	// InitErr and ProgramErr are returned from Init and CreateProgram.
	InitErr    error
	ProgramErr error

	Initialized bool
	Calls       []Call
	Draws       []Draw
	Clears      []uint32
	ClearRGBA   [4]float32
	Violations  []string

	BoundBuffer      uint32
	BoundVertexArray uint32
	CurrentProgram   uint32

	// Live objects. Deleted objects are removed.
	Buffers      map[uint32][]float32
	VertexArrays map[uint32]map[uint32]*Attrib
	Programs     map[uint32][2]string

	// Deleted records object names in the order they were released,
	// prefixed with their kind ("buffer:1", "vao:2", "program:3").
	Deleted []string

	nextID uint32
}

var _ graphics.Device = (*Device)(nil)

// NewDevice returns an empty recording device.
func NewDevice() *Device {
	return &Device{
		Buffers:      make(map[uint32][]float32),
		VertexArrays: make(map[uint32]map[uint32]*Attrib),
		Programs:     make(map[uint32][2]string),
	}
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) violate(format string, args ...any) {
	d.Violations = append(d.Violations, fmt.Sprintf(format, args...))
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

// CallNames returns the recorded method names in call order.
func (d *Device) CallNames() []string {
	names := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		names[i] = c.Name
	}
	return names
}

func (d *Device) Init() error {
	d.record("Init")
	if d.InitErr != nil {
		return d.InitErr
	}
	d.Initialized = true
	return nil
}

func (d *Device) Clear(mask uint32) {
	d.record("Clear", mask)
	d.Clears = append(d.Clears, mask)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor", r, g, b, a)
	d.ClearRGBA = [4]float32{r, g, b, a}
}

func (d *Device) GenBuffer() uint32 {
	id := d.id()
	d.record("GenBuffer", id)
	d.Buffers[id] = nil
	return id
}

func (d *Device) BindBuffer(target, buffer uint32) {
	d.record("BindBuffer", target, buffer)
	if target != graphics.ArrayBuffer {
		d.violate("BindBuffer: unexpected target 0x%x", target)
	}
	if _, ok := d.Buffers[buffer]; buffer != 0 && !ok {
		d.violate("BindBuffer: buffer %d does not exist", buffer)
	}
	d.BoundBuffer = buffer
}

func (d *Device) BufferData(target uint32, data []float32, usage uint32) {
	d.record("BufferData", target, len(data), usage)
	if d.BoundBuffer == 0 {
		d.violate("BufferData: no buffer bound")
		return
	}
	d.Buffers[d.BoundBuffer] = append([]float32(nil), data...)
}

func (d *Device) DeleteBuffer(buffer uint32) {
	d.record("DeleteBuffer", buffer)
	if _, ok := d.Buffers[buffer]; !ok {
		d.violate("DeleteBuffer: buffer %d does not exist", buffer)
		return
	}
	for vao, slots := range d.VertexArrays {
		for slot, a := range slots {
			if a.Buffer == buffer {
				d.violate("DeleteBuffer: buffer %d still referenced by vertex array %d slot %d", buffer, vao, slot)
			}
		}
	}
	delete(d.Buffers, buffer)
	if d.BoundBuffer == buffer {
		d.BoundBuffer = 0
	}
	d.Deleted = append(d.Deleted, fmt.Sprintf("buffer:%d", buffer))
}

func (d *Device) GenVertexArray() uint32 {
	id := d.id()
	d.record("GenVertexArray", id)
	d.VertexArrays[id] = make(map[uint32]*Attrib)
	return id
}

func (d *Device) BindVertexArray(array uint32) {
	d.record("BindVertexArray", array)
	if _, ok := d.VertexArrays[array]; array != 0 && !ok {
		d.violate("BindVertexArray: vertex array %d does not exist", array)
	}
	d.BoundVertexArray = array
}

func (d *Device) DeleteVertexArray(array uint32) {
	d.record("DeleteVertexArray", array)
	if _, ok := d.VertexArrays[array]; !ok {
		d.violate("DeleteVertexArray: vertex array %d does not exist", array)
		return
	}
	delete(d.VertexArrays, array)
	if d.BoundVertexArray == array {
		d.BoundVertexArray = 0
	}
	d.Deleted = append(d.Deleted, fmt.Sprintf("vao:%d", array))
}

func (d *Device) attrib(op string, index uint32) *Attrib {
	slots, ok := d.VertexArrays[d.BoundVertexArray]
	if d.BoundVertexArray == 0 || !ok {
		d.violate("%s: no vertex array bound", op)
		return nil
	}
	a, ok := slots[index]
	if !ok {
		a = &Attrib{}
		slots[index] = a
	}
	return a
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
	if a := d.attrib("EnableVertexAttribArray", index); a != nil {
		a.Enabled = true
	}
}

func (d *Device) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	d.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
	if d.BoundBuffer == 0 {
		d.violate("VertexAttribPointer: no buffer bound")
	}
	if a := d.attrib("VertexAttribPointer", index); a != nil {
		a.Buffer = d.BoundBuffer
		a.Size = size
		a.Type = xtype
		a.Normalized = normalized
		a.Stride = stride
		a.Offset = offset
	}
}

func (d *Device) DrawArrays(mode uint32, first, count int32) {
	d.record("DrawArrays", mode, first, count)
	slots, ok := d.VertexArrays[d.BoundVertexArray]
	if d.BoundVertexArray == 0 || !ok {
		d.violate("DrawArrays: no vertex array bound")
	}
	for slot, a := range slots {
		if !a.Enabled || a.Buffer == 0 {
			d.violate("DrawArrays: slot %d is not enabled and described", slot)
		}
	}
	d.Draws = append(d.Draws, Draw{
		Mode:        mode,
		First:       first,
		Count:       count,
		VertexArray: d.BoundVertexArray,
		Program:     d.CurrentProgram,
	})
}

func (d *Device) CreateProgram(vertexSource, fragmentSource string) (uint32, error) {
	d.record("CreateProgram")
	if d.ProgramErr != nil {
		return 0, d.ProgramErr
	}
	if vertexSource == "" || fragmentSource == "" {
		return 0, errors.New("failed to compile shader: empty source")
	}
	id := d.id()
	d.Programs[id] = [2]string{vertexSource, fragmentSource}
	return id, nil
}

func (d *Device) UseProgram(program uint32) {
	d.record("UseProgram", program)
	if _, ok := d.Programs[program]; program != 0 && !ok {
		d.violate("UseProgram: program %d does not exist", program)
	}
	d.CurrentProgram = program
}

func (d *Device) DeleteProgram(program uint32) {
	d.record("DeleteProgram", program)
	if _, ok := d.Programs[program]; !ok {
		d.violate("DeleteProgram: program %d does not exist", program)
		return
	}
	delete(d.Programs, program)
	if d.CurrentProgram == program {
		d.CurrentProgram = 0
	}
	d.Deleted = append(d.Deleted, fmt.Sprintf("program:%d", program))
}

// ReadPixels fills dst with opaque white.
func (d *Device) ReadPixels(x, y, width, height int32, dst []byte) {
	d.record("ReadPixels", x, y, width, height)
	if len(dst) < int(width)*int(height)*4 {
		d.violate("ReadPixels: destination holds %d bytes, need %d", len(dst), width*height*4)
		return
	}
	for i := range dst {
		dst[i] = 0xff
	}
}
