// Package gfxtest provides an in-memory gfx device for tests. It hands
// out monotonically increasing handles, records every call in order and
// keeps per-object liveness so resource handling can be asserted
// without a rendering context.
package gfxtest

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/gfx"
)

// Device records calls instead of talking to a GPU.
type Device struct {
	mutex sync.Mutex

	// Calls is the formatted trace of every call, in order.
	Calls []string

	// DoubleFrees counts deletions of handles that were never created
	// or were already deleted.
	DoubleFrees int

	// FailPrograms makes every subsequent CreateProgram fail.
	FailPrograms bool

	nextHandle uint32

	buffers  map[gfx.Buffer]bool
	arrays   map[gfx.VertexArray]bool
	textures map[gfx.Texture]bool
	programs map[gfx.Program]bool

	bufferCreates, bufferDeletes   int
	arrayCreates, arrayDeletes     int
	textureCreates, textureDeletes int
	programCreates, programDeletes int

	boundBuffer gfx.Buffer
	contents    map[gfx.Buffer][]float32

	locations    map[string]int32
	nextLocation int32
}

// New creates an empty recording device.
func New() *Device {
	return &Device{
		buffers:   make(map[gfx.Buffer]bool),
		arrays:    make(map[gfx.VertexArray]bool),
		textures:  make(map[gfx.Texture]bool),
		programs:  make(map[gfx.Program]bool),
		contents:  make(map[gfx.Buffer][]float32),
		locations: make(map[string]int32),
	}
}

func (d *Device) record(format string, args ...interface{}) {
	d.mutex.Lock()
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
	d.mutex.Unlock()
}

func (d *Device) handle() uint32 {
	d.nextHandle++
	return d.nextHandle
}

// CallIndex returns the position of the first recorded call that starts
// with prefix, or -1 when there is none.
func (d *Device) CallIndex(prefix string) int {
	return d.CallIndexAfter(0, prefix)
}

// CallIndexAfter returns the position of the first recorded call at or
// beyond start that starts with prefix, or -1 when there is none.
func (d *Device) CallIndexAfter(start int, prefix string) int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	for idx := start; idx < len(d.Calls); idx++ {
		if strings.HasPrefix(d.Calls[idx], prefix) {
			return idx
		}
	}
	return -1
}

// CallCount returns how many recorded calls start with prefix.
func (d *Device) CallCount(prefix string) int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	count := 0
	for _, call := range d.Calls {
		if strings.HasPrefix(call, prefix) {
			count++
		}
	}
	return count
}

// ResetCalls clears the trace without touching object liveness.
func (d *Device) ResetCalls() {
	d.mutex.Lock()
	d.Calls = nil
	d.mutex.Unlock()
}

// AliveBuffers returns the number of created but not yet deleted
// buffers.
func (d *Device) AliveBuffers() int {
	return len(d.buffers)
}

// AliveVertexArrays returns the number of created but not yet deleted
// vertex arrays.
func (d *Device) AliveVertexArrays() int {
	return len(d.arrays)
}

// AliveTextures returns the number of created but not yet deleted
// textures.
func (d *Device) AliveTextures() int {
	return len(d.textures)
}

// AlivePrograms returns the number of created but not yet deleted
// programs.
func (d *Device) AlivePrograms() int {
	return len(d.programs)
}

// Created returns per-kind creation counts in buffer, vertex array,
// texture, program order.
func (d *Device) Created() (int, int, int, int) {
	return d.bufferCreates, d.arrayCreates, d.textureCreates, d.programCreates
}

// Deleted returns per-kind deletion counts in buffer, vertex array,
// texture, program order.
func (d *Device) Deleted() (int, int, int, int) {
	return d.bufferDeletes, d.arrayDeletes, d.textureDeletes, d.programDeletes
}

// BufferContents returns a copy of what has been uploaded to a buffer.
func (d *Device) BufferContents(b gfx.Buffer) []float32 {
	data := d.contents[b]
	out := make([]float32, len(data))
	copy(out, data)
	return out
}

// CreateVertexArray implements interface
func (d *Device) CreateVertexArray() gfx.VertexArray {
	va := gfx.VertexArray(d.handle())
	d.arrays[va] = true
	d.arrayCreates++
	d.record("CreateVertexArray() = %d", va)
	return va
}

// BindVertexArray implements interface
func (d *Device) BindVertexArray(va gfx.VertexArray) {
	d.record("BindVertexArray(%d)", va)
}

// DeleteVertexArray implements interface
func (d *Device) DeleteVertexArray(va gfx.VertexArray) {
	if !d.arrays[va] {
		d.DoubleFrees++
	}
	delete(d.arrays, va)
	d.arrayDeletes++
	d.record("DeleteVertexArray(%d)", va)
}

// CreateBuffer implements interface
func (d *Device) CreateBuffer() gfx.Buffer {
	b := gfx.Buffer(d.handle())
	d.buffers[b] = true
	d.bufferCreates++
	d.record("CreateBuffer() = %d", b)
	return b
}

// BindArrayBuffer implements interface
func (d *Device) BindArrayBuffer(b gfx.Buffer) {
	d.boundBuffer = b
	d.record("BindArrayBuffer(%d)", b)
}

// ArrayBufferData implements interface
func (d *Device) ArrayBufferData(data []float32, usage gfx.Usage) {
	stored := make([]float32, len(data))
	copy(stored, data)
	d.contents[d.boundBuffer] = stored
	d.record("ArrayBufferData(%d floats, usage %d)", len(data), usage)
}

// AllocArrayBuffer implements interface
func (d *Device) AllocArrayBuffer(count int, usage gfx.Usage) {
	d.contents[d.boundBuffer] = make([]float32, count)
	d.record("AllocArrayBuffer(%d floats, usage %d)", count, usage)
}

// ArrayBufferSubData implements interface
func (d *Device) ArrayBufferSubData(offset int, data []float32) {
	stored := d.contents[d.boundBuffer]
	if need := offset + len(data); need > len(stored) {
		grown := make([]float32, need)
		copy(grown, stored)
		stored = grown
	}
	copy(stored[offset:], data)
	d.contents[d.boundBuffer] = stored
	d.record("ArrayBufferSubData(%d, %d floats)", offset, len(data))
}

// DeleteBuffer implements interface
func (d *Device) DeleteBuffer(b gfx.Buffer) {
	if !d.buffers[b] {
		d.DoubleFrees++
	}
	delete(d.buffers, b)
	d.bufferDeletes++
	d.record("DeleteBuffer(%d)", b)
}

// EnableVertexAttrib implements interface
func (d *Device) EnableVertexAttrib(location uint32) {
	d.record("EnableVertexAttrib(%d)", location)
}

// VertexAttribPointer implements interface
func (d *Device) VertexAttribPointer(location uint32, components, stride, offset int) {
	d.record("VertexAttribPointer(%d, %d, %d, %d)", location, components, stride, offset)
}

// VertexAttribDivisor implements interface
func (d *Device) VertexAttribDivisor(location, divisor uint32) {
	d.record("VertexAttribDivisor(%d, %d)", location, divisor)
}

// VertexAttrib4f implements interface
func (d *Device) VertexAttrib4f(location uint32, x, y, z, w float32) {
	d.record("VertexAttrib4f(%d, %g, %g, %g, %g)", location, x, y, z, w)
}

// CreateProgram implements interface
func (d *Device) CreateProgram(name, vertexSource, fragmentSource string) (gfx.Program, error) {
	if d.FailPrograms {
		return 0, errors.New("CreateProgram(" + name + "): forced failure")
	}
	p := gfx.Program(d.handle())
	d.programs[p] = true
	d.programCreates++
	d.record("CreateProgram(%s) = %d", name, p)
	return p, nil
}

// UseProgram implements interface
func (d *Device) UseProgram(p gfx.Program) {
	d.record("UseProgram(%d)", p)
}

// DeleteProgram implements interface
func (d *Device) DeleteProgram(p gfx.Program) {
	if !d.programs[p] {
		d.DoubleFrees++
	}
	delete(d.programs, p)
	d.programDeletes++
	d.record("DeleteProgram(%d)", p)
}

// UniformLocation implements interface
func (d *Device) UniformLocation(p gfx.Program, name string) int32 {
	key := fmt.Sprintf("%d/%s", p, name)
	location, ok := d.locations[key]
	if !ok {
		location = d.nextLocation
		d.nextLocation++
		d.locations[key] = location
	}
	d.record("UniformLocation(%d, %s) = %d", p, name, location)
	return location
}

// UniformMatrix4 implements interface
func (d *Device) UniformMatrix4(location int32, m glm.Mat4) {
	d.record("UniformMatrix4(%d, %v)", location, m)
}

// Uniform1f implements interface
func (d *Device) Uniform1f(location int32, v float32) {
	d.record("Uniform1f(%d, %g)", location, v)
}

// Uniform2f implements interface
func (d *Device) Uniform2f(location int32, x, y float32) {
	d.record("Uniform2f(%d, %g, %g)", location, x, y)
}

// Uniform4f implements interface
func (d *Device) Uniform4f(location int32, x, y, z, w float32) {
	d.record("Uniform4f(%d, %g, %g, %g, %g)", location, x, y, z, w)
}

// Uniform1i implements interface
func (d *Device) Uniform1i(location int32, v int32) {
	d.record("Uniform1i(%d, %d)", location, v)
}

// CreateTexture implements interface
func (d *Device) CreateTexture() gfx.Texture {
	tex := gfx.Texture(d.handle())
	d.textures[tex] = true
	d.textureCreates++
	d.record("CreateTexture() = %d", tex)
	return tex
}

// ActiveTexture implements interface
func (d *Device) ActiveTexture(unit int) {
	d.record("ActiveTexture(%d)", unit)
}

// BindTexture implements interface
func (d *Device) BindTexture(t gfx.Texture) {
	d.record("BindTexture(%d)", t)
}

// TexImageRGBA implements interface
func (d *Device) TexImageRGBA(width, height int, pixels []uint8) {
	d.record("TexImageRGBA(%dx%d, %d bytes)", width, height, len(pixels))
}

// TexImageRed implements interface
func (d *Device) TexImageRed(width, height int, pixels []uint8) {
	d.record("TexImageRed(%dx%d, %d bytes)", width, height, len(pixels))
}

// TexSubImageRed implements interface
func (d *Device) TexSubImageRed(x, y, width, height int, pixels []uint8) {
	d.record("TexSubImageRed(%d, %d, %dx%d)", x, y, width, height)
}

// DeleteTexture implements interface
func (d *Device) DeleteTexture(t gfx.Texture) {
	if !d.textures[t] {
		d.DoubleFrees++
	}
	delete(d.textures, t)
	d.textureDeletes++
	d.record("DeleteTexture(%d)", t)
}

// DrawArrays implements interface
func (d *Device) DrawArrays(mode gfx.Topology, first, count int) {
	d.record("DrawArrays(%d, %d, %d)", mode, first, count)
}

// DrawArraysInstanced implements interface
func (d *Device) DrawArraysInstanced(mode gfx.Topology, first, count, instances int) {
	d.record("DrawArraysInstanced(%d, %d, %d, %d)", mode, first, count, instances)
}

// Viewport implements interface
func (d *Device) Viewport(x, y, width, height int) {
	d.record("Viewport(%d, %d, %d, %d)", x, y, width, height)
}

// ClearColor implements interface
func (d *Device) ClearColor(c gfx.Color) {
	d.record("ClearColor(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}

// Clear implements interface
func (d *Device) Clear() {
	d.record("Clear()")
}

// EnableBlending implements interface
func (d *Device) EnableBlending() {
	d.record("EnableBlending()")
}

// PointSize implements interface
func (d *Device) PointSize(size float32) {
	d.record("PointSize(%g)", size)
}
