// Package gfx defines rendering related types and the device surface
// that rendering backends must implement.
package gfx

import (
	glm "github.com/go-gl/mathgl/mgl32"
)

// Releasable is implemented by objects that hold device resources which
// have to be freed manually.
type Releasable interface {
	Release()
}

// Handles to objects owned by the graphics device. The zero value is
// never a valid handle.
type (

	// Buffer identifies a device vertex buffer.
	Buffer uint32

	// VertexArray identifies a device vertex array object.
	VertexArray uint32

	// Texture identifies a device texture.
	Texture uint32

	// Program identifies a compiled and linked shader program.
	Program uint32
)

// Topology tells the device how a vertex stream assembles into
// primitives. Values match the OpenGL primitive enums.
type Topology uint32

// Supported primitive topologies.
const (
	Points        Topology = 0x0000
	Lines         Topology = 0x0001
	LineStrip     Topology = 0x0003
	Triangles     Topology = 0x0004
	TriangleStrip Topology = 0x0005
	TriangleFan   Topology = 0x0006
)

// Usage hints how often buffer contents will be rewritten. Values match
// the OpenGL usage enums.
type Usage uint32

// Supported buffer usages.
const (
	StaticDraw  Usage = 0x88E4
	DynamicDraw Usage = 0x88E8
)

// Device is the call surface the engine needs from a graphics backend.
// Implementations are not safe for concurrent use, every call has to
// happen on the thread that owns the rendering context.
type Device interface {

	// CreateVertexArray creates a new vertex array object.
	CreateVertexArray() VertexArray

	// BindVertexArray makes the vertex array current.
	BindVertexArray(va VertexArray)

	// DeleteVertexArray destroys the vertex array object.
	DeleteVertexArray(va VertexArray)

	// CreateBuffer creates a new device buffer.
	CreateBuffer() Buffer

	// BindArrayBuffer binds the buffer to the vertex buffer target.
	BindArrayBuffer(b Buffer)

	// ArrayBufferData uploads data into the bound vertex buffer,
	// replacing its storage.
	ArrayBufferData(data []float32, usage Usage)

	// AllocArrayBuffer sizes the bound vertex buffer to count float32
	// values without uploading anything, discarding previous storage.
	AllocArrayBuffer(count int, usage Usage)

	// ArrayBufferSubData uploads data into the bound vertex buffer at
	// the given offset, both measured in float32 values.
	ArrayBufferSubData(offset int, data []float32)

	// DeleteBuffer destroys the buffer.
	DeleteBuffer(b Buffer)

	// EnableVertexAttrib enables a vertex attribute slot of the bound
	// vertex array.
	EnableVertexAttrib(location uint32)

	// VertexAttribPointer describes the layout of an attribute inside
	// the bound vertex buffer. Components, stride and offset are in
	// float32 values.
	VertexAttribPointer(location uint32, components, stride, offset int)

	// VertexAttribDivisor sets the instancing divisor of an attribute.
	VertexAttribDivisor(location, divisor uint32)

	// VertexAttrib4f sets the constant value used by an attribute slot
	// when no array is fed to it during the draw.
	VertexAttrib4f(location uint32, x, y, z, w float32)

	// CreateProgram compiles and links a shader program. The name only
	// appears in error messages.
	CreateProgram(name, vertexSource, fragmentSource string) (Program, error)

	// UseProgram makes the program current.
	UseProgram(p Program)

	// DeleteProgram destroys the program.
	DeleteProgram(p Program)

	// UniformLocation resolves a uniform name in a program. Returns a
	// negative location if the uniform does not exist.
	UniformLocation(p Program, name string) int32

	// UniformMatrix4 uploads a matrix uniform to the current program.
	UniformMatrix4(location int32, m glm.Mat4)

	// Uniform1f uploads a float uniform to the current program.
	Uniform1f(location int32, v float32)

	// Uniform2f uploads a vec2 uniform to the current program.
	Uniform2f(location int32, x, y float32)

	// Uniform4f uploads a vec4 uniform to the current program.
	Uniform4f(location int32, x, y, z, w float32)

	// Uniform1i uploads an int uniform to the current program.
	Uniform1i(location int32, v int32)

	// CreateTexture creates a new device texture.
	CreateTexture() Texture

	// ActiveTexture selects the texture unit subsequent binds apply to.
	ActiveTexture(unit int)

	// BindTexture makes the texture current on the active unit.
	BindTexture(t Texture)

	// TexImageRGBA uploads 8bit RGBA pixels into the bound texture. A
	// nil pixel slice allocates the storage without filling it.
	TexImageRGBA(width, height int, pixels []uint8)

	// TexImageRed uploads single channel 8bit pixels into the bound
	// texture. A nil pixel slice allocates the storage without filling
	// it.
	TexImageRed(width, height int, pixels []uint8)

	// TexSubImageRed updates a region of the bound single channel
	// texture.
	TexSubImageRed(x, y, width, height int, pixels []uint8)

	// DeleteTexture destroys the texture.
	DeleteTexture(t Texture)

	// DrawArrays draws primitives from the bound vertex array.
	DrawArrays(mode Topology, first, count int)

	// DrawArraysInstanced draws instanced primitives from the bound
	// vertex array.
	DrawArraysInstanced(mode Topology, first, count, instances int)

	// Viewport sets the drawable region in pixels.
	Viewport(x, y, width, height int)

	// ClearColor sets the color used by Clear.
	ClearColor(c Color)

	// Clear clears the color buffer.
	Clear()

	// EnableBlending enables standard alpha blending.
	EnableBlending()

	// PointSize sets the rasterized size of point primitives.
	PointSize(size float32)
}
