// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package glr implements the gfx device surface on OpenGL 3.3 core.
package glr

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/algonents/wilhelm-renderer/gfx"
)

// Device drives the OpenGL context that is current on the calling
// thread. The context has to stay current for every subsequent call.
type Device struct{}

// NewDevice loads the OpenGL function pointers of the current context.
func NewDevice() (gfx.Device, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.New("gl.Init(): " + err.Error())
	}
	return &Device{}, nil
}

// CreateVertexArray implements interface
func (d *Device) CreateVertexArray() gfx.VertexArray {
	var va uint32
	gl.GenVertexArrays(1, &va)
	return gfx.VertexArray(va)
}

// BindVertexArray implements interface
func (d *Device) BindVertexArray(va gfx.VertexArray) {
	gl.BindVertexArray(uint32(va))
}

// DeleteVertexArray implements interface
func (d *Device) DeleteVertexArray(va gfx.VertexArray) {
	handle := uint32(va)
	gl.DeleteVertexArrays(1, &handle)
}

// CreateBuffer implements interface
func (d *Device) CreateBuffer() gfx.Buffer {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return gfx.Buffer(buffer)
}

// BindArrayBuffer implements interface
func (d *Device) BindArrayBuffer(b gfx.Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
}

// ArrayBufferData implements interface
func (d *Device) ArrayBufferData(data []float32, usage gfx.Usage) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, uint32(usage))
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), uint32(usage))
}

// AllocArrayBuffer implements interface
func (d *Device) AllocArrayBuffer(count int, usage gfx.Usage) {
	gl.BufferData(gl.ARRAY_BUFFER, 4*count, nil, uint32(usage))
}

// ArrayBufferSubData implements interface
func (d *Device) ArrayBufferSubData(offset int, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 4*offset, 4*len(data), gl.Ptr(data))
}

// DeleteBuffer implements interface
func (d *Device) DeleteBuffer(b gfx.Buffer) {
	handle := uint32(b)
	gl.DeleteBuffers(1, &handle)
}

// EnableVertexAttrib implements interface
func (d *Device) EnableVertexAttrib(location uint32) {
	gl.EnableVertexAttribArray(location)
}

// VertexAttribPointer implements interface
func (d *Device) VertexAttribPointer(location uint32, components, stride, offset int) {
	gl.VertexAttribPointer(location, int32(components), gl.FLOAT, false, int32(4*stride), gl.PtrOffset(4*offset))
}

// VertexAttribDivisor implements interface
func (d *Device) VertexAttribDivisor(location, divisor uint32) {
	gl.VertexAttribDivisor(location, divisor)
}

// VertexAttrib4f implements interface
func (d *Device) VertexAttrib4f(location uint32, x, y, z, w float32) {
	gl.VertexAttrib4f(location, x, y, z, w)
}

// CreateProgram implements interface
func (d *Device) CreateProgram(name, vertexSource, fragmentSource string) (gfx.Program, error) {
	vertex, err := compileShader(name, vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragment, err := compileShader(name, fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)
	gl.DeleteShader(vertex)
	gl.DeleteShader(fragment)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("gl.LinkProgram(%s): %s", name, infoLog)
	}
	return gfx.Program(program), nil
}

// UseProgram implements interface
func (d *Device) UseProgram(p gfx.Program) {
	gl.UseProgram(uint32(p))
}

// DeleteProgram implements interface
func (d *Device) DeleteProgram(p gfx.Program) {
	gl.DeleteProgram(uint32(p))
}

// UniformLocation implements interface
func (d *Device) UniformLocation(p gfx.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

// UniformMatrix4 implements interface
func (d *Device) UniformMatrix4(location int32, m glm.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

// Uniform1f implements interface
func (d *Device) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

// Uniform2f implements interface
func (d *Device) Uniform2f(location int32, x, y float32) {
	gl.Uniform2f(location, x, y)
}

// Uniform4f implements interface
func (d *Device) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

// Uniform1i implements interface
func (d *Device) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

// CreateTexture implements interface
func (d *Device) CreateTexture() gfx.Texture {
	var texture uint32
	gl.GenTextures(1, &texture)
	return gfx.Texture(texture)
}

// ActiveTexture implements interface
func (d *Device) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

// BindTexture implements interface
func (d *Device) BindTexture(t gfx.Texture) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

// TexImageRGBA implements interface
func (d *Device) TexImageRGBA(width, height int, pixels []uint8) {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, pixelPtr(pixels))
	filterClampToEdge()
}

// TexImageRed implements interface
func (d *Device) TexImageRed(width, height int, pixels []uint8) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(width), int32(height), 0, gl.RED, gl.UNSIGNED_BYTE, pixelPtr(pixels))
	filterClampToEdge()
}

// TexSubImageRed implements interface
func (d *Device) TexSubImageRed(x, y, width, height int, pixels []uint8) {
	if len(pixels) == 0 {
		return
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), int32(width), int32(height), gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

// DeleteTexture implements interface
func (d *Device) DeleteTexture(t gfx.Texture) {
	handle := uint32(t)
	gl.DeleteTextures(1, &handle)
}

// DrawArrays implements interface
func (d *Device) DrawArrays(mode gfx.Topology, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}

// DrawArraysInstanced implements interface
func (d *Device) DrawArraysInstanced(mode gfx.Topology, first, count, instances int) {
	gl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}

// Viewport implements interface
func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// ClearColor implements interface
func (d *Device) ClearColor(c gfx.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
}

// Clear implements interface
func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// EnableBlending implements interface
func (d *Device) EnableBlending() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// PointSize implements interface
func (d *Device) PointSize(size float32) {
	gl.PointSize(size)
}

func compileShader(name, source string, stage uint32) (uint32, error) {
	shader := gl.CreateShader(stage)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("gl.CompileShader(%s): %s", name, infoLog)
	}
	return shader, nil
}

func pixelPtr(pixels []uint8) unsafe.Pointer {
	if len(pixels) == 0 {
		return nil
	}
	return gl.Ptr(pixels)
}

func filterClampToEdge() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}
